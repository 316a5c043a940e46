// Package vault provides a thin, cached secrets client used when VAULT_ADDR
// is configured, grounded on the teacher's VaultClient wrapper.
package vault

import (
	"sync/atomic"

	vaultapi "github.com/hashicorp/vault/api"
)

// Client caches the last-read secret set and refreshes it on RotateSecrets.
type Client struct {
	api     *vaultapi.Client
	mount   string
	cached  atomic.Value // map[string]string
}

// New constructs a Client against addr, using the default Vault HTTP config
// with the address overridden.
func New(addr, token, mount string) (*Client, error) {
	cfg := vaultapi.DefaultConfig()
	cfg.Address = addr
	api, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	api.SetToken(token)
	return &Client{api: api, mount: mount}, nil
}

// RotateSecrets reads the secret at path and replaces the cache.
func (c *Client) RotateSecrets(path string) error {
	secret, err := c.api.Logical().Read(c.mount + "/data/" + path)
	if err != nil {
		return err
	}
	values := map[string]string{}
	if secret != nil {
		if data, ok := secret.Data["data"].(map[string]interface{}); ok {
			for k, v := range data {
				if s, ok := v.(string); ok {
					values[k] = s
				}
			}
		}
	}
	c.cached.Store(values)
	return nil
}

// Get returns a cached secret value, or "" if absent.
func (c *Client) Get(key string) string {
	cached, _ := c.cached.Load().(map[string]string)
	if cached == nil {
		return ""
	}
	return cached[key]
}
