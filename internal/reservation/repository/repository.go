// Package repository implements the optimistic-concurrency storage
// contract shared by every aggregate kind in both bounded contexts.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrVersionConflict = errors.New("optimistic version conflict")

// Transaction is the unit of work returned by SetBegin and passed to
// SetCommit: an id, its value as observed (nil if absent), and the version
// that value was stored at (0 if absent).
type Transaction[V any] struct {
	ID      string
	Value   *V
	Version int
}

// WithValue returns a copy of the transaction carrying a new value to
// commit, keeping the originally observed version for the conflict check.
func (t Transaction[V]) WithValue(v V) Transaction[V] {
	t.Value = &v
	return t
}

// Repository is the polymorphic storage contract: get current state, begin
// a transaction against an id, and commit conditionally on the observed
// version.
type Repository[V any] interface {
	Get(ctx context.Context, id string) (*V, error)
	SetBegin(ctx context.Context, id string) (Transaction[V], error)
	SetCommit(ctx context.Context, tx Transaction[V]) error
}

// RedisRepository is the generic Repository implementation backing every
// aggregate kind, keyed "<kind>:<id>" and using WATCH/MULTI/EXEC to give
// each aggregate id a single logical writer at a time.
type RedisRepository[V any] struct {
	client *redis.Client
	kind   string
}

func NewRedisRepository[V any](client *redis.Client, kind string) *RedisRepository[V] {
	return &RedisRepository[V]{client: client, kind: kind}
}

func (r *RedisRepository[V]) key(id string) string {
	return fmt.Sprintf("%s:%s", r.kind, id)
}

type storedEnvelope[V any] struct {
	Version int `json:"version"`
	Value   V   `json:"value"`
}

func (r *RedisRepository[V]) Get(ctx context.Context, id string) (*V, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var env storedEnvelope[V]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env.Value, nil
}

func (r *RedisRepository[V]) SetBegin(ctx context.Context, id string) (Transaction[V], error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Transaction[V]{ID: id}, nil
	}
	if err != nil {
		return Transaction[V]{}, err
	}
	var env storedEnvelope[V]
	if err := json.Unmarshal(raw, &env); err != nil {
		return Transaction[V]{}, err
	}
	return Transaction[V]{ID: id, Value: &env.Value, Version: env.Version}, nil
}

// SetCommit writes tx.Value at version tx.Version+1, failing with
// ErrVersionConflict if the stored version has moved since SetBegin
// observed it.
func (r *RedisRepository[V]) SetCommit(ctx context.Context, tx Transaction[V]) error {
	if tx.Value == nil {
		return errors.New("cannot commit a transaction with no value")
	}
	key := r.key(tx.ID)

	txErr := r.client.Watch(ctx, func(rtx *redis.Tx) error {
		current, err := rtx.Get(ctx, key).Bytes()
		observedVersion := 0
		if err == nil {
			var env storedEnvelope[V]
			if jerr := json.Unmarshal(current, &env); jerr != nil {
				return jerr
			}
			observedVersion = env.Version
		} else if !errors.Is(err, redis.Nil) {
			return err
		}

		if observedVersion != tx.Version {
			return ErrVersionConflict
		}

		next := storedEnvelope[V]{Version: tx.Version + 1, Value: *tx.Value}
		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		return err
	}, key)

	return txErr
}
