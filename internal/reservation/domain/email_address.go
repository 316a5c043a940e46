package domain

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
)

// EmailAddress is a sum type: Unverified or Verified, each wrapping the
// (lowercased) address string.
type EmailAddress struct {
	address  string
	verified bool
}

var (
	ErrMalformedEmailAddress  = errors.New("malformed email address")
	ErrChallengeDontMatch     = errors.New("verification challenge does not match")
)

// RFC5322-inspired but intentionally simplified local/domain pattern:
// dot-atom-text local part, at least one dot in the domain, a 2+ letter TLD.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~.-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)

// NewEmailAddress parses s, lowercasing it first. The result always starts
// Unverified, matching the original parser's behavior.
func NewEmailAddress(s string) (EmailAddress, error) {
	lowered := strings.ToLower(s)
	if !emailPattern.MatchString(lowered) {
		return EmailAddress{}, ErrMalformedEmailAddress
	}
	return EmailAddress{address: lowered, verified: false}, nil
}

func (e EmailAddress) IsVerified() bool { return e.verified }

func (e EmailAddress) String() string { return e.address }

// VerifyChallenge returns the deterministic token for this address, or the
// empty string if already verified (no challenge is needed).
func (e EmailAddress) VerifyChallenge() string {
	if e.verified {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(e.address))
	return strconv.FormatUint(h.Sum64(), 10)
}

// Verify transitions to Verified if challenge matches VerifyChallenge(); a
// Verified address is idempotent under Verify and always succeeds.
func (e EmailAddress) Verify(challenge string) (EmailAddress, error) {
	if e.verified {
		return e, nil
	}
	if challenge != e.VerifyChallenge() {
		return e, ErrChallengeDontMatch
	}
	return EmailAddress{address: e.address, verified: true}, nil
}

func (e EmailAddress) MarshalJSON() ([]byte, error) {
	status := "unverified"
	if e.verified {
		status = "verified"
	}
	return []byte(`{"address":"` + e.address + `","status":"` + status + `"}`), nil
}

func (e *EmailAddress) UnmarshalJSON(data []byte) error {
	var payload struct {
		Address string `json:"address"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	e.address = payload.Address
	e.verified = payload.Status == "verified"
	return nil
}
