package domain

import (
	"errors"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Uid is an opaque 128-bit identifier, displayed and parsed as base62.
type Uid struct {
	hi, lo uint64
}

// ErrMalformedUid is returned when parsing a non-base62 or out-of-range string.
var ErrMalformedUid = errors.New("malformed uid")

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewRandomUid generates a new random 128-bit id, sourcing randomness from
// two independent UUIDv4 draws.
func NewRandomUid() Uid {
	a := uuid.New()
	b := uuid.New()
	return Uid{
		hi: bytesToUint64(a[0:8]),
		lo: bytesToUint64(b[0:8]),
	}
}

func bytesToUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = (v << 8) | uint64(c)
	}
	return v
}

// IsEmpty reports whether this is the zero-value id.
func (u Uid) IsEmpty() bool { return u.hi == 0 && u.lo == 0 }

func (u Uid) bigInt() *big.Int {
	v := new(big.Int).SetUint64(u.hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(u.lo))
	return v
}

// String renders the id as base62.
func (u Uid) String() string {
	if u.IsEmpty() {
		return "0"
	}
	n := u.bigInt()
	base := big.NewInt(62)
	zero := big.NewInt(0)
	mod := new(big.Int)
	var sb strings.Builder
	for n.Cmp(zero) > 0 {
		n.DivMod(n, base, mod)
		sb.WriteByte(base62Alphabet[mod.Int64()])
	}
	s := sb.String()
	// digits were generated least-significant first
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ParseUid parses a base62-encoded id string.
func ParseUid(s string) (Uid, error) {
	if s == "" {
		return Uid{}, ErrMalformedUid
	}
	n := big.NewInt(0)
	base := big.NewInt(62)
	for _, c := range s {
		idx := strings.IndexRune(base62Alphabet, c)
		if idx < 0 {
			return Uid{}, ErrMalformedUid
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}
	if n.BitLen() > 128 {
		return Uid{}, ErrMalformedUid
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(n, mask).Uint64()
	hi := new(big.Int).Rsh(n, 64).Uint64()
	return Uid{hi: hi, lo: lo}, nil
}

// Equal reports whether two ids are bit-identical.
func (u Uid) Equal(other Uid) bool { return u.hi == other.hi && u.lo == other.lo }

func (u Uid) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *Uid) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseUid(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
