package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUidRoundTrip(t *testing.T) {
	u := NewRandomUid()
	s := u.String()
	parsed, err := ParseUid(s)
	require.NoError(t, err)
	assert.True(t, u.Equal(parsed))
}

func TestUidEmpty(t *testing.T) {
	var u Uid
	assert.True(t, u.IsEmpty())
	assert.Equal(t, "0", u.String())
}

func TestParseUidRejectsMalformed(t *testing.T) {
	_, err := ParseUid("not-base62!")
	assert.ErrorIs(t, err, ErrMalformedUid)
}

func TestUidDistinctOnEachCall(t *testing.T) {
	a := NewRandomUid()
	b := NewRandomUid()
	assert.False(t, a.Equal(b))
}
