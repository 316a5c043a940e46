package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPhoneNumberAccepts(t *testing.T) {
	_, err := NewPhoneNumber("+31653321799")
	assert.NoError(t, err)
}

func TestNewPhoneNumberRejects(t *testing.T) {
	cases := []string{"31653321799", "+31 653 321 799", "+123", "+1234567890123456"}
	for _, c := range cases {
		_, err := NewPhoneNumber(c)
		assert.ErrorIs(t, err, ErrMalformedPhoneNumber, "expected %q to be rejected", c)
	}
}
