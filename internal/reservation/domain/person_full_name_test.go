package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPersonFullNameAccepts(t *testing.T) {
	cases := []string{"Niels Bergsma", "Karina Sands", "Jean-Luc Picard", "O'Brien Smith"}
	for _, c := range cases {
		_, err := NewPersonFullName(c)
		assert.NoError(t, err, "expected %q to be valid", c)
	}
}

func TestNewPersonFullNameRejects(t *testing.T) {
	cases := []string{"", "Niels", "😀 Emoji", "Niels@Bergsma Test"}
	for _, c := range cases {
		_, err := NewPersonFullName(c)
		assert.ErrorIs(t, err, ErrMalformedPersonFullName, "expected %q to be rejected", c)
	}
}
