package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPictureAccepts(t *testing.T) {
	p, err := NewPicture("https://cdn.example.com/a.jpg", "A scenic fjord view")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.jpg", p.URL)
}

func TestNewPictureRejectsInsecureScheme(t *testing.T) {
	_, err := NewPicture("http://cdn.example.com/a.jpg", "A scenic fjord view")
	assert.ErrorIs(t, err, ErrPictureUrlNotSecure)
}

func TestNewPictureRejectsMalformedUrl(t *testing.T) {
	_, err := NewPicture("not a url", "A scenic fjord view")
	assert.ErrorIs(t, err, ErrPictureMalformedUrl)
}

func TestNewPictureRejectsMalformedCaption(t *testing.T) {
	cases := []string{"", "lowercase start", "AB", "A!!invalid!!"}
	for _, c := range cases {
		_, err := NewPicture("https://cdn.example.com/a.jpg", c)
		assert.ErrorIs(t, err, ErrPictureMalformedCaption, "expected %q to be rejected", c)
	}
}

func TestPictureEqualIgnoresCaption(t *testing.T) {
	a, err := NewPicture("https://cdn.example.com/a.jpg", "A scenic fjord view")
	require.NoError(t, err)
	b, err := NewPicture("https://cdn.example.com/a.jpg", "A different caption here")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}
