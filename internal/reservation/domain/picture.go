package domain

import (
	"errors"
	"net/url"
	"regexp"
)

// Picture is an https-only url plus a validated caption. Equality is by
// url only: two pictures with the same url but different captions are the
// same picture for SortedSet purposes.
type Picture struct {
	URL     string
	Caption string
}

var (
	ErrPictureUrlNotSecure    = errors.New("picture url is not secure")
	ErrPictureMalformedUrl     = errors.New("picture url is malformed")
	ErrPictureMalformedCaption = errors.New("picture caption is malformed")
)

var captionPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9 \-]{4,253}$`)

// NewPicture validates and builds a Picture.
func NewPicture(rawURL, caption string) (Picture, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Picture{}, ErrPictureMalformedUrl
	}
	if u.Scheme != "https" {
		return Picture{}, ErrPictureUrlNotSecure
	}
	if !captionPattern.MatchString(caption) {
		return Picture{}, ErrPictureMalformedCaption
	}
	return Picture{URL: rawURL, Caption: caption}, nil
}

// Equal implements the Equatable constraint by url only.
func (p Picture) Equal(other Picture) bool { return p.URL == other.URL }
