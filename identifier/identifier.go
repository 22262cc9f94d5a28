// Package identifier turns arbitrary video page URLs into canonical media identifiers.
package identifier

import (
	"errors"
	"regexp"
)

// Length is the exact length of a canonical identifier.
const Length = 11

// ErrNotFound is returned when a URL contains no candidate of the canonical length.
var ErrNotFound = errors.New("could not find a valid video ID in that URL")

// pattern matches the path forms youtu.be/<id>, v/<id>, vi/<id>, u/<w>/<id>, embed/<id>
// and the query forms ?v=, ?vi=, &v=, &vi=. The identifier runs up to the next '#', '&' or '?'.
var pattern = regexp.MustCompile(`(?:(?:youtu\.be/|v/|vi/|u/\w/|embed/)|(?:(?:watch)?\?vi?=|&vi?=))([^#&?]*)`)

// Normalize returns the first candidate identifier in url that is exactly Length characters long.
// Shorter or longer captures are skipped.
func Normalize(url string) (string, error) {
	for _, match := range pattern.FindAllStringSubmatch(url, -1) {
		if id := match[1]; len(id) == Length {
			return id, nil
		}
	}

	return "", ErrNotFound
}

var bare = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Valid reports whether s already is a bare canonical identifier.
func Valid(s string) bool {
	return bare.MatchString(s)
}
