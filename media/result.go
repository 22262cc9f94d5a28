// Package media defines the metadata produced by an extraction program.
package media

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrNoDownload is returned when a result is built without any download URL.
var ErrNoDownload = errors.New("no download URL")

// Result is the metadata of one video.
type Result struct {
	// Canonical page URL of the video.
	OriginalURL string `json:"videoURL"`
	// Display title.
	VideoName string `json:"videoName"`
	// Uploader, if the program reported one.
	VideoAuthor mo.Option[string] `json:"videoAuthor"`
	// Direct media URLs, most preferred first.
	DownloadURLs []string `json:"downloadURLs"`
}

// New builds a Result. Empty download URLs are dropped and at least one must remain.
func New(originalURL, videoName string, author mo.Option[string], downloadURLs ...string) (*Result, error) {
	urls := lo.Compact(downloadURLs)
	if len(urls) == 0 {
		return nil, ErrNoDownload
	}

	return &Result{
		OriginalURL:  originalURL,
		VideoName:    videoName,
		VideoAuthor:  author,
		DownloadURLs: urls,
	}, nil
}

// DownloadURL returns the preferred download URL.
func (r *Result) DownloadURL() string {
	return r.DownloadURLs[0]
}

// String returns the name and author for display.
func (r *Result) String() string {
	if author, ok := r.VideoAuthor.Get(); ok {
		return fmt.Sprintf("%s by %s", r.VideoName, author)
	}
	return r.VideoName
}

// Details renders every field, one per line.
func (r *Result) Details() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Video URL: %s\n", r.OriginalURL)
	fmt.Fprintf(&b, "Name: %s\n", r.VideoName)
	fmt.Fprintf(&b, "Author: %s\n", r.VideoAuthor.OrElse("-"))
	for i, u := range r.DownloadURLs {
		fmt.Fprintf(&b, "Download URL #%d: %s\n", i+1, u)
	}

	return b.String()
}
