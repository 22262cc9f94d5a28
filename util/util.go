// Package util provides small helpers shared by the command line and the program store.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/exp/constraints"
)

var (
	invalidChars = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]`)
	underscores  = regexp.MustCompile(`__+`)
	separators   = regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
)

// SanitizeFilename turns an arbitrary string into a name safe for any filesystem.
func SanitizeFilename(filename string) string {
	filename = invalidChars.ReplaceAllString(filename, "_")
	filename = underscores.ReplaceAllString(filename, "_")
	return separators.ReplaceAllString(filename, "")
}

// Quantify formats count with the matching singular or plural noun.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FileStem returns the base name of path without its extension.
func FileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// PrintErasable prints msg on the current line and returns a func that blanks it.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

func Ignore(f func() error) {
	_ = f()
}

func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

func Min[T constraints.Ordered](items ...T) (min T) {
	if len(items) == 0 {
		return
	}
	min = items[0]
	for _, item := range items[1:] {
		if item < min {
			min = item
		}
	}
	return
}
