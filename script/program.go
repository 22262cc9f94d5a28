// Package script runs extraction programs.
//
// A Script pairs a named extraction program with the bootstrap program. Every
// Extract call gets a fresh engine context: the host API is installed, the
// bootstrap and the program run in order, and the result fields are read back
// from the namespace object.
package script

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/filesystem"
)

var (
	// ErrInvalidName is returned for program names that are not plain identifiers.
	ErrInvalidName = errors.New("invalid script name")

	// ErrNotFound is returned when a program file does not exist or is not a regular file.
	ErrNotFound = errors.New("script not found")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidName reports whether name can identify a program.
// Names with path separators, dots or spaces are rejected.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Program is the source text of one program file.
type Program struct {
	Name   string
	Path   string
	Source string
}

// Path returns where the program called name lives under root.
func Path(root, name string) string {
	return filepath.Join(root, name+constant.ScriptExtension)
}

// Load validates name and reads the program from root.
// The name is checked before the filesystem is touched.
func Load(root, name string) (*Program, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	path := Path(root, name)

	info, err := filesystem.API().Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	return &Program{Name: name, Path: path, Source: string(data)}, nil
}
