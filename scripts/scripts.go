// Package scripts ships the default extraction programs and manages the script root.
package scripts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/script"
	"github.com/natty-misc/ymd3/util"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

//go:embed data/*.lua
var data embed.FS

// ErrExists is returned by Generate when the target program already exists.
var ErrExists = errors.New("script already exists")

// Builtins returns the names of the embedded programs, the bootstrap included.
func Builtins() []string {
	entries := lo.Must(data.ReadDir("data"))
	return lo.Map(entries, func(e fs.DirEntry, _ int) string {
		return util.FileStem(e.Name())
	})
}

// Source returns the embedded source of a builtin program.
func Source(name string) (string, bool) {
	b, err := data.ReadFile(path.Join("data", name+constant.ScriptExtension))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Install writes the embedded programs to root. Existing files are kept unless overwrite is set.
// It returns the paths that were written.
func Install(root string, overwrite bool) ([]string, error) {
	if err := filesystem.API().MkdirAll(root, os.ModePerm); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range Builtins() {
		target := script.Path(root, name)

		exists, err := filesystem.API().Exists(target)
		if err != nil {
			return written, err
		}
		if exists && !overwrite {
			continue
		}

		source, _ := Source(name)
		if err := filesystem.API().WriteFile(target, []byte(source), 0o644); err != nil {
			return written, err
		}
		written = append(written, target)
	}

	return written, nil
}

// List returns the names of the valid programs under root, sorted.
func List(root string) ([]string, error) {
	files, err := filesystem.API().ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	names := lo.FilterMap(files, func(f os.FileInfo, _ int) (string, bool) {
		if f.IsDir() || filepath.Ext(f.Name()) != constant.ScriptExtension {
			return "", false
		}

		name := util.FileStem(f.Name())
		return name, script.ValidName(name)
	})

	slices.Sort(names)
	return names, nil
}

// Remove deletes the program called name from root.
func Remove(root, name string) error {
	if !script.ValidName(name) {
		return fmt.Errorf("%w: %q", script.ErrInvalidName, name)
	}

	err := filesystem.API().Remove(script.Path(root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", script.ErrNotFound, name)
	}
	return err
}

// Scaffold describes a program generated from the template.
type Scaffold struct {
	Name   string
	URL    string
	Author string
}

// scaffoldTemplate is the text Render executes.
var scaffoldTemplate = constant.ScriptTemplate

// Render writes the scaffolded program to w.
func (s Scaffold) Render(w io.Writer) error {
	funcMap := template.FuncMap{
		"repeat": strings.Repeat,
		"plus":   func(a, b int) int { return a + b },
		"max":    util.Max[int],
	}

	tmpl, err := template.New("script").Funcs(funcMap).Parse(scaffoldTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, struct {
		Scaffold
		Namespace        string
		GetVersionFn     string
		LogFn            string
		RetrieveFn       string
		InputURL         string
		VideoURLField    string
		VideoNameField   string
		VideoAuthorField string
		DownloadURLField string
	}{
		Scaffold:         s,
		Namespace:        constant.Namespace,
		GetVersionFn:     constant.GetVersionFn,
		LogFn:            constant.LogFn,
		RetrieveFn:       constant.RetrieveFn,
		InputURL:         constant.InputURL,
		VideoURLField:    constant.VideoURLField,
		VideoNameField:   constant.VideoNameField,
		VideoAuthorField: constant.VideoAuthorField,
		DownloadURLField: constant.DownloadURLField,
	})
}

// Generate scaffolds a new program under root and returns its path.
// The name is sanitized and must then be a valid program name.
func Generate(root string, s Scaffold) (string, error) {
	s.Name = util.SanitizeFilename(s.Name)
	if !script.ValidName(s.Name) {
		return "", fmt.Errorf("%w: %q", script.ErrInvalidName, s.Name)
	}

	if s.Author == "" {
		s.Author = "Anonymous"
	}

	target := script.Path(root, s.Name)
	exists, err := filesystem.API().Exists(target)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrExists, target)
	}

	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return "", err
	}

	if err := filesystem.API().MkdirAll(root, os.ModePerm); err != nil {
		return "", err
	}

	if err := filesystem.API().WriteFile(target, buf.Bytes(), 0o644); err != nil {
		_ = filesystem.API().Remove(target)
		return "", err
	}

	return target, nil
}
