package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/higuga/higuga/internal/errs"
)

// DefaultDir resolves the config directory for persisted client state:
// $XDG_CONFIG_HOME/higuga, falling back to ~/.config/higuga.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "higuga")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "higuga")
}

// File stores each key as an indented JSON file under dir.
type File struct {
	dir string
}

// NewFile constructs a file-backed store rooted at dir.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path(key string) string {
	// keys are fixed identifiers; replace anything path-like defensively
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, strings.ToLower(key))
	return filepath.Join(f.dir, safe+".json")
}

// Load reads and unmarshals the value stored under key.
func (f *File) Load(key string, v any) error {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("localstore: %q: %w", key, errs.ErrNotFound)
		}
		return fmt.Errorf("localstore: read %q: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("localstore: decode %q: %w", key, err)
	}
	return nil
}

// Save marshals v and writes it under key, creating the directory on demand.
func (f *File) Save(key string, v any) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("localstore: mkdir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: encode %q: %w", key, err)
	}
	if err := os.WriteFile(f.path(key), b, 0o600); err != nil {
		return fmt.Errorf("localstore: write %q: %w", key, err)
	}
	return nil
}

// Delete removes the key; a missing file is not an error.
func (f *File) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localstore: delete %q: %w", key, err)
	}
	return nil
}
