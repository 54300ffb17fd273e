package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// layers returns the files making up the configuration `name`, lowest
// priority first: <name>.<ext> then <name>.local.<ext>.
func layers(name string) []string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return []string{name, stem + ".local" + ext}
}

// decodeFile reads and decodes a json5 file, ok is false when the file
// does not exist or is empty.
func decodeFile[T any](path string) (out T, ok bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if len(contents) == 0 {
		return out, false, nil
	}
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, true, nil
}

// ReadConfig reads the configuration file `name` (with its extension) and
// merges `<name>.local.<ext>` over it when present. When neither file
// exists, [os.ErrNotExist] is returned.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false
	for _, path := range layers(name) {
		layer, ok, err := decodeFile[T](path)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		if found {
			slog.Info("merging config with local overrides", "local", path)
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		found = true
	}
	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively looks for `name` in the working directory and then in each
// of its parents.
func ReadRecursively[T any](name string) (T, error) {
	var zero T
	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}
	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return zero, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}

// ReadWithDefaults reads the configuration at `name` (recursively upward when
// the name is a bare file name) and merges it over `defaults`, fields left
// empty in the files keep their default value. A missing file is not an error.
func ReadWithDefaults[T any](name string, defaults T) (T, error) {
	read := ReadConfig[T]
	if filepath.Base(name) == name {
		read = ReadRecursively[T]
	}
	config, err := read(name)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "name", name)
		return defaults, nil
	}
	if err != nil {
		return defaults, err
	}

	out := defaults
	err = mergo.Merge(&out, config, mergo.WithOverride)
	if err != nil {
		return defaults, err
	}
	return out, nil
}
