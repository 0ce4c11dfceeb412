package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig reads a json5 configuration file. `name` must carry a file
// extension; a sibling `<name>.local.<ext>` file, if present, is merged on
// top of it so deployments can override checked-in defaults.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	localPath := localName(name)
	local, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override T
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", localPath, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func localName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ReadRecursively behaves like ReadConfig but walks up from the working
// directory until it finds a matching configuration file.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return zero, os.ErrNotExist
		}
		current = parent
	}
}
