// Package config loads the optional .xtar configuration file that provides defaults for the xtar commands.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

// Name is the name of the configuration file.
const Name = ".xtar"

// Loader can be used for loading .xtar configuration.
type Loader struct {
	cfg *ini.File
}

// Load will traverse the directory hierarchy upwards from the current working directory to find the first ".xtar"
// file available and load its contents into the Loader.
//
// The name of the .xtar file is returned, or an empty string if none was found.
func (l *Loader) Load(ctx context.Context) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return l.LoadFrom(ctx, dir)
}

// LoadFrom is a variant of Load that starts the search from the given directory instead.
func (l *Loader) LoadFrom(ctx context.Context, dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if err = ctx.Err(); err != nil {
			return "", err
		}

		path := filepath.Join(dir, Name)

		fi, err := os.Stat(path)
		switch {
		case err == nil && !fi.IsDir():
			return path, l.LoadFile(path)
		case err == nil, errors.Is(err, os.ErrNotExist):
			parent := filepath.Dir(dir)
			if parent == dir {
				return "", nil
			}

			dir = parent
		default:
			return "", err
		}
	}
}

// LoadFile loads the named file into the Loader.
func (l *Loader) LoadFile(name string) (err error) {
	if l.cfg, err = ini.Load(name); err != nil {
		l.cfg = ini.Empty()
		return fmt.Errorf(`load config "%s" error: %w`, name, err)
	}

	return nil
}

func (l *Loader) section(name string) *ini.Section {
	if l.cfg == nil {
		return nil
	}

	sec, err := l.cfg.GetSection(name)
	if err != nil {
		return nil
	}

	return sec
}

// DefaultLoader is the default Loader instance for package-level methods.
var DefaultLoader = &Loader{cfg: ini.Empty()}

// Load calls Loader.Load on the DefaultLoader instance.
func Load(ctx context.Context) (string, error) {
	return DefaultLoader.Load(ctx)
}

// LoadFile calls Loader.LoadFile on the DefaultLoader instance.
func LoadFile(name string) error {
	return DefaultLoader.LoadFile(name)
}
