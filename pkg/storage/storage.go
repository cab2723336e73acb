// Package storage keeps named artifacts in a local directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Dir struct {
	path string
}

func New(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// Write creates or replaces the artifact. The content is written to a temporary file first, so readers never see a
// partially written artifact.
func (d *Dir) Write(name string, data []byte) (retErr error) {
	if err := checkName(name); err != nil {
		return err
	}

	file, err := os.CreateTemp(d.path, "."+name+".*")
	if err != nil {
		return fmt.Errorf("unable to create %q artifact: %w", name, err)
	}
	tempPath := file.Name()

	defer func() {
		if retErr != nil {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %q artifact: %w", name, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %q artifact: %w", name, err)
	}

	if err := os.Chmod(tempPath, 0o644); err != nil {
		return fmt.Errorf("failed to write %q artifact: %w", name, err)
	}

	if err := os.Rename(tempPath, d.Path(name)); err != nil {
		return fmt.Errorf("failed to write %q artifact: %w", name, err)
	}

	return nil
}

func (d *Dir) Read(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q artifact: %w", name, err)
	}

	return data, nil
}

var errInvalidName = errors.New("invalid artifact name")

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", errInvalidName, name)
	}
	return nil
}
