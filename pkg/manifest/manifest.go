// Package manifest persists the record of an organize run so it can be
// reversed exactly, including names a directory scan could never reconstruct.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/fsort/pkg/organize"
)

// ErrNotFound is returned by Load when the directory has no manifest.
var ErrNotFound = errors.New("manifest not found")

// Manifest records one organize run.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	CreatedAt   time.Time       `yaml:"created_at"`
	Separator   string          `yaml:"separator"`
	StripPrefix bool            `yaml:"strip_prefix"`
	Moves       []organize.Move `yaml:"moves"`
}

// New builds a manifest for the moves an organize run performed.
func New(separator string, stripPrefix bool, moves []organize.Move) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Separator:   separator,
		StripPrefix: stripPrefix,
		Moves:       moves,
	}
}

// Path returns the manifest location for an organized directory.
func Path(dir string) string {
	return filepath.Join(dir, organize.ManifestName)
}

// Write stores the manifest in dir. An existing manifest is overwritten; the
// new run supersedes it.
func Write(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(Path(dir), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Load reads the manifest from dir. Returns ErrNotFound when none exists.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", Path(dir), err)
	}
	if m.RunID == "" || len(m.Moves) == 0 {
		return nil, fmt.Errorf("manifest %s is incomplete", Path(dir))
	}
	return &m, nil
}

// Remove deletes the manifest from dir. Missing manifests are not an error.
func Remove(dir string) error {
	err := os.Remove(Path(dir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing manifest: %w", err)
	}
	return nil
}
