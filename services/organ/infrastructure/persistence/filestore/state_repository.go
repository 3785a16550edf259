// Package filestore keeps the state document as a JSON file on local disk.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// FileName is the name of the document inside the storage directory.
const FileName = models.StateKey + ".json"

// StateRepository reads and writes one JSON file. Writes go to a temporary
// file in the same directory which is then renamed over the document.
type StateRepository struct {
	path string
}

// New returns a StateRepository for dir, creating dir when missing.
func New(dir string) (*StateRepository, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", dir, err)
	}
	return &StateRepository{path: filepath.Join(dir, FileName)}, nil
}

// Path returns the document path.
func (r *StateRepository) Path() string {
	return r.path
}

// Load implements repositories.StateRepository.
func (r *StateRepository) Load(_ context.Context) (*models.AppState, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("filestore: read: %w", err)
	}
	s, err := models.DecodeState(data)
	if err != nil {
		return nil, false, fmt.Errorf("filestore: %w", err)
	}
	return s, true, nil
}

// Save implements repositories.StateRepository.
func (r *StateRepository) Save(_ context.Context, state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("filestore: rename: %w", err)
	}
	return nil
}

// Ping checks that the storage directory is reachable.
func (r *StateRepository) Ping(_ context.Context) error {
	if _, err := os.Stat(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("filestore: %w", err)
	}
	return nil
}

// Close is a no-op.
func (r *StateRepository) Close() error { return nil }
