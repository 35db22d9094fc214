// Package store persists application state as a JSON file so addresses and
// read messages survive restarts.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"tempmail-pro/models"
)

// Store reads and writes the state file. Saves are atomic: the state is
// written to a temp file in the same directory and renamed into place.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the state file. A missing file yields an empty state.
func (s *Store) Load() (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.NewState(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading state file")
	}

	state := models.NewState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, errors.Wrap(err, "parsing state file")
	}
	if state.ReadMessages == nil {
		state.ReadMessages = map[string]models.Message{}
	}
	return state, nil
}

// Save writes the state atomically.
func (s *Store) Save(state *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating state directory")
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return errors.Wrap(err, "creating temp state file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing state")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp state file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing state file")
}
