// Package badgerstore keeps the state document in an embedded BadgerDB.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

var stateKey = []byte(models.StateKey)

// StateRepository implements repositories.StateRepository on BadgerDB.
type StateRepository struct {
	db *badger.DB
}

// Open opens (or creates) a database in dir. An empty dir opens an in-memory
// database.
func Open(dir string, log logger.Logger) (*StateRepository, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("badgerstore: create %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(&badgerLogger{log: log})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open: %w", err)
	}
	return &StateRepository{db: db}, nil
}

// Load implements repositories.StateRepository.
func (r *StateRepository) Load(_ context.Context) (*models.AppState, bool, error) {
	var data []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("badgerstore: read: %w", err)
	}

	s, err := models.DecodeState(data)
	if err != nil {
		return nil, false, fmt.Errorf("badgerstore: %w", err)
	}
	return s, true, nil
}

// Save implements repositories.StateRepository.
func (r *StateRepository) Save(_ context.Context, state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("badgerstore: encode: %w", err)
	}
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey, data)
	}); err != nil {
		return fmt.Errorf("badgerstore: write: %w", err)
	}
	return nil
}

// Ping reports an error once the database is closed.
func (r *StateRepository) Ping(_ context.Context) error {
	if r.db.IsClosed() {
		return errors.New("badgerstore: database closed")
	}
	return nil
}

// Close flushes and closes the database.
func (r *StateRepository) Close() error {
	return r.db.Close()
}

// badgerLogger routes badger's printf-style logging to the service logger.
// Info and debug output is dropped.
type badgerLogger struct {
	log logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Infof(string, ...any) {}

func (l *badgerLogger) Debugf(string, ...any) {}
