// Package sqlstore keeps the state document in the app_state table. The same
// repository serves the sqlite and postgres drivers; only the placeholders
// and the timestamp encoding differ.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/organcare/pkg/database"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

const (
	selectPostgres = `SELECT payload FROM app_state WHERE key = $1`
	upsertPostgres = `INSERT INTO app_state (key, payload, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	selectSQLite = `SELECT payload FROM app_state WHERE key = ?`
	upsertSQLite = `INSERT INTO app_state (key, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// StateRepository implements repositories.StateRepository on database/sql.
type StateRepository struct {
	db  *database.Database
	now func() time.Time
}

// New returns a StateRepository on db. The app_state table must exist; run
// the migrations first.
func New(db *database.Database) *StateRepository {
	return &StateRepository{db: db, now: time.Now}
}

// Load implements repositories.StateRepository.
func (r *StateRepository) Load(ctx context.Context) (*models.AppState, bool, error) {
	query := selectPostgres
	if r.db.Driver() == database.DriverSQLite {
		query = selectSQLite
	}

	var payload string
	if err := r.db.DB().QueryRowContext(ctx, query, models.StateKey).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query state: %w", err)
	}

	s, err := models.DecodeState([]byte(payload))
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Save implements repositories.StateRepository.
func (r *StateRepository) Save(ctx context.Context, state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	at := r.now().UTC()
	query, updatedAt := upsertPostgres, any(at)
	if r.db.Driver() == database.DriverSQLite {
		query, updatedAt = upsertSQLite, at.Format(time.RFC3339Nano)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, models.StateKey, string(data), updatedAt); err != nil {
			return fmt.Errorf("upsert state: %w", err)
		}
		return nil
	})
}

// Ping checks the connection.
func (r *StateRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close is a no-op; the pool belongs to the caller.
func (r *StateRepository) Close() error { return nil }
