package repositories

import (
	"context"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// StateRepository persists the whole AppState aggregate as one document under
// models.StateKey. The domain layer owns this interface; infrastructure
// implements it.
type StateRepository interface {
	// Load returns the stored state. found is false when nothing was stored yet.
	Load(ctx context.Context) (state *models.AppState, found bool, err error)

	// Save replaces the stored state.
	Save(ctx context.Context, state *models.AppState) error
}

// CloudSync mirrors the aggregate to a remote object store. It is optional and
// never authoritative.
type CloudSync interface {
	Pull(ctx context.Context) (state *models.AppState, found bool, err error)
	Push(ctx context.Context, state *models.AppState) error
	Name() string
}

// Summarizer produces a short natural-language summary of an organ's
// maintenance history. It never fails; errors become a fixed fallback text.
type Summarizer interface {
	Summarize(ctx context.Context, organ models.Organ, history []models.Maintenance) string
}
