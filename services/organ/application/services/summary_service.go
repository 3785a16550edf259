package services

import (
	"context"
	"fmt"

	organdomain "github.com/ghuser/organcare/services/organ/domain"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
)

// SummaryService asks the summarizer for a short report on one organ.
type SummaryService struct {
	store      *RecordStore
	summarizer repositories.Summarizer
}

// NewSummaryService returns a SummaryService.
func NewSummaryService(store *RecordStore, summarizer repositories.Summarizer) *SummaryService {
	return &SummaryService{store: store, summarizer: summarizer}
}

// Summarize returns the summary text for an organ. The state is read under
// the store lock; the summarizer runs outside it.
func (s *SummaryService) Summarize(ctx context.Context, organID string) (string, error) {
	var (
		organ   models.Organ
		history []models.Maintenance
		ok      bool
	)
	s.store.View(func(state *models.AppState) {
		var o *models.Organ
		if o, ok = state.FindOrgan(organID); ok {
			organ = *o
			for _, m := range state.MaintenancesFor(organID) {
				history = append(history, m.Clone())
			}
		}
	})
	if !ok {
		return "", fmt.Errorf("summarize organ %s: %w", organID, organdomain.ErrOrganNotFound)
	}
	return s.summarizer.Summarize(ctx, organ, history), nil
}
