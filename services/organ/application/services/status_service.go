package services

import (
	"fmt"
	"slices"
	"time"

	organdomain "github.com/ghuser/organcare/services/organ/domain"
	"github.com/ghuser/organcare/services/organ/domain/models"
	domainsvcs "github.com/ghuser/organcare/services/organ/domain/services"
)

// OrganStatus is an organ annotated with its location and derived status.
type OrganStatus struct {
	models.Organ
	LocationName    string                `json:"location_name,omitempty"`
	Adm             models.Administration `json:"adm,omitempty"`
	Pending         bool                  `json:"pending"`
	LastMaintenance *time.Time            `json:"last_maintenance,omitempty"`
}

// Dashboard is the top-level overview.
type Dashboard struct {
	Counts          domainsvcs.StatusCounts `json:"counts"`
	Administrations []domainsvcs.AdmStatus  `json:"administrations"`
	Organs          []OrganStatus           `json:"organs"`
}

// LocationDetail is one location with its organs.
type LocationDetail struct {
	models.Location
	Pending bool          `json:"pending"`
	Organs  []OrganStatus `json:"organs"`
}

// OrganDetail is one organ with its maintenance history, newest first.
type OrganDetail struct {
	OrganStatus
	Maintenances []models.Maintenance `json:"maintenances"`
}

// StatusService answers read-only questions about the current state. Every
// call derives status from the state as it is now; nothing is cached.
type StatusService struct {
	store *RecordStore
	now   func() time.Time
}

// NewStatusService returns a StatusService reading from store.
func NewStatusService(store *RecordStore) *StatusService {
	return &StatusService{store: store, now: time.Now}
}

// Counts tallies every organ as either up to date or pending.
func (s *StatusService) Counts() domainsvcs.StatusCounts {
	now := s.now()
	var c domainsvcs.StatusCounts
	s.store.View(func(state *models.AppState) {
		c = domainsvcs.Summarize(state, now)
	})
	return c
}

// Dashboard returns the status counts, the per-administration flags and every
// organ with its status.
func (s *StatusService) Dashboard() Dashboard {
	now := s.now()
	var d Dashboard
	s.store.View(func(state *models.AppState) {
		d.Counts = domainsvcs.Summarize(state, now)
		d.Administrations = domainsvcs.AdmStatuses(state, now)
		d.Organs = organStatuses(state, state.Organs, now)
	})
	return d
}

// Administrations returns the pending flag of every administration.
func (s *StatusService) Administrations() []domainsvcs.AdmStatus {
	now := s.now()
	var out []domainsvcs.AdmStatus
	s.store.View(func(state *models.AppState) {
		out = domainsvcs.AdmStatuses(state, now)
	})
	return out
}

// Locations returns the locations of adm matching term, with status.
func (s *StatusService) Locations(adm models.Administration, term string) []domainsvcs.LocationStatus {
	now := s.now()
	var out []domainsvcs.LocationStatus
	s.store.View(func(state *models.AppState) {
		out = domainsvcs.FilterLocations(state, adm, term, now)
	})
	return out
}

// Location returns one location with its organs.
func (s *StatusService) Location(id string) (LocationDetail, error) {
	now := s.now()
	var (
		d  LocationDetail
		ok bool
	)
	s.store.View(func(state *models.AppState) {
		var loc *models.Location
		loc, ok = state.FindLocation(id)
		if !ok {
			return
		}
		d = LocationDetail{
			Location: *loc,
			Pending:  domainsvcs.IsLocationPending(state, id, now),
			Organs:   organStatuses(state, state.OrgansAt(id), now),
		}
	})
	if !ok {
		return LocationDetail{}, fmt.Errorf("location %s: %w", id, organdomain.ErrLocationNotFound)
	}
	return d, nil
}

// Organ returns one organ with its maintenance history.
func (s *StatusService) Organ(id string) (OrganDetail, error) {
	now := s.now()
	var (
		d  OrganDetail
		ok bool
	)
	s.store.View(func(state *models.AppState) {
		var organ *models.Organ
		organ, ok = state.FindOrgan(id)
		if !ok {
			return
		}
		d = OrganDetail{
			OrganStatus:  organStatus(state, *organ, now),
			Maintenances: history(state, id),
		}
	})
	if !ok {
		return OrganDetail{}, fmt.Errorf("organ %s: %w", id, organdomain.ErrOrganNotFound)
	}
	return d, nil
}

// Maintenance returns one maintenance event.
func (s *StatusService) Maintenance(id string) (models.Maintenance, error) {
	var (
		m  models.Maintenance
		ok bool
	)
	s.store.View(func(state *models.AppState) {
		var found *models.Maintenance
		found, ok = state.FindMaintenance(id)
		if ok {
			m = found.Clone()
		}
	})
	if !ok {
		return models.Maintenance{}, fmt.Errorf("maintenance %s: %w", id, organdomain.ErrMaintenanceNotFound)
	}
	return m, nil
}

// Pending returns every organ that is overdue.
func (s *StatusService) Pending() []OrganStatus {
	now := s.now()
	out := []OrganStatus{}
	s.store.View(func(state *models.AppState) {
		for _, st := range organStatuses(state, state.Organs, now) {
			if st.Pending {
				out = append(out, st)
			}
		}
	})
	return out
}

// DeletedItems returns the deletion log newest first, optionally filtered by
// record type. An empty typ returns every tombstone.
func (s *StatusService) DeletedItems(typ models.RecordType) []models.DeletedItem {
	out := []models.DeletedItem{}
	s.store.View(func(state *models.AppState) {
		for _, d := range state.DeletedItems {
			if typ == "" || d.Type == typ {
				out = append(out, d)
			}
		}
	})
	return out
}

func organStatuses(state *models.AppState, organs []models.Organ, now time.Time) []OrganStatus {
	out := make([]OrganStatus, 0, len(organs))
	for _, o := range organs {
		out = append(out, organStatus(state, o, now))
	}
	return out
}

func organStatus(state *models.AppState, o models.Organ, now time.Time) OrganStatus {
	st := OrganStatus{
		Organ:   o,
		Pending: domainsvcs.IsMaintenancePending(state, o.ID, now),
	}
	if loc, ok := state.FindLocation(o.LocationID); ok {
		st.LocationName = loc.Name
		st.Adm = loc.Adm
	}
	if latest, ok := domainsvcs.LatestMaintenance(state, o.ID); ok {
		st.LastMaintenance = &latest
	}
	return st
}

func history(state *models.AppState, organID string) []models.Maintenance {
	ms := state.MaintenancesFor(organID)
	out := make([]models.Maintenance, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	slices.SortStableFunc(out, func(a, b models.Maintenance) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
