// Package services contains stateless domain services for the organ bounded
// context: the pending-status rules, the state transitions of the mutation
// pipeline and cross-field validation. Nothing here touches storage or clocks;
// callers pass the state and the current time in.
package services

import (
	"time"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// LatestMaintenance returns the most recent maintenance date of an organ.
// found is false when the organ has never been maintained.
func LatestMaintenance(state *models.AppState, organID string) (latest time.Time, found bool) {
	for _, m := range state.Maintenances {
		if m.OrganID != organID {
			continue
		}
		if !found || m.Date.After(latest) {
			latest = m.Date
			found = true
		}
	}
	return latest, found
}

// IsMaintenancePending reports whether an organ is overdue. An organ with no
// maintenance at all is pending. Otherwise it is pending when its latest
// maintenance date is strictly before the same calendar instant one year ago.
func IsMaintenancePending(state *models.AppState, organID string, now time.Time) bool {
	latest, found := LatestMaintenance(state, organID)
	if !found {
		return true
	}
	return latest.Before(now.AddDate(-1, 0, 0))
}

// IsLocationPending reports whether any organ at the location is pending. A
// location without organs is not pending.
func IsLocationPending(state *models.AppState, locationID string, now time.Time) bool {
	for _, o := range state.Organs {
		if o.LocationID == locationID && IsMaintenancePending(state, o.ID, now) {
			return true
		}
	}
	return false
}

// IsAdmPending reports whether any location of the administration is pending.
func IsAdmPending(state *models.AppState, adm models.Administration, now time.Time) bool {
	for _, l := range state.Locations {
		if l.Adm == adm && IsLocationPending(state, l.ID, now) {
			return true
		}
	}
	return false
}

// StatusCounts is the dashboard breakdown of organs by maintenance status.
type StatusCounts struct {
	Total    int `json:"total"`
	UpToDate int `json:"up_to_date"`
	Pending  int `json:"pending"`
}

// Summarize counts every organ as either up to date or pending.
func Summarize(state *models.AppState, now time.Time) StatusCounts {
	c := StatusCounts{Total: len(state.Organs)}
	for _, o := range state.Organs {
		if IsMaintenancePending(state, o.ID, now) {
			c.Pending++
		}
	}
	c.UpToDate = c.Total - c.Pending
	return c
}

// LocationStatus pairs a location with its derived pending flag.
type LocationStatus struct {
	models.Location
	OrganCount int  `json:"organ_count"`
	Pending    bool `json:"pending"`
}

// FilterLocations returns the locations of adm whose name contains term
// (case-insensitive), each annotated with its status.
func FilterLocations(state *models.AppState, adm models.Administration, term string, now time.Time) []LocationStatus {
	locs := state.SearchLocations(adm, term)
	out := make([]LocationStatus, 0, len(locs))
	for _, l := range locs {
		out = append(out, LocationStatus{
			Location:   l,
			OrganCount: len(state.OrgansAt(l.ID)),
			Pending:    IsLocationPending(state, l.ID, now),
		})
	}
	return out
}

// AdmStatus pairs an administration with its derived pending flag.
type AdmStatus struct {
	Adm     models.Administration `json:"adm"`
	Pending bool                  `json:"pending"`
}

// AdmStatuses reports every administration in display order.
func AdmStatuses(state *models.AppState, now time.Time) []AdmStatus {
	out := make([]AdmStatus, 0, len(models.Administrations))
	for _, adm := range models.Administrations {
		out = append(out, AdmStatus{Adm: adm, Pending: IsAdmPending(state, adm, now)})
	}
	return out
}
