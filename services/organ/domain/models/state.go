package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// StateKey is the storage key the whole aggregate is persisted under.
const StateKey = "organ_maintenance_state"

// AppState is the aggregate root. Every maintenance references an existing
// organ; cascade delete keeps that true.
type AppState struct {
	Organs       []Organ       `json:"organs"`
	Maintenances []Maintenance `json:"maintenances"`
	Locations    []Location    `json:"locations"`
	DeletedItems []DeletedItem `json:"deleted_items"`
}

// NewAppState returns an empty state seeded with locations.
func NewAppState(locations []Location) *AppState {
	return &AppState{
		Organs:       []Organ{},
		Maintenances: []Maintenance{},
		Locations:    slices.Clone(locations),
		DeletedItems: []DeletedItem{},
	}
}

// DecodeState parses a stored state document and normalizes it.
func DecodeState(data []byte) (*AppState, error) {
	var s AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// Normalize replaces nil collections with empty ones so encoded state always
// carries arrays.
func (s *AppState) Normalize() {
	if s.Organs == nil {
		s.Organs = []Organ{}
	}
	if s.Maintenances == nil {
		s.Maintenances = []Maintenance{}
	}
	if s.Locations == nil {
		s.Locations = []Location{}
	}
	if s.DeletedItems == nil {
		s.DeletedItems = []DeletedItem{}
	}
}

// Clone returns a deep copy that shares no mutable memory with s.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Organs:       slices.Clone(s.Organs),
		Maintenances: make([]Maintenance, len(s.Maintenances)),
		Locations:    slices.Clone(s.Locations),
		DeletedItems: make([]DeletedItem, len(s.DeletedItems)),
	}
	for i, m := range s.Maintenances {
		out.Maintenances[i] = m.Clone()
	}
	for i, d := range s.DeletedItems {
		d.Data = slices.Clone(d.Data)
		out.DeletedItems[i] = d
	}
	out.Normalize()
	return out
}

// FindOrgan returns the organ with id.
func (s *AppState) FindOrgan(id string) (*Organ, bool) {
	for i := range s.Organs {
		if s.Organs[i].ID == id {
			return &s.Organs[i], true
		}
	}
	return nil, false
}

// FindMaintenance returns the maintenance with id.
func (s *AppState) FindMaintenance(id string) (*Maintenance, bool) {
	for i := range s.Maintenances {
		if s.Maintenances[i].ID == id {
			return &s.Maintenances[i], true
		}
	}
	return nil, false
}

// FindLocation returns the location with id.
func (s *AppState) FindLocation(id string) (*Location, bool) {
	for i := range s.Locations {
		if s.Locations[i].ID == id {
			return &s.Locations[i], true
		}
	}
	return nil, false
}

// OrgansAt returns the organs installed at a location, in stored order.
func (s *AppState) OrgansAt(locationID string) []Organ {
	out := []Organ{}
	for _, o := range s.Organs {
		if o.LocationID == locationID {
			out = append(out, o)
		}
	}
	return out
}

// MaintenancesFor returns the maintenance history of an organ, in stored order.
func (s *AppState) MaintenancesFor(organID string) []Maintenance {
	out := []Maintenance{}
	for _, m := range s.Maintenances {
		if m.OrganID == organID {
			out = append(out, m)
		}
	}
	return out
}

// LocationsIn returns the locations of one administration.
func (s *AppState) LocationsIn(adm Administration) []Location {
	out := []Location{}
	for _, l := range s.Locations {
		if l.Adm == adm {
			out = append(out, l)
		}
	}
	return out
}

// SearchLocations filters the locations of adm by a case-insensitive substring
// of their name. An empty term matches every location.
func (s *AppState) SearchLocations(adm Administration, term string) []Location {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []Location{}
	for _, l := range s.LocationsIn(adm) {
		if term == "" || strings.Contains(strings.ToLower(l.Name), term) {
			out = append(out, l)
		}
	}
	return out
}
