package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxTechnicians is the number of technicians a single maintenance may list.
const MaxTechnicians = 2

// PartExchange describes a replaced part. Present on a Maintenance iff
// HasPartExchange is true.
type PartExchange struct {
	Description string `json:"description"`
	Reason      string `json:"reason"`
	Observation string `json:"observation"`
}

// Maintenance is one service event on an organ.
type Maintenance struct {
	ID                  string        `json:"id"`
	OrganID             string        `json:"organ_id"`
	Date                time.Time     `json:"date"`
	Technicians         []string      `json:"technicians"`
	Occurrence          string        `json:"occurrence"`
	HasPartExchange     bool          `json:"has_part_exchange"`
	PartExchangeDetails *PartExchange `json:"part_exchange_details,omitempty"`
	Photos              []string      `json:"photos"`
}

// NewMaintenance constructs a Maintenance with a generated ID. details is
// dropped unless hasPartExchange is set.
func NewMaintenance(organID string, date time.Time, technicians []string, occurrence string, hasPartExchange bool, details *PartExchange, photos []string) *Maintenance {
	m := &Maintenance{
		ID:              uuid.NewString(),
		OrganID:         organID,
		Date:            date.UTC(),
		Technicians:     slices.Clone(technicians),
		Occurrence:      occurrence,
		HasPartExchange: hasPartExchange,
		Photos:          slices.Clone(photos),
	}
	if hasPartExchange && details != nil {
		d := *details
		m.PartExchangeDetails = &d
	}
	if m.Technicians == nil {
		m.Technicians = []string{}
	}
	if m.Photos == nil {
		m.Photos = []string{}
	}
	return m
}

// Clone returns a deep copy.
func (m Maintenance) Clone() Maintenance {
	out := m
	out.Technicians = slices.Clone(m.Technicians)
	out.Photos = slices.Clone(m.Photos)
	if m.PartExchangeDetails != nil {
		d := *m.PartExchangeDetails
		out.PartExchangeDetails = &d
	}
	return out
}
