package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// ValidateOrgan performs cross-field validation on an organ before it is
// committed. Referential checks against the state are the caller's job.
func ValidateOrgan(o *models.Organ) error {
	if o == nil {
		return fmt.Errorf("organ cannot be nil")
	}
	if o.ID == "" {
		return fmt.Errorf("id must be set")
	}
	if o.LocationID == "" {
		return fmt.Errorf("location_id must be set")
	}
	if !o.ChurchLocation.Valid() {
		return fmt.Errorf("unknown church location %q", o.ChurchLocation)
	}
	if strings.TrimSpace(o.Model) == "" {
		return fmt.Errorf("model must not be empty")
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("created_at must be set")
	}
	return nil
}

// ValidateMaintenance enforces the maintenance business rules:
//   - at most MaxTechnicians technicians, none blank
//   - part exchange details present iff HasPartExchange
//   - a non-zero date
func ValidateMaintenance(m *models.Maintenance) error {
	if m == nil {
		return fmt.Errorf("maintenance cannot be nil")
	}
	if m.ID == "" {
		return fmt.Errorf("id must be set")
	}
	if m.OrganID == "" {
		return fmt.Errorf("organ_id must be set")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("date must be set")
	}
	if len(m.Technicians) > models.MaxTechnicians {
		return fmt.Errorf("at most %d technicians allowed, got %d", models.MaxTechnicians, len(m.Technicians))
	}
	for _, name := range m.Technicians {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("technician name must not be blank")
		}
	}
	if m.HasPartExchange && m.PartExchangeDetails == nil {
		return fmt.Errorf("part exchange details required when a part was exchanged")
	}
	if !m.HasPartExchange && m.PartExchangeDetails != nil {
		return fmt.Errorf("part exchange details given without a part exchange")
	}
	return nil
}
