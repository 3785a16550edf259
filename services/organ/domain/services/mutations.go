package services

import (
	"fmt"
	"slices"
	"time"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// The transitions below mutate the state they are given and report whether
// anything changed. A missing id is a silent no-op. Callers that need
// atomicity run them on a clone and swap it in afterwards.

// AddOrgan appends a new organ.
func AddOrgan(state *models.AppState, organ models.Organ) bool {
	state.Organs = append(state.Organs, organ)
	return true
}

// UpdateOrgan replaces the organ with the same id in place.
func UpdateOrgan(state *models.AppState, organ models.Organ) bool {
	i := slices.IndexFunc(state.Organs, func(o models.Organ) bool { return o.ID == organ.ID })
	if i < 0 {
		return false
	}
	state.Organs[i] = organ
	return true
}

// DeleteOrgan removes an organ and every maintenance that references it, and
// prepends a single tombstone holding the organ snapshot.
func DeleteOrgan(state *models.AppState, id, reason string, now time.Time, tombstoneID string) (models.DeletedItem, bool, error) {
	organ, ok := state.FindOrgan(id)
	if !ok {
		return models.DeletedItem{}, false, nil
	}

	var meta models.DeletionMetadata
	if loc, ok := state.FindLocation(organ.LocationID); ok {
		meta = models.DeletionMetadata{LocationName: loc.Name, Adm: loc.Adm}
	}

	tomb, err := models.NewDeletedItem(tombstoneID, models.RecordOrgan, organ, reason, now, meta)
	if err != nil {
		return models.DeletedItem{}, false, fmt.Errorf("delete organ %s: %w", id, err)
	}

	state.Organs = slices.DeleteFunc(state.Organs, func(o models.Organ) bool { return o.ID == id })
	state.Maintenances = slices.DeleteFunc(state.Maintenances, func(m models.Maintenance) bool { return m.OrganID == id })
	state.DeletedItems = slices.Insert(state.DeletedItems, 0, tomb)
	return tomb, true, nil
}

// AddMaintenance appends a maintenance event.
func AddMaintenance(state *models.AppState, m models.Maintenance) bool {
	state.Maintenances = append(state.Maintenances, m)
	return true
}

// UpdateMaintenance replaces the maintenance with the same id in place.
func UpdateMaintenance(state *models.AppState, m models.Maintenance) bool {
	i := slices.IndexFunc(state.Maintenances, func(x models.Maintenance) bool { return x.ID == m.ID })
	if i < 0 {
		return false
	}
	state.Maintenances[i] = m
	return true
}

// DeleteMaintenance removes one maintenance and prepends its tombstone. The
// location metadata is resolved through the owning organ.
func DeleteMaintenance(state *models.AppState, id, reason string, now time.Time, tombstoneID string) (models.DeletedItem, bool, error) {
	m, ok := state.FindMaintenance(id)
	if !ok {
		return models.DeletedItem{}, false, nil
	}

	var meta models.DeletionMetadata
	if organ, ok := state.FindOrgan(m.OrganID); ok {
		if loc, ok := state.FindLocation(organ.LocationID); ok {
			meta = models.DeletionMetadata{LocationName: loc.Name, Adm: loc.Adm}
		}
	}

	tomb, err := models.NewDeletedItem(tombstoneID, models.RecordMaintenance, m, reason, now, meta)
	if err != nil {
		return models.DeletedItem{}, false, fmt.Errorf("delete maintenance %s: %w", id, err)
	}

	state.Maintenances = slices.DeleteFunc(state.Maintenances, func(x models.Maintenance) bool { return x.ID == id })
	state.DeletedItems = slices.Insert(state.DeletedItems, 0, tomb)
	return tomb, true, nil
}
