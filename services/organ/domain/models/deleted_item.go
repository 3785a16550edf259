package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordType names the kind of record a tombstone holds.
type RecordType string

const (
	RecordOrgan       RecordType = "organ"
	RecordMaintenance RecordType = "maintenance"
)

// Valid reports whether t is organ or maintenance.
func (t RecordType) Valid() bool {
	return t == RecordOrgan || t == RecordMaintenance
}

// DeletionMetadata is resolved at delete time so the log stays readable after
// the referenced records are gone.
type DeletionMetadata struct {
	LocationName string         `json:"location_name,omitempty"`
	Adm          Administration `json:"adm,omitempty"`
}

// DeletedItem is a write-once tombstone. Data holds the exact JSON encoding of
// the record as it was immediately before deletion.
type DeletedItem struct {
	ID        string           `json:"id"`
	Type      RecordType       `json:"type"`
	Data      json.RawMessage  `json:"data"`
	Reason    string           `json:"reason"`
	DeletedAt time.Time        `json:"deleted_at"`
	Metadata  DeletionMetadata `json:"metadata"`
}

// NewDeletedItem snapshots record into a tombstone.
func NewDeletedItem(id string, typ RecordType, record any, reason string, deletedAt time.Time, meta DeletionMetadata) (DeletedItem, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return DeletedItem{}, fmt.Errorf("snapshot %s: %w", typ, err)
	}
	return DeletedItem{
		ID:        id,
		Type:      typ,
		Data:      data,
		Reason:    reason,
		DeletedAt: deletedAt.UTC(),
		Metadata:  meta,
	}, nil
}

// Organ decodes the snapshot of an organ tombstone.
func (d DeletedItem) Organ() (*Organ, error) {
	if d.Type != RecordOrgan {
		return nil, fmt.Errorf("tombstone %s holds a %s, not an organ", d.ID, d.Type)
	}
	var o Organ
	if err := json.Unmarshal(d.Data, &o); err != nil {
		return nil, fmt.Errorf("decode organ snapshot: %w", err)
	}
	return &o, nil
}

// Maintenance decodes the snapshot of a maintenance tombstone.
func (d DeletedItem) Maintenance() (*Maintenance, error) {
	if d.Type != RecordMaintenance {
		return nil, fmt.Errorf("tombstone %s holds a %s, not a maintenance", d.ID, d.Type)
	}
	var m Maintenance
	if err := json.Unmarshal(d.Data, &m); err != nil {
		return nil, fmt.Errorf("decode maintenance snapshot: %w", err)
	}
	return &m, nil
}
