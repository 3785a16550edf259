package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// TopicStateChanged is published after every committed mutation.
const TopicStateChanged = "organcare.state.changed"

// TopicRecordDeleted is published after a tombstone is committed.
const TopicRecordDeleted = "organcare.record.deleted"

// Operation names the mutation that produced a StateChangedEvent.
type Operation string

const (
	OpAddOrgan          Operation = "add_organ"
	OpUpdateOrgan       Operation = "update_organ"
	OpDeleteOrgan       Operation = "delete_organ"
	OpAddMaintenance    Operation = "add_maintenance"
	OpUpdateMaintenance Operation = "update_maintenance"
	OpDeleteMaintenance Operation = "delete_maintenance"
)

// StateChangedEvent carries no state; subscribers read the current aggregate
// from their own store.
type StateChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	Operation  Operation `json:"operation"`
	RecordID   string    `json:"record_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RecordDeletedEvent mirrors a committed tombstone.
type RecordDeletedEvent struct {
	EventID      uuid.UUID             `json:"event_id"`
	Version      int                   `json:"version"`
	TombstoneID  string                `json:"tombstone_id"`
	RecordType   models.RecordType     `json:"record_type"`
	RecordID     string                `json:"record_id"`
	Reason       string                `json:"reason"`
	LocationName string                `json:"location_name,omitempty"`
	Adm          models.Administration `json:"adm,omitempty"`
	OccurredAt   time.Time             `json:"occurred_at"`
}

// NewStateChanged builds a version 1 StateChangedEvent.
func NewStateChanged(op Operation, recordID string, at time.Time) StateChangedEvent {
	return StateChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Operation:  op,
		RecordID:   recordID,
		OccurredAt: at.UTC(),
	}
}

// NewRecordDeleted builds a version 1 RecordDeletedEvent from a tombstone.
func NewRecordDeleted(tomb models.DeletedItem, recordID string) RecordDeletedEvent {
	return RecordDeletedEvent{
		EventID:      uuid.New(),
		Version:      1,
		TombstoneID:  tomb.ID,
		RecordType:   tomb.Type,
		RecordID:     recordID,
		Reason:       tomb.Reason,
		LocationName: tomb.Metadata.LocationName,
		Adm:          tomb.Metadata.Adm,
		OccurredAt:   tomb.DeletedAt,
	}
}
