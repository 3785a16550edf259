package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ghuser/organcare/services/organ/domain/events"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

func TestStateChangedEvent_JSONFieldNames(t *testing.T) {
	evt := events.NewStateChanged(events.OpDeleteOrgan, "o1", time.Now())

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "operation", "record_id", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestNewRecordDeleted(t *testing.T) {
	at := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	tomb := models.DeletedItem{
		ID:        "t1",
		Type:      models.RecordOrgan,
		Reason:    "stolen",
		DeletedAt: at,
		Metadata:  models.DeletionMetadata{LocationName: "Centro", Adm: models.AdmLaguna},
	}

	evt := events.NewRecordDeleted(tomb, "o1")

	if evt.Version != 1 {
		t.Errorf("Version: got %d, want 1", evt.Version)
	}
	if evt.TombstoneID != "t1" || evt.RecordID != "o1" {
		t.Errorf("ids: got %q/%q", evt.TombstoneID, evt.RecordID)
	}
	if evt.Adm != models.AdmLaguna || evt.LocationName != "Centro" {
		t.Errorf("metadata: got %q/%q", evt.Adm, evt.LocationName)
	}
	if !evt.OccurredAt.Equal(at) {
		t.Errorf("OccurredAt: got %v, want %v", evt.OccurredAt, at)
	}
}

func TestTopics_Value(t *testing.T) {
	if events.TopicStateChanged != "organcare.state.changed" {
		t.Errorf("unexpected %q", events.TopicStateChanged)
	}
	if events.TopicRecordDeleted != "organcare.record.deleted" {
		t.Errorf("unexpected %q", events.TopicRecordDeleted)
	}
}
