package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/telemetry"
	organdomain "github.com/ghuser/organcare/services/organ/domain"
	domainevents "github.com/ghuser/organcare/services/organ/domain/events"
	"github.com/ghuser/organcare/services/organ/domain/models"
	domainsvcs "github.com/ghuser/organcare/services/organ/domain/services"
)

// EventPublisher is the subset of events.EventBus the mutation service needs.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// OrganInput carries the editable fields of an organ.
type OrganInput struct {
	LocationID      string
	ChurchLocation  models.ChurchPosition
	Model           string
	SerialNumber    string
	PatrimonyNumber string
}

// MaintenanceInput carries the editable fields of a maintenance event.
type MaintenanceInput struct {
	OrganID             string
	Date                time.Time
	Technicians         []string
	Occurrence          string
	HasPartExchange     bool
	PartExchangeDetails *models.PartExchange
	Photos              []string
}

// MutationService commits the mutation pipeline against the RecordStore.
// Events are published after the state is committed; a failed publish is
// logged and never undoes the mutation.
type MutationService struct {
	store     *RecordStore
	publisher EventPublisher
	log       logger.Logger
	mutations metric.Int64Counter

	now   func() time.Time
	newID func() string
}

// NewMutationService returns a MutationService. publisher may be nil.
func NewMutationService(store *RecordStore, publisher EventPublisher, log logger.Logger) *MutationService {
	counter, err := telemetry.NewCounter(telemetry.MetricMutations, "Committed and rejected record mutations")
	if err != nil {
		log.Error("mutation service: create counter", "error", err)
	}
	return &MutationService{
		store:     store,
		publisher: publisher,
		log:       log,
		mutations: counter,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// CreateOrgan registers a new organ at an existing location.
func (s *MutationService) CreateOrgan(ctx context.Context, in OrganInput) (*models.Organ, error) {
	organ := models.NewOrgan(in.LocationID, in.ChurchLocation,
		strings.TrimSpace(in.Model), strings.TrimSpace(in.SerialNumber), strings.TrimSpace(in.PatrimonyNumber), s.now())
	organ.ID = s.newID()
	if err := domainsvcs.ValidateOrgan(organ); err != nil {
		return nil, s.fail(ctx, domainevents.OpAddOrgan, fmt.Errorf("%w: %w", organdomain.ErrInvalidOrgan, err))
	}

	_, err := s.store.Update(ctx, func(state *models.AppState) (bool, error) {
		if _, ok := state.FindLocation(organ.LocationID); !ok {
			return false, fmt.Errorf("%w: %w", organdomain.ErrInvalidOrgan, organdomain.ErrLocationNotFound)
		}
		return domainsvcs.AddOrgan(state, *organ), nil
	})
	if err != nil {
		return nil, s.fail(ctx, domainevents.OpAddOrgan, err)
	}

	s.committed(ctx, domainevents.OpAddOrgan, organ.ID)
	return organ, nil
}

// UpdateOrgan replaces the editable fields of an organ. The id and creation
// time never change. Returns ErrOrganNotFound when no organ has id.
func (s *MutationService) UpdateOrgan(ctx context.Context, id string, in OrganInput) (*models.Organ, error) {
	var updated models.Organ
	applied, err := s.store.Update(ctx, func(state *models.AppState) (bool, error) {
		current, ok := state.FindOrgan(id)
		if !ok {
			return false, nil
		}
		updated = models.Organ{
			ID:              current.ID,
			LocationID:      in.LocationID,
			ChurchLocation:  in.ChurchLocation,
			Model:           strings.TrimSpace(in.Model),
			SerialNumber:    strings.TrimSpace(in.SerialNumber),
			PatrimonyNumber: strings.TrimSpace(in.PatrimonyNumber),
			CreatedAt:       current.CreatedAt,
		}
		if err := domainsvcs.ValidateOrgan(&updated); err != nil {
			return false, fmt.Errorf("%w: %w", organdomain.ErrInvalidOrgan, err)
		}
		if _, ok := state.FindLocation(updated.LocationID); !ok {
			return false, fmt.Errorf("%w: %w", organdomain.ErrInvalidOrgan, organdomain.ErrLocationNotFound)
		}
		return domainsvcs.UpdateOrgan(state, updated), nil
	})
	if err != nil {
		return nil, s.fail(ctx, domainevents.OpUpdateOrgan, err)
	}
	if !applied {
		return nil, s.fail(ctx, domainevents.OpUpdateOrgan, fmt.Errorf("update organ %s: %w", id, organdomain.ErrOrganNotFound))
	}

	s.committed(ctx, domainevents.OpUpdateOrgan, id)
	return &updated, nil
}

// DeleteOrgan removes an organ and its maintenance history and records a
// tombstone holding reason as typed. Returns ErrReasonRequired for a blank
// reason and ErrOrganNotFound when no organ has id.
func (s *MutationService) DeleteOrgan(ctx context.Context, id, reason string) (models.DeletedItem, error) {
	return s.delete(ctx, domainevents.OpDeleteOrgan, id, reason, organdomain.ErrOrganNotFound, domainsvcs.DeleteOrgan)
}

// CreateMaintenance records a maintenance event for an existing organ.
func (s *MutationService) CreateMaintenance(ctx context.Context, in MaintenanceInput) (*models.Maintenance, error) {
	m := models.NewMaintenance(in.OrganID, in.Date, in.Technicians, in.Occurrence, in.HasPartExchange, in.PartExchangeDetails, in.Photos)
	m.ID = s.newID()
	if err := domainsvcs.ValidateMaintenance(m); err != nil {
		return nil, s.fail(ctx, domainevents.OpAddMaintenance, fmt.Errorf("%w: %w", organdomain.ErrInvalidMaintenance, err))
	}

	_, err := s.store.Update(ctx, func(state *models.AppState) (bool, error) {
		if _, ok := state.FindOrgan(m.OrganID); !ok {
			return false, fmt.Errorf("%w: %w", organdomain.ErrInvalidMaintenance, organdomain.ErrOrganNotFound)
		}
		return domainsvcs.AddMaintenance(state, m.Clone()), nil
	})
	if err != nil {
		return nil, s.fail(ctx, domainevents.OpAddMaintenance, err)
	}

	s.committed(ctx, domainevents.OpAddMaintenance, m.ID)
	return m, nil
}

// UpdateMaintenance replaces the editable fields of a maintenance event.
// Returns ErrMaintenanceNotFound when no maintenance has id.
func (s *MutationService) UpdateMaintenance(ctx context.Context, id string, in MaintenanceInput) (*models.Maintenance, error) {
	var updated *models.Maintenance
	applied, err := s.store.Update(ctx, func(state *models.AppState) (bool, error) {
		current, ok := state.FindMaintenance(id)
		if !ok {
			return false, nil
		}
		organID := in.OrganID
		if organID == "" {
			organID = current.OrganID
		}
		updated = models.NewMaintenance(organID, in.Date, in.Technicians, in.Occurrence, in.HasPartExchange, in.PartExchangeDetails, in.Photos)
		updated.ID = current.ID
		if err := domainsvcs.ValidateMaintenance(updated); err != nil {
			return false, fmt.Errorf("%w: %w", organdomain.ErrInvalidMaintenance, err)
		}
		if _, ok := state.FindOrgan(updated.OrganID); !ok {
			return false, fmt.Errorf("%w: %w", organdomain.ErrInvalidMaintenance, organdomain.ErrOrganNotFound)
		}
		return domainsvcs.UpdateMaintenance(state, updated.Clone()), nil
	})
	if err != nil {
		return nil, s.fail(ctx, domainevents.OpUpdateMaintenance, err)
	}
	if !applied {
		return nil, s.fail(ctx, domainevents.OpUpdateMaintenance, fmt.Errorf("update maintenance %s: %w", id, organdomain.ErrMaintenanceNotFound))
	}

	s.committed(ctx, domainevents.OpUpdateMaintenance, id)
	return updated, nil
}

// DeleteMaintenance removes one maintenance event and records a tombstone.
func (s *MutationService) DeleteMaintenance(ctx context.Context, id, reason string) (models.DeletedItem, error) {
	return s.delete(ctx, domainevents.OpDeleteMaintenance, id, reason, organdomain.ErrMaintenanceNotFound, domainsvcs.DeleteMaintenance)
}

// Delete dispatches to DeleteOrgan or DeleteMaintenance by record type.
func (s *MutationService) Delete(ctx context.Context, typ models.RecordType, id, reason string) (models.DeletedItem, error) {
	switch typ {
	case models.RecordOrgan:
		return s.DeleteOrgan(ctx, id, reason)
	case models.RecordMaintenance:
		return s.DeleteMaintenance(ctx, id, reason)
	default:
		return models.DeletedItem{}, fmt.Errorf("delete: unknown record type %q", typ)
	}
}

type deleteFunc func(state *models.AppState, id, reason string, now time.Time, tombstoneID string) (models.DeletedItem, bool, error)

func (s *MutationService) delete(ctx context.Context, op domainevents.Operation, id, reason string, notFound error, del deleteFunc) (models.DeletedItem, error) {
	if strings.TrimSpace(reason) == "" {
		return models.DeletedItem{}, s.fail(ctx, op, organdomain.ErrReasonRequired)
	}

	var tomb models.DeletedItem
	applied, err := s.store.Update(ctx, func(state *models.AppState) (bool, error) {
		t, ok, err := del(state, id, reason, s.now(), s.newID())
		tomb = t
		return ok, err
	})
	if err != nil {
		return models.DeletedItem{}, s.fail(ctx, op, err)
	}
	if !applied {
		return models.DeletedItem{}, s.fail(ctx, op, fmt.Errorf("%s %s: %w", op, id, notFound))
	}

	s.committed(ctx, op, id)
	s.publish(ctx, domainevents.TopicRecordDeleted, domainevents.NewRecordDeleted(tomb, id))
	return tomb, nil
}

func (s *MutationService) committed(ctx context.Context, op domainevents.Operation, recordID string) {
	s.count(ctx, op, "committed")
	s.log.InfoContext(ctx, "mutation committed", "operation", op, "record_id", recordID)
	s.publish(ctx, domainevents.TopicStateChanged, domainevents.NewStateChanged(op, recordID, s.now()))
}

func (s *MutationService) fail(ctx context.Context, op domainevents.Operation, err error) error {
	s.count(ctx, op, "rejected")
	if errors.Is(err, organdomain.ErrPersistState) {
		s.log.ErrorContext(ctx, "mutation not persisted", "operation", op, "error", err)
		telemetry.CaptureError(err, map[string]string{"operation": string(op)})
		return err
	}
	s.log.WarnContext(ctx, "mutation rejected", "operation", op, "error", err)
	return err
}

func (s *MutationService) count(ctx context.Context, op domainevents.Operation, outcome string) {
	if s.mutations == nil {
		return
	}
	s.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", string(op)),
		attribute.String("outcome", outcome),
	))
}

func (s *MutationService) publish(ctx context.Context, topic string, event any) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal event", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")
	if err := s.publisher.Publish(ctx, topic, msg); err != nil {
		s.log.ErrorContext(ctx, "publish event", "topic", topic, "error", err)
	}
}
