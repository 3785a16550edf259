package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/telemetry"
	organdomain "github.com/ghuser/organcare/services/organ/domain"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

// DefaultGateErrorDuration is how long a rejected secret stays visible.
const DefaultGateErrorDuration = 2 * time.Second

// ActionMode is what a protected action does once the secret is accepted.
type ActionMode string

const (
	ModeEdit   ActionMode = "edit"
	ModeDelete ActionMode = "delete"
)

// Valid reports whether m is edit or delete.
func (m ActionMode) Valid() bool {
	return m == ModeEdit || m == ModeDelete
}

// GateState is the state of the protected-action gate.
type GateState string

const (
	GateIdle                GateState = "idle"
	GateAwaitingCredentials GateState = "awaiting_credentials"
)

// PendingAction is the single action waiting for credentials.
type PendingAction struct {
	Type        models.RecordType `json:"type"`
	ID          string            `json:"id"`
	Mode        ActionMode        `json:"mode"`
	RequestedAt time.Time         `json:"requested_at"`
}

// GateStatus is a point-in-time view of the gate.
type GateStatus struct {
	State        GateState      `json:"state"`
	Pending      *PendingAction `json:"pending,omitempty"`
	ErrorVisible bool           `json:"error_visible"`
}

// SubmitResult describes an accepted submission. Tombstone is set for
// deletions; an edit carries no side effect beyond the authorization itself.
type SubmitResult struct {
	Action    PendingAction
	Tombstone *models.DeletedItem
}

// SecretChecker verifies the shared secret of the gate.
type SecretChecker interface {
	Check(secret string) bool
}

// StaticSecret is a SecretChecker against one fixed value.
type StaticSecret string

// Check compares in constant time.
func (s StaticSecret) Check(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(s), []byte(secret)) == 1
}

// Deleter runs the delete half of the mutation pipeline.
type Deleter interface {
	Delete(ctx context.Context, typ models.RecordType, id, reason string) (models.DeletedItem, error)
}

// GateService guards edits and deletions behind the shared secret. It holds at
// most one pending action; a new request replaces the previous one.
//
// The rejected-secret flag is derived from the clock: it reads as set until
// errorFor has elapsed since the last rejection.
type GateService struct {
	mu         sync.Mutex
	pending    *PendingAction
	errorUntil time.Time

	secret      SecretChecker
	deleter     Deleter
	log         logger.Logger
	submissions metric.Int64Counter

	now      func() time.Time
	errorFor time.Duration
}

// NewGateService returns an idle GateService.
func NewGateService(secret SecretChecker, deleter Deleter, errorFor time.Duration, log logger.Logger) *GateService {
	if errorFor <= 0 {
		errorFor = DefaultGateErrorDuration
	}
	counter, err := telemetry.NewCounter(telemetry.MetricGateSubmissions, "Protected-action submissions by outcome")
	if err != nil {
		log.Error("gate service: create counter", "error", err)
	}
	return &GateService{
		secret:      secret,
		deleter:     deleter,
		log:         log,
		submissions: counter,
		now:         time.Now,
		errorFor:    errorFor,
	}
}

// RequestAction makes (typ, id, mode) the pending action and moves the gate
// to awaiting credentials.
func (g *GateService) RequestAction(ctx context.Context, typ models.RecordType, id string, mode ActionMode) (PendingAction, error) {
	if !typ.Valid() || !mode.Valid() || strings.TrimSpace(id) == "" {
		return PendingAction{}, fmt.Errorf("%w: type=%q mode=%q id=%q", organdomain.ErrInvalidAction, typ, mode, id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending != nil {
		g.log.InfoContext(ctx, "gate: pending action replaced",
			"previous_type", g.pending.Type, "previous_id", g.pending.ID, "previous_mode", g.pending.Mode)
	}
	action := PendingAction{Type: typ, ID: id, Mode: mode, RequestedAt: g.now().UTC()}
	g.pending = &action
	return action, nil
}

// Cancel discards the pending action.
func (g *GateService) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
}

// Restore makes action pending again when the gate is idle. Callers use it
// when an accepted edit could not be recorded. A newer request wins.
func (g *GateService) Restore(action PendingAction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		g.pending = &action
	}
}

// Status reports the current state of the gate.
func (g *GateService) Status() GateStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := GateStatus{
		State:        GateIdle,
		ErrorVisible: g.now().Before(g.errorUntil),
	}
	if g.pending != nil {
		p := *g.pending
		st.State = GateAwaitingCredentials
		st.Pending = &p
	}
	return st
}

// Submit resolves the pending action.
//
// A wrong secret returns ErrInvalidSecret, raises the error flag and keeps the
// action pending. A delete with a blank reason returns ErrReasonRequired and
// keeps the action pending. A delete that fails to persist keeps the action
// pending so it can be retried. A delete of a missing record returns the
// NotFound error and leaves the gate idle, since no retry can succeed.
// Accepted edits and deletions return the gate to idle.
func (g *GateService) Submit(ctx context.Context, secret, reason string) (SubmitResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		g.count(ctx, "", "no_pending")
		return SubmitResult{}, organdomain.ErrNoPendingAction
	}
	action := *g.pending

	if !g.secret.Check(secret) {
		g.errorUntil = g.now().Add(g.errorFor)
		g.count(ctx, action.Mode, "invalid_secret")
		g.log.WarnContext(ctx, "gate: secret rejected", "type", action.Type, "id", action.ID, "mode", action.Mode)
		return SubmitResult{}, organdomain.ErrInvalidSecret
	}

	switch action.Mode {
	case ModeEdit:
		g.pending = nil
		g.count(ctx, action.Mode, "accepted")
		return SubmitResult{Action: action}, nil

	case ModeDelete:
		if strings.TrimSpace(reason) == "" {
			g.count(ctx, action.Mode, "reason_required")
			return SubmitResult{}, organdomain.ErrReasonRequired
		}
		tomb, err := g.deleter.Delete(ctx, action.Type, action.ID, reason)
		if err != nil {
			outcome := "failed"
			if errors.Is(err, organdomain.ErrOrganNotFound) || errors.Is(err, organdomain.ErrMaintenanceNotFound) {
				g.pending = nil
				outcome = "not_found"
			}
			g.count(ctx, action.Mode, outcome)
			return SubmitResult{}, fmt.Errorf("gate delete %s %s: %w", action.Type, action.ID, err)
		}
		g.pending = nil
		g.count(ctx, action.Mode, "accepted")
		return SubmitResult{Action: action, Tombstone: &tomb}, nil
	}

	return SubmitResult{}, fmt.Errorf("%w: mode=%q", organdomain.ErrInvalidAction, action.Mode)
}

func (g *GateService) count(ctx context.Context, mode ActionMode, outcome string) {
	if g.submissions == nil {
		return
	}
	g.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("outcome", outcome),
	))
}
