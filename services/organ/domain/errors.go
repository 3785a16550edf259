package domain

import "errors"

// Sentinel errors for the organ domain. Use errors.Is() to check these.
var (
	// ErrOrganNotFound indicates the requested organ does not exist.
	ErrOrganNotFound = errors.New("organ not found")

	// ErrMaintenanceNotFound indicates the requested maintenance does not exist.
	ErrMaintenanceNotFound = errors.New("maintenance not found")

	// ErrLocationNotFound indicates the referenced location is not in the seed data.
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidOrgan indicates the organ violates domain constraints.
	ErrInvalidOrgan = errors.New("invalid organ")

	// ErrInvalidMaintenance indicates the maintenance violates domain constraints.
	ErrInvalidMaintenance = errors.New("invalid maintenance")

	// ErrReasonRequired indicates a delete was submitted without a reason.
	ErrReasonRequired = errors.New("deletion reason required")

	// ErrInvalidSecret indicates the submitted secret did not match.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrInvalidAction indicates a protected action with an unknown record
	// type or mode, or without a record id.
	ErrInvalidAction = errors.New("invalid protected action")

	// ErrNoPendingAction indicates a submit arrived while the gate was idle.
	ErrNoPendingAction = errors.New("no pending action")

	// ErrEditNotAuthorized indicates an edit was attempted without a grant.
	ErrEditNotAuthorized = errors.New("edit not authorized")

	// ErrPersistState indicates the storage collaborator rejected a write.
	// The in-memory state keeps its pre-operation value.
	ErrPersistState = errors.New("persist state")
)
