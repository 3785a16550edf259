package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/organcare/pkg/auth"
	"github.com/ghuser/organcare/pkg/errhttp"
	"github.com/ghuser/organcare/pkg/httpx"
	"github.com/ghuser/organcare/pkg/logger"
	pkgvalidator "github.com/ghuser/organcare/pkg/validator"
	appsvcs "github.com/ghuser/organcare/services/organ/application/services"
	organdomain "github.com/ghuser/organcare/services/organ/domain"
)

// PostMaintenanceHandler handles POST /maintenances requests.
type PostMaintenanceHandler struct {
	svc *appsvcs.Services
}

// NewPostMaintenanceHandler returns a PostMaintenanceHandler backed by the given services.
func NewPostMaintenanceHandler(svc *appsvcs.Services) *PostMaintenanceHandler {
	return &PostMaintenanceHandler{svc: svc}
}

// Execute records a maintenance event.
//
//	@Summary		Create maintenance
//	@Description	Records a maintenance event for an existing organ
//	@Tags			maintenances
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMaintenanceRequest	true	"Maintenance"
//	@Success		201		{object}	models.Maintenance
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/maintenances [post]
func (h *PostMaintenanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateMaintenanceRequest](w, r)
	if !ok {
		return
	}
	in, err := req.input(req.OrganID)
	if err != nil {
		writeFieldError(w, "date", err)
		return
	}

	m, err := h.svc.Mutations.CreateMaintenance(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, m)
}

// GetMaintenanceHandler handles GET /maintenances/{id} requests.
type GetMaintenanceHandler struct {
	svc *appsvcs.Services
}

// NewGetMaintenanceHandler returns a GetMaintenanceHandler backed by the given services.
func NewGetMaintenanceHandler(svc *appsvcs.Services) *GetMaintenanceHandler {
	return &GetMaintenanceHandler{svc: svc}
}

// Execute returns one maintenance event.
//
//	@Summary	Get maintenance
//	@Tags		maintenances
//	@Produce	json
//	@Param		id	path		string	true	"Maintenance ID"
//	@Success	200	{object}	models.Maintenance
//	@Failure	404	{object}	ErrorResponse
//	@Router		/maintenances/{id} [get]
func (h *GetMaintenanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Status.Maintenance(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

// PutMaintenanceHandler handles PUT /maintenances/{id} requests. Same grant
// rules as PutOrganHandler.
type PutMaintenanceHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
	log      logger.Logger
}

// NewPutMaintenanceHandler returns a PutMaintenanceHandler.
func NewPutMaintenanceHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PutMaintenanceHandler {
	return &PutMaintenanceHandler{svc: svc, sessions: store, log: log}
}

// Execute replaces the editable fields of a maintenance event.
//
//	@Summary		Update maintenance
//	@Description	Requires an edit grant issued by POST /actions/submit
//	@Tags			maintenances
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Maintenance ID"
//	@Param			request	body		UpdateMaintenanceRequest	true	"Maintenance"
//	@Success		200		{object}	models.Maintenance
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/maintenances/{id} [put]
func (h *PutMaintenanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.EditGrantFromCtx(r.Context()); err != nil {
		errhttp.WriteError(w, organdomain.ErrEditNotAuthorized)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateMaintenanceRequest](w, r)
	if !ok {
		return
	}
	in, err := req.input(req.OrganID)
	if err != nil {
		writeFieldError(w, "date", err)
		return
	}

	m, err := h.svc.Mutations.UpdateMaintenance(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.RevokeEditGrant(h.sessions, w, r); err != nil {
		h.log.WarnContext(r.Context(), "revoke edit grant", "maintenance_id", m.ID, "error", err)
	}
	httpx.JSON(w, http.StatusOK, m)
}
