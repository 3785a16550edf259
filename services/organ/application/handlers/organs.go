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

// PostOrganHandler handles POST /organs requests.
type PostOrganHandler struct {
	svc *appsvcs.Services
}

// NewPostOrganHandler returns a PostOrganHandler backed by the given services.
func NewPostOrganHandler(svc *appsvcs.Services) *PostOrganHandler {
	return &PostOrganHandler{svc: svc}
}

// Execute registers a new organ.
//
//	@Summary		Create organ
//	@Description	Registers an organ at an existing location
//	@Tags			organs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OrganRequest	true	"Organ"
//	@Success		201		{object}	models.Organ
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/organs [post]
func (h *PostOrganHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[OrganRequest](w, r)
	if !ok {
		return
	}

	organ, err := h.svc.Mutations.CreateOrgan(r.Context(), req.input())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, organ)
}

// GetOrganHandler handles GET /organs/{id} requests.
type GetOrganHandler struct {
	svc *appsvcs.Services
}

// NewGetOrganHandler returns a GetOrganHandler backed by the given services.
func NewGetOrganHandler(svc *appsvcs.Services) *GetOrganHandler {
	return &GetOrganHandler{svc: svc}
}

// Execute returns one organ with its status and maintenance history.
//
//	@Summary		Get organ
//	@Tags			organs
//	@Produce		json
//	@Param			id	path		string	true	"Organ ID"
//	@Success		200	{object}	services.OrganDetail
//	@Failure		404	{object}	ErrorResponse
//	@Router			/organs/{id} [get]
func (h *GetOrganHandler) Execute(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Status.Organ(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// PutOrganHandler handles PUT /organs/{id} requests. The route requires an
// edit grant for the organ; the grant is consumed once the edit is committed.
type PutOrganHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
	log      logger.Logger
}

// NewPutOrganHandler returns a PutOrganHandler.
func NewPutOrganHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PutOrganHandler {
	return &PutOrganHandler{svc: svc, sessions: store, log: log}
}

// Execute replaces the editable fields of an organ.
//
//	@Summary		Update organ
//	@Description	Requires an edit grant issued by POST /actions/submit
//	@Tags			organs
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Organ ID"
//	@Param			request	body		OrganRequest	true	"Organ"
//	@Success		200		{object}	models.Organ
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/organs/{id} [put]
func (h *PutOrganHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.EditGrantFromCtx(r.Context()); err != nil {
		errhttp.WriteError(w, organdomain.ErrEditNotAuthorized)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[OrganRequest](w, r)
	if !ok {
		return
	}

	organ, err := h.svc.Mutations.UpdateOrgan(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.RevokeEditGrant(h.sessions, w, r); err != nil {
		h.log.WarnContext(r.Context(), "revoke edit grant", "organ_id", organ.ID, "error", err)
	}
	httpx.JSON(w, http.StatusOK, organ)
}
