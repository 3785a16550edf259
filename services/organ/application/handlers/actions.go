package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/organcare/pkg/auth"
	"github.com/ghuser/organcare/pkg/errhttp"
	"github.com/ghuser/organcare/pkg/httpx"
	"github.com/ghuser/organcare/pkg/logger"
	pkgvalidator "github.com/ghuser/organcare/pkg/validator"
	appsvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

// ActionRequest is the request body for POST /actions.
type ActionRequest struct {
	Type string `json:"type" validate:"required,oneof=organ maintenance" example:"organ"`
	ID   string `json:"id"   validate:"required,notblank"                example:"3f1c2a9e-8d4b-4a57-9e0f-0c1d2e3f4a5b"`
	Mode string `json:"mode" validate:"required,oneof=edit delete"       example:"delete"`
} // @name ActionRequest

// SubmitRequest is the request body for POST /actions/submit. Reason is
// required for deletions only.
type SubmitRequest struct {
	Secret string `json:"secret" validate:"required" example:"1234"`
	Reason string `json:"reason" validate:"max=1000" example:"Instrumento vendido"`
} // @name SubmitRequest

// SubmitResponse describes an accepted submission.
type SubmitResponse struct {
	Action         appsvcs.PendingAction `json:"action"`
	EditAuthorized bool                  `json:"edit_authorized"`
	Tombstone      *models.DeletedItem   `json:"tombstone,omitempty"`
} // @name SubmitResponse

// GetActionHandler handles GET /actions requests.
type GetActionHandler struct {
	svc *appsvcs.Services
}

// NewGetActionHandler returns a GetActionHandler.
func NewGetActionHandler(svc *appsvcs.Services) *GetActionHandler {
	return &GetActionHandler{svc: svc}
}

// Execute reports the state of the protected-action gate.
//
//	@Summary	Gate status
//	@Tags		actions
//	@Produce	json
//	@Success	200	{object}	services.GateStatus
//	@Router		/actions [get]
func (h *GetActionHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Gate.Status())
}

// PostActionHandler handles POST /actions requests.
type PostActionHandler struct {
	svc *appsvcs.Services
}

// NewPostActionHandler returns a PostActionHandler.
func NewPostActionHandler(svc *appsvcs.Services) *PostActionHandler {
	return &PostActionHandler{svc: svc}
}

// Execute makes an edit or delete the pending action, replacing any earlier one.
//
//	@Summary	Request protected action
//	@Tags		actions
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ActionRequest	true	"Action"
//	@Success	202		{object}	services.GateStatus
//	@Failure	422		{object}	ErrorResponse
//	@Router		/actions [post]
func (h *PostActionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ActionRequest](w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Gate.RequestAction(r.Context(), models.RecordType(req.Type), req.ID, appsvcs.ActionMode(req.Mode)); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, h.svc.Gate.Status())
}

// DeleteActionHandler handles DELETE /actions requests.
type DeleteActionHandler struct {
	svc *appsvcs.Services
}

// NewDeleteActionHandler returns a DeleteActionHandler.
func NewDeleteActionHandler(svc *appsvcs.Services) *DeleteActionHandler {
	return &DeleteActionHandler{svc: svc}
}

// Execute cancels the pending action.
//
//	@Summary	Cancel protected action
//	@Tags		actions
//	@Success	204
//	@Router		/actions [delete]
func (h *DeleteActionHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	h.svc.Gate.Cancel()
	httpx.NoContent(w)
}

// PostActionSubmitHandler handles POST /actions/submit requests.
type PostActionSubmitHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
	log      logger.Logger
}

// NewPostActionSubmitHandler returns a PostActionSubmitHandler. Accepted edits
// are recorded as an edit grant in store.
func NewPostActionSubmitHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PostActionSubmitHandler {
	return &PostActionSubmitHandler{svc: svc, sessions: store, log: log}
}

// Execute resolves the pending action with the shared secret.
//
//	@Summary		Submit secret
//	@Description	An accepted edit grants one PUT on the record; an accepted delete runs the cascade and returns the tombstone
//	@Tags			actions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SubmitRequest	true	"Credentials"
//	@Success		200		{object}	SubmitResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/actions/submit [post]
func (h *PostActionSubmitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SubmitRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Gate.Submit(r.Context(), req.Secret, req.Reason)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := SubmitResponse{Action: res.Action, Tombstone: res.Tombstone}
	if res.Action.Mode == appsvcs.ModeEdit {
		grant := auth.EditGrant{RecordType: string(res.Action.Type), RecordID: res.Action.ID}
		if err := auth.IssueEditGrant(h.sessions, w, r, grant); err != nil {
			h.log.ErrorContext(r.Context(), "issue edit grant", "type", grant.RecordType, "id", grant.RecordID, "error", err)
			h.svc.Gate.Restore(res.Action)
			httpx.JSONError(w, http.StatusInternalServerError, "could not record edit authorization")
			return
		}
		resp.EditAuthorized = true
	}
	httpx.JSON(w, http.StatusOK, resp)
}
