package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/organcare/pkg/errhttp"
	"github.com/ghuser/organcare/pkg/httpx"
	appsvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

// GetDashboardHandler handles GET /dashboard requests.
type GetDashboardHandler struct {
	svc *appsvcs.Services
}

// NewGetDashboardHandler returns a GetDashboardHandler backed by the given services.
func NewGetDashboardHandler(svc *appsvcs.Services) *GetDashboardHandler {
	return &GetDashboardHandler{svc: svc}
}

// Execute returns status counts, administration flags and every organ.
//
//	@Summary	Dashboard
//	@Tags		status
//	@Produce	json
//	@Success	200	{object}	services.Dashboard
//	@Router		/dashboard [get]
func (h *GetDashboardHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Status.Dashboard())
}

// GetAdministrationsHandler handles GET /administrations requests.
type GetAdministrationsHandler struct {
	svc *appsvcs.Services
}

// NewGetAdministrationsHandler returns a GetAdministrationsHandler.
func NewGetAdministrationsHandler(svc *appsvcs.Services) *GetAdministrationsHandler {
	return &GetAdministrationsHandler{svc: svc}
}

// Execute returns the pending flag of every administration.
//
//	@Summary	List administrations
//	@Tags		status
//	@Produce	json
//	@Success	200	{array}	services.AdmStatus
//	@Router		/administrations [get]
func (h *GetAdministrationsHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Status.Administrations())
}

// GetLocationsHandler handles GET /locations requests.
type GetLocationsHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationsHandler returns a GetLocationsHandler.
func NewGetLocationsHandler(svc *appsvcs.Services) *GetLocationsHandler {
	return &GetLocationsHandler{svc: svc}
}

// Execute returns the locations of one administration, filtered by name.
//
//	@Summary	Search locations
//	@Tags		status
//	@Produce	json
//	@Param		adm	query		string	true	"Administration"	Enums(Imbituba, Laguna, Tubarão, Criciúma)
//	@Param		q	query		string	false	"Case-insensitive name filter"
//	@Success	200	{array}		services.LocationStatus
//	@Failure	422	{object}	ErrorResponse
//	@Router		/locations [get]
func (h *GetLocationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	adm, err := models.ParseAdministration(r.URL.Query().Get("adm"))
	if err != nil {
		writeFieldError(w, "adm", err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.svc.Status.Locations(adm, r.URL.Query().Get("q")))
}

// GetLocationHandler handles GET /locations/{id} requests.
type GetLocationHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationHandler returns a GetLocationHandler.
func NewGetLocationHandler(svc *appsvcs.Services) *GetLocationHandler {
	return &GetLocationHandler{svc: svc}
}

// Execute returns one location with its organs.
//
//	@Summary	Get location
//	@Tags		status
//	@Produce	json
//	@Param		id	path		string	true	"Location ID"
//	@Success	200	{object}	services.LocationDetail
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/{id} [get]
func (h *GetLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Status.Location(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// GetPendingHandler handles GET /pending requests.
type GetPendingHandler struct {
	svc *appsvcs.Services
}

// NewGetPendingHandler returns a GetPendingHandler.
func NewGetPendingHandler(svc *appsvcs.Services) *GetPendingHandler {
	return &GetPendingHandler{svc: svc}
}

// Execute returns every overdue organ.
//
//	@Summary	List pending organs
//	@Tags		status
//	@Produce	json
//	@Success	200	{array}	services.OrganStatus
//	@Router		/pending [get]
func (h *GetPendingHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Status.Pending())
}

// GetDeletedItemsHandler handles GET /deleted-items requests.
type GetDeletedItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetDeletedItemsHandler returns a GetDeletedItemsHandler.
func NewGetDeletedItemsHandler(svc *appsvcs.Services) *GetDeletedItemsHandler {
	return &GetDeletedItemsHandler{svc: svc}
}

// Execute returns the deletion log, newest first.
//
//	@Summary	Deletion log
//	@Tags		deleted-items
//	@Produce	json
//	@Param		type	query		string	false	"Record type"	Enums(organ, maintenance)
//	@Success	200		{array}		models.DeletedItem
//	@Failure	422		{object}	ErrorResponse
//	@Router		/deleted-items [get]
func (h *GetDeletedItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	typ := models.RecordType(r.URL.Query().Get("type"))
	if typ != "" && !typ.Valid() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "type must be organ or maintenance")
		return
	}
	httpx.JSON(w, http.StatusOK, h.svc.Status.DeletedItems(typ))
}

// SummaryResponse carries the generated maintenance report.
type SummaryResponse struct {
	OrganID string `json:"organ_id" example:"3f1c2a9e-8d4b-4a57-9e0f-0c1d2e3f4a5b"`
	Summary string `json:"summary"  example:"Instrumento em bom estado."`
} // @name SummaryResponse

// GetOrganSummaryHandler handles GET /organs/{id}/summary requests.
type GetOrganSummaryHandler struct {
	svc *appsvcs.Services
}

// NewGetOrganSummaryHandler returns a GetOrganSummaryHandler.
func NewGetOrganSummaryHandler(svc *appsvcs.Services) *GetOrganSummaryHandler {
	return &GetOrganSummaryHandler{svc: svc}
}

// Execute asks the summarizer for a report on the organ's history. The
// summarizer never fails; an unavailable model yields a fixed text.
//
//	@Summary	Organ maintenance summary
//	@Tags		organs
//	@Produce	json
//	@Param		id	path		string	true	"Organ ID"
//	@Success	200	{object}	SummaryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/organs/{id}/summary [get]
func (h *GetOrganSummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.svc.Summary.Summarize(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, SummaryResponse{OrganID: id, Summary: text})
}
