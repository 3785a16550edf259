package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/auth"
	"github.com/ghuser/organcare/services/organ/application/handlers"
	appsvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

// OrganRoutes registers organ endpoints on the provided chi router. Edits go
// through the protected-action gate: PUT routes require the edit grant that
// POST /actions/submit stores in the session.
func OrganRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	idParam := func(r *http.Request) string { return chi.URLParam(r, "id") }
	requireGrant := func(typ models.RecordType) func(http.Handler) http.Handler {
		return auth.RequireEditGrant(a.SessionStore, a.Logger, string(typ), idParam)
	}

	r.Group(func(r chi.Router) {
		r.Get("/dashboard", handlers.NewGetDashboardHandler(svcs).Execute)
		r.Get("/administrations", handlers.NewGetAdministrationsHandler(svcs).Execute)
		r.Get("/pending", handlers.NewGetPendingHandler(svcs).Execute)
		r.Get("/deleted-items", handlers.NewGetDeletedItemsHandler(svcs).Execute)

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", handlers.NewGetLocationsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetLocationHandler(svcs).Execute)
		})

		r.Route("/organs", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrganHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetOrganHandler(svcs).Execute)
			r.Get("/{id}/summary", handlers.NewGetOrganSummaryHandler(svcs).Execute)
			r.With(requireGrant(models.RecordOrgan)).
				Put("/{id}", handlers.NewPutOrganHandler(svcs, a.SessionStore, a.Logger).Execute)
		})

		r.Route("/maintenances", func(r chi.Router) {
			r.Post("/", handlers.NewPostMaintenanceHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetMaintenanceHandler(svcs).Execute)
			r.With(requireGrant(models.RecordMaintenance)).
				Put("/{id}", handlers.NewPutMaintenanceHandler(svcs, a.SessionStore, a.Logger).Execute)
		})

		r.Route("/actions", func(r chi.Router) {
			r.Get("/", handlers.NewGetActionHandler(svcs).Execute)
			r.Post("/", handlers.NewPostActionHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteActionHandler(svcs).Execute)
			r.Post("/submit", handlers.NewPostActionSubmitHandler(svcs, a.SessionStore, a.Logger).Execute)
		})
	})
}
