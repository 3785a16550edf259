package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/auth"
	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/services/organ/application/api"
	"github.com/ghuser/organcare/services/organ/application/handlers"
	appsvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

const testSecret = "4321"

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T) *client {
	t.Helper()
	return newTestServerWithStore(t, auth.NewCookieStore(auth.SessionOptions{
		AuthKey:       []byte("test-auth-key-must-be-32-bytes!!"),
		EncryptionKey: []byte("test-enc-key-must-be-32-bytes!!!"),
	}))
}

func newTestServerWithStore(t *testing.T, store sessions.Store) *client {
	t.Helper()
	a := &app.Application{
		Config: &config.Config{
			StorageDriver: config.StorageMemory,
			ActionSecret:  testSecret,
		},
		Logger:       logger.Discard(),
		SessionStore: store,
	}
	svcs, err := appsvcs.New(context.Background(), a)
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	t.Cleanup(svcs.Close)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.OrganRoutes(r, a, svcs)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &client{t: t, base: srv.URL + "/api", http: &http.Client{Jar: jar}}
}

// do sends body as JSON and decodes the response into out when out is non-nil.
func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (c *client) expect(want int, method, path string, body any, out any) {
	c.t.Helper()
	if got := c.do(method, path, body, out); got != want {
		c.t.Fatalf("%s %s: expected status %d, got %d", method, path, want, got)
	}
}

func (c *client) createOrgan(locationID string) models.Organ {
	c.t.Helper()
	var o models.Organ
	c.expect(http.StatusCreated, http.MethodPost, "/organs", handlers.OrganRequest{
		LocationID:      locationID,
		ChurchLocation:  "church_hall",
		Model:           "Yamaha PSR",
		SerialNumber:    "SN-1",
		PatrimonyNumber: "P-1",
	}, &o)
	return o
}

func (c *client) createMaintenance(organID, date string) models.Maintenance {
	c.t.Helper()
	var m models.Maintenance
	c.expect(http.StatusCreated, http.MethodPost, "/maintenances", handlers.CreateMaintenanceRequest{
		OrganID: organID,
		MaintenanceFields: handlers.MaintenanceFields{
			Date:        date,
			Technicians: []string{"Ana"},
			Occurrence:  "afinação",
		},
	}, &m)
	return m
}

func TestOrganRoutes_CreateAndRead(t *testing.T) {
	c := newTestServer(t)
	o := c.createOrgan("lag-centro")
	if o.ID == "" || o.LocationID != "lag-centro" {
		t.Fatalf("unexpected organ %+v", o)
	}

	var pending []appsvcs.OrganStatus
	c.expect(http.StatusOK, http.MethodGet, "/pending", nil, &pending)
	if len(pending) != 1 {
		t.Fatalf("expected never-maintained organ to be pending, got %d", len(pending))
	}

	m := c.createMaintenance(o.ID, "2099-01-01")

	var detail appsvcs.OrganDetail
	c.expect(http.StatusOK, http.MethodGet, "/organs/"+o.ID, nil, &detail)
	if len(detail.Maintenances) != 1 || detail.Maintenances[0].ID != m.ID {
		t.Fatalf("expected maintenance in history, got %+v", detail.Maintenances)
	}
	if detail.Pending {
		t.Fatal("expected organ up to date after maintenance")
	}

	var loc appsvcs.LocationDetail
	c.expect(http.StatusOK, http.MethodGet, "/locations/lag-centro", nil, &loc)
	if len(loc.Organs) != 1 {
		t.Fatalf("expected 1 organ at location, got %d", len(loc.Organs))
	}

	var dash appsvcs.Dashboard
	c.expect(http.StatusOK, http.MethodGet, "/dashboard", nil, &dash)
	if dash.Counts.Total != 1 || dash.Counts.UpToDate != 1 {
		t.Fatalf("unexpected counts %+v", dash.Counts)
	}

	var summary handlers.SummaryResponse
	c.expect(http.StatusOK, http.MethodGet, "/organs/"+o.ID+"/summary", nil, &summary)
	if summary.Summary == "" {
		t.Fatal("expected summary text")
	}
}

func TestOrganRoutes_Validation(t *testing.T) {
	c := newTestServer(t)
	o := c.createOrgan("lag-centro")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown location", http.MethodPost, "/organs", handlers.OrganRequest{LocationID: "nowhere", ChurchLocation: "other", Model: "X"}, http.StatusUnprocessableEntity},
		{"bad church location", http.MethodPost, "/organs", handlers.OrganRequest{LocationID: "lag-centro", ChurchLocation: "roof", Model: "X"}, http.StatusUnprocessableEntity},
		{"blank model", http.MethodPost, "/organs", handlers.OrganRequest{LocationID: "lag-centro", ChurchLocation: "other", Model: "  "}, http.StatusUnprocessableEntity},
		{"maintenance for unknown organ", http.MethodPost, "/maintenances", handlers.CreateMaintenanceRequest{OrganID: "missing", MaintenanceFields: handlers.MaintenanceFields{Date: "2025-01-01"}}, http.StatusUnprocessableEntity},
		{"bad date", http.MethodPost, "/maintenances", handlers.CreateMaintenanceRequest{OrganID: o.ID, MaintenanceFields: handlers.MaintenanceFields{Date: "yesterday"}}, http.StatusUnprocessableEntity},
		{"three technicians", http.MethodPost, "/maintenances", handlers.CreateMaintenanceRequest{OrganID: o.ID, MaintenanceFields: handlers.MaintenanceFields{Date: "2025-01-01", Technicians: []string{"a", "b", "c"}}}, http.StatusUnprocessableEntity},
		{"unknown organ", http.MethodGet, "/organs/missing", nil, http.StatusNotFound},
		{"unknown maintenance", http.MethodGet, "/maintenances/missing", nil, http.StatusNotFound},
		{"unknown location detail", http.MethodGet, "/locations/missing", nil, http.StatusNotFound},
		{"unknown administration", http.MethodGet, "/locations?adm=Nowhere", nil, http.StatusUnprocessableEntity},
		{"bad tombstone type", http.MethodGet, "/deleted-items?type=location", nil, http.StatusUnprocessableEntity},
		{"bad action mode", http.MethodPost, "/actions", handlers.ActionRequest{Type: "organ", ID: o.ID, Mode: "archive"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.do(tt.method, tt.path, tt.body, nil); got != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestOrganRoutes_Locations(t *testing.T) {
	c := newTestServer(t)

	var locs []map[string]any
	c.expect(http.StatusOK, http.MethodGet, "/locations?adm=Laguna&q=CENTRO", nil, &locs)
	if len(locs) != 1 || locs[0]["id"] != "lag-centro" {
		t.Fatalf("expected lag-centro, got %v", locs)
	}

	var adms []map[string]any
	c.expect(http.StatusOK, http.MethodGet, "/administrations", nil, &adms)
	if len(adms) != len(models.Administrations) {
		t.Fatalf("expected %d administrations, got %d", len(models.Administrations), len(adms))
	}
}

func TestOrganRoutes_EditRequiresGrant(t *testing.T) {
	c := newTestServer(t)
	o := c.createOrgan("lag-centro")
	edit := handlers.OrganRequest{LocationID: "lag-magalhaes", ChurchLocation: "music_room", Model: "Roland"}

	c.expect(http.StatusForbidden, http.MethodPut, "/organs/"+o.ID, edit, nil)

	c.expect(http.StatusAccepted, http.MethodPost, "/actions", handlers.ActionRequest{Type: "organ", ID: o.ID, Mode: "edit"}, nil)

	var status appsvcs.GateStatus
	c.expect(http.StatusUnauthorized, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: "0000"}, nil)
	c.expect(http.StatusOK, http.MethodGet, "/actions", nil, &status)
	if !status.ErrorVisible || status.State != appsvcs.GateAwaitingCredentials {
		t.Fatalf("expected visible error while awaiting credentials, got %+v", status)
	}
	c.expect(http.StatusForbidden, http.MethodPut, "/organs/"+o.ID, edit, nil)

	var submit handlers.SubmitResponse
	c.expect(http.StatusOK, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret}, &submit)
	if !submit.EditAuthorized || submit.Tombstone != nil {
		t.Fatalf("expected edit authorization only, got %+v", submit)
	}

	var updated models.Organ
	c.expect(http.StatusOK, http.MethodPut, "/organs/"+o.ID, edit, &updated)
	if updated.ID != o.ID || updated.Model != "Roland" || !updated.CreatedAt.Equal(o.CreatedAt) {
		t.Fatalf("unexpected update %+v", updated)
	}

	// The grant is single-use.
	c.expect(http.StatusForbidden, http.MethodPut, "/organs/"+o.ID, edit, nil)
}

func TestOrganRoutes_EditGrantIsPerRecord(t *testing.T) {
	c := newTestServer(t)
	o := c.createOrgan("lag-centro")
	m := c.createMaintenance(o.ID, "2025-03-01")

	c.expect(http.StatusAccepted, http.MethodPost, "/actions", handlers.ActionRequest{Type: "maintenance", ID: m.ID, Mode: "edit"}, nil)
	c.expect(http.StatusOK, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret}, nil)

	c.expect(http.StatusForbidden, http.MethodPut, "/organs/"+o.ID,
		handlers.OrganRequest{LocationID: "lag-centro", ChurchLocation: "other", Model: "X"}, nil)

	var updated models.Maintenance
	c.expect(http.StatusOK, http.MethodPut, "/maintenances/"+m.ID, handlers.UpdateMaintenanceRequest{
		MaintenanceFields: handlers.MaintenanceFields{Date: "2025-04-01", Occurrence: "revisão"},
	}, &updated)
	if updated.OrganID != o.ID || updated.Occurrence != "revisão" {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestOrganRoutes_DeleteThroughGate(t *testing.T) {
	c := newTestServer(t)
	o := c.createOrgan("lag-centro")
	m := c.createMaintenance(o.ID, "2025-03-01")

	c.expect(http.StatusConflict, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret, Reason: "x"}, nil)

	c.expect(http.StatusAccepted, http.MethodPost, "/actions", handlers.ActionRequest{Type: "organ", ID: o.ID, Mode: "delete"}, nil)
	c.expect(http.StatusUnprocessableEntity, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret, Reason: "   "}, nil)
	c.expect(http.StatusOK, http.MethodGet, "/organs/"+o.ID, nil, nil)

	var submit handlers.SubmitResponse
	c.expect(http.StatusOK, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret, Reason: "vendido"}, &submit)
	if submit.Tombstone == nil || submit.Tombstone.Type != models.RecordOrgan || submit.Tombstone.Reason != "vendido" {
		t.Fatalf("expected organ tombstone, got %+v", submit.Tombstone)
	}
	if submit.Tombstone.Metadata.Adm != models.AdmLaguna {
		t.Errorf("Adm: got %q, want %q", submit.Tombstone.Metadata.Adm, models.AdmLaguna)
	}

	c.expect(http.StatusNotFound, http.MethodGet, "/organs/"+o.ID, nil, nil)
	c.expect(http.StatusNotFound, http.MethodGet, "/maintenances/"+m.ID, nil, nil)

	var log []models.DeletedItem
	c.expect(http.StatusOK, http.MethodGet, "/deleted-items", nil, &log)
	if len(log) != 1 {
		t.Fatalf("expected exactly one tombstone, got %d", len(log))
	}
	c.expect(http.StatusOK, http.MethodGet, "/deleted-items?type=maintenance", nil, &log)
	if len(log) != 0 {
		t.Fatalf("expected no maintenance tombstone, got %d", len(log))
	}

	var status appsvcs.GateStatus
	c.expect(http.StatusOK, http.MethodGet, "/actions", nil, &status)
	if status.State != appsvcs.GateIdle {
		t.Fatalf("expected idle gate, got %+v", status)
	}
}

func TestOrganRoutes_CancelAction(t *testing.T) {
	c := newTestServer(t)
	o := c.createOrgan("lag-centro")

	c.expect(http.StatusAccepted, http.MethodPost, "/actions", handlers.ActionRequest{Type: "organ", ID: o.ID, Mode: "delete"}, nil)
	c.expect(http.StatusNoContent, http.MethodDelete, "/actions", nil, nil)
	c.expect(http.StatusConflict, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret, Reason: "x"}, nil)
	c.expect(http.StatusOK, http.MethodGet, "/organs/"+o.ID, nil, nil)
}

// brokenStore loads sessions but never saves them.
type brokenStore struct{ sessions.Store }

func (brokenStore) Save(*http.Request, http.ResponseWriter, *sessions.Session) error {
	return errors.New("session backend down")
}

func TestOrganRoutes_EditStaysPendingWhenGrantFails(t *testing.T) {
	c := newTestServerWithStore(t, brokenStore{auth.NewCookieStore(auth.SessionOptions{
		AuthKey:       []byte("test-auth-key-must-be-32-bytes!!"),
		EncryptionKey: []byte("test-enc-key-must-be-32-bytes!!!"),
	})})
	o := c.createOrgan("lag-centro")

	c.expect(http.StatusAccepted, http.MethodPost, "/actions", handlers.ActionRequest{Type: "organ", ID: o.ID, Mode: "edit"}, nil)
	c.expect(http.StatusInternalServerError, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret}, nil)

	var status appsvcs.GateStatus
	c.expect(http.StatusOK, http.MethodGet, "/actions", nil, &status)
	if status.State != appsvcs.GateAwaitingCredentials || status.Pending == nil || status.Pending.ID != o.ID {
		t.Fatalf("expected the edit to stay pending, got %+v", status)
	}
}

func TestOrganRoutes_DeleteMissingRecord(t *testing.T) {
	c := newTestServer(t)

	c.expect(http.StatusAccepted, http.MethodPost, "/actions", handlers.ActionRequest{Type: "organ", ID: "does-not-exist", Mode: "delete"}, nil)
	c.expect(http.StatusNotFound, http.MethodPost, "/actions/submit", handlers.SubmitRequest{Secret: testSecret, Reason: "vendido"}, nil)

	var status appsvcs.GateStatus
	c.expect(http.StatusOK, http.MethodGet, "/actions", nil, &status)
	if status.State != appsvcs.GateIdle {
		t.Fatalf("expected idle gate, got %+v", status)
	}
	var log []models.DeletedItem
	c.expect(http.StatusOK, http.MethodGet, "/deleted-items", nil, &log)
	if len(log) != 0 {
		t.Fatalf("expected no tombstones, got %d", len(log))
	}
}
