package swagger_test

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"

	_ "github.com/ghuser/organcare/docs/swagger"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc("swagger")
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var doc struct {
		Swagger     string                    `json:"swagger"`
		BasePath    string                    `json:"basePath"`
		Paths       map[string]map[string]any `json:"paths"`
		Definitions map[string]any            `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	if doc.Swagger != "2.0" || doc.BasePath != "/api" {
		t.Fatalf("expected swagger 2.0 at /api, got %q at %q", doc.Swagger, doc.BasePath)
	}

	routes := map[string][]string{
		"/organs":              {"post"},
		"/organs/{id}":         {"get", "put"},
		"/organs/{id}/summary": {"get"},
		"/maintenances":        {"post"},
		"/maintenances/{id}":   {"get", "put"},
		"/actions":             {"get", "post", "delete"},
		"/actions/submit":      {"post"},
		"/dashboard":           {"get"},
		"/administrations":     {"get"},
		"/locations":           {"get"},
		"/locations/{id}":      {"get"},
		"/pending":             {"get"},
		"/deleted-items":       {"get"},
	}
	for path, methods := range routes {
		for _, m := range methods {
			if _, ok := doc.Paths[path][m]; !ok {
				t.Errorf("expected %s %s in the document", m, path)
			}
		}
	}
	for _, def := range []string{"ErrorResponse", "SubmitResponse", "models.DeletedItem", "services.GateStatus"} {
		if _, ok := doc.Definitions[def]; !ok {
			t.Errorf("expected definition %s", def)
		}
	}
}
