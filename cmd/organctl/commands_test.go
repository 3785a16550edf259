package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
	organSvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	return &config.Config{
		StorageDriver:     driver,
		StoragePath:       t.TempDir(),
		ActionSecret:      config.DefaultActionSecret,
		GateErrorDuration: 2 * time.Second,
		LogLevel:          "error",
		Environment:       config.EnvTesting,
	}
}

// seed stores one organ that was never maintained and one deleted organ.
func seed(t *testing.T, cfg *config.Config) (keptID string) {
	t.Helper()
	ctx := context.Background()
	svcs, err := organSvcs.New(ctx, &app.Application{Config: cfg, Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("open services: %v", err)
	}
	defer svcs.Close()

	kept, err := svcs.Mutations.CreateOrgan(ctx, organSvcs.OrganInput{
		LocationID:     "lag-centro",
		ChurchLocation: models.PositionChurchHall,
		Model:          "Yamaha Electone",
	})
	if err != nil {
		t.Fatalf("create organ: %v", err)
	}
	gone, err := svcs.Mutations.CreateOrgan(ctx, organSvcs.OrganInput{
		LocationID:     "lag-magalhaes",
		ChurchLocation: models.PositionMusicRoom,
		Model:          "Roland Atelier",
	})
	if err != nil {
		t.Fatalf("create organ: %v", err)
	}
	if _, err := svcs.Mutations.DeleteOrgan(ctx, gone.ID, "Instrumento vendido"); err != nil {
		t.Fatalf("delete organ: %v", err)
	}
	return kept.ID
}

func run(cfg *config.Config, args ...string) (string, error) {
	cmd := newRootCmd(func() (*config.Config, error) { return cfg, nil })
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPending(t *testing.T) {
	cfg := testConfig(t, config.StorageFile)
	id := seed(t, cfg)

	t.Run("table", func(t *testing.T) {
		out, err := run(cfg, "pending")
		if err != nil {
			t.Fatalf("pending: %v", err)
		}
		if !strings.Contains(out, id) || !strings.Contains(out, "never") {
			t.Fatalf("expected organ %s listed as never maintained, got:\n%s", id, out)
		}
		if strings.Contains(out, "Roland Atelier") {
			t.Fatalf("expected deleted organ to be absent, got:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(cfg, "pending", "-o", "json")
		if err != nil {
			t.Fatalf("pending: %v", err)
		}
		var rows []organSvcs.OrganStatus
		if err := json.Unmarshal([]byte(out), &rows); err != nil {
			t.Fatalf("decode output: %v\n%s", err, out)
		}
		if len(rows) != 1 || rows[0].ID != id || rows[0].Adm != models.AdmLaguna {
			t.Fatalf("expected one Laguna organ %s, got %+v", id, rows)
		}
	})

	t.Run("adm filter", func(t *testing.T) {
		out, err := run(cfg, "pending", "--adm", "Imbituba")
		if err != nil {
			t.Fatalf("pending: %v", err)
		}
		if strings.Contains(out, id) {
			t.Fatalf("expected no Imbituba organs, got:\n%s", out)
		}
	})

	t.Run("unknown adm", func(t *testing.T) {
		if _, err := run(cfg, "pending", "--adm", "Florianópolis"); err == nil {
			t.Fatal("expected error for unknown administration")
		}
	})
}

func TestLocations(t *testing.T) {
	cfg := testConfig(t, config.StorageFile)
	seed(t, cfg)

	out, err := run(cfg, "locations", "Laguna", "-q", "centro", "-o", "json")
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	var rows []struct {
		ID         string `json:"id"`
		OrganCount int    `json:"organ_count"`
		Pending    bool   `json:"pending"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].ID != "lag-centro" {
		t.Fatalf("expected only lag-centro, got %+v", rows)
	}
	if rows[0].OrganCount != 1 || !rows[0].Pending {
		t.Fatalf("expected one pending organ at lag-centro, got %+v", rows[0])
	}
}

func TestTombstones(t *testing.T) {
	cfg := testConfig(t, config.StorageFile)
	seed(t, cfg)

	out, err := run(cfg, "tombstones", "--type", "organ", "-o", "yaml")
	if err != nil {
		t.Fatalf("tombstones: %v", err)
	}
	for _, want := range []string{"reason: Instrumento vendido", "type: organ", "location_name:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}

	out, err = run(cfg, "tombstones", "--type", "maintenance")
	if err != nil {
		t.Fatalf("tombstones: %v", err)
	}
	if strings.Contains(out, "Instrumento vendido") {
		t.Fatalf("expected no maintenance tombstones, got:\n%s", out)
	}

	if _, err := run(cfg, "tombstones", "--type", "location"); err == nil {
		t.Fatal("expected error for unknown record type")
	}
}

func TestSummary(t *testing.T) {
	cfg := testConfig(t, config.StorageFile)
	id := seed(t, cfg)

	out, err := run(cfg, "summary", id)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("expected a summary")
	}

	if _, err := run(cfg, "summary", "missing"); err == nil {
		t.Fatal("expected error for unknown organ")
	}
}

func TestSyncDisabled(t *testing.T) {
	cfg := testConfig(t, config.StorageFile)

	for _, sub := range []string{"push", "pull"} {
		t.Run(sub, func(t *testing.T) {
			_, err := run(cfg, "sync", sub)
			if !errors.Is(err, errSyncDisabled) {
				t.Fatalf("expected errSyncDisabled, got %v", err)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	t.Run("file driver", func(t *testing.T) {
		out, err := run(testConfig(t, config.StorageFile), "migrate")
		if err != nil {
			t.Fatalf("migrate: %v", err)
		}
		if !strings.Contains(out, "keeps no schema") {
			t.Fatalf("expected no-schema message, got %q", out)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		out, err := run(testConfig(t, config.StorageSQLite), "migrate")
		if err != nil {
			t.Fatalf("migrate: %v", err)
		}
		if !strings.HasPrefix(out, "schema version ") || strings.HasPrefix(out, "schema version 0 ") {
			t.Fatalf("expected a migrated schema version, got %q", out)
		}
	})
}

func TestUnknownOutput(t *testing.T) {
	if _, err := run(testConfig(t, config.StorageFile), "pending", "-o", "xml"); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}
