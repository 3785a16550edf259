package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

var (
	testOrgan   = models.Organ{ID: "o1", Model: "Yamaha PSR", PatrimonyNumber: "P-77"}
	testHistory = []models.Maintenance{{
		ID:         "m1",
		OrganID:    "o1",
		Date:       time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Occurrence: "tecla travando",
		Photos:     []string{"data:image/png;base64,AAAA"},
	}}
)

// chatServer answers /v1/chat/completions with content, or 500 when content is empty.
func chatServer(t *testing.T, content string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if content == "" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestSummarizer(srv *httptest.Server) *OpenAI {
	oc := openai.DefaultConfig("test-key")
	oc.BaseURL = srv.URL + "/v1"
	return NewOpenAI(openai.NewClientWithConfig(oc), "", logger.Discard())
}

func TestOpenAI_Summarize(t *testing.T) {
	var calls atomic.Int32
	s := newTestSummarizer(chatServer(t, "  Instrumento em bom estado.  ", &calls))

	got := s.Summarize(context.Background(), testOrgan, testHistory)
	if got != "Instrumento em bom estado." {
		t.Fatalf("unexpected summary %q", got)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestOpenAI_EmptyHistorySkipsModel(t *testing.T) {
	var calls atomic.Int32
	s := newTestSummarizer(chatServer(t, "unused", &calls))

	if got := s.Summarize(context.Background(), testOrgan, nil); got != NoHistoryText {
		t.Fatalf("expected no-history text, got %q", got)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no model call, got %d", calls.Load())
	}
}

func TestOpenAI_FailureFallsBack(t *testing.T) {
	var calls atomic.Int32
	s := newTestSummarizer(chatServer(t, "", &calls))

	if got := s.Summarize(context.Background(), testOrgan, testHistory); got != UnavailableText {
		t.Fatalf("expected unavailable text, got %q", got)
	}
}

func TestStatic(t *testing.T) {
	tests := []struct {
		name    string
		history []models.Maintenance
		want    string
	}{
		{"no history", nil, NoHistoryText},
		{"with history", testHistory, UnavailableText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Static{}).Summarize(context.Background(), testOrgan, tt.history); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNew_WithoutKeyIsStatic(t *testing.T) {
	if _, ok := New(&config.Config{}, logger.Discard()).(Static); !ok {
		t.Fatal("expected static summarizer without API key")
	}
	if _, ok := New(&config.Config{OpenAIAPIKey: "k"}, logger.Discard()).(*OpenAI); !ok {
		t.Fatal("expected OpenAI summarizer with API key")
	}
}

func TestPrompt(t *testing.T) {
	p, err := Prompt(testOrgan, testHistory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Yamaha PSR", "P-77", "2025-05-10", "tecla travando"} {
		if !strings.Contains(p, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
	if strings.Contains(p, "base64") {
		t.Error("photos must not be sent to the model")
	}
}
