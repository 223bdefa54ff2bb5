package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rentproof/rentproof/internal/llm"
)

// stubProvider reports a fixed availability.
type stubProvider struct {
	available bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Text: "{}"}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return s.available }

func TestPreflightBackend(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	if !preflightBackend(&stubProvider{available: true}, log) {
		t.Error("available backend should pass preflight")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}

	if preflightBackend(&stubProvider{available: false}, log) {
		t.Error("unreachable backend should fail preflight")
	}
	out := buf.String()
	if !strings.Contains(out, "backend_unavailable") || !strings.Contains(out, "stub") {
		t.Errorf("expected an unavailability warning naming the provider, got %q", out)
	}
}
