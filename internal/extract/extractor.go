package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rentproof/rentproof/internal/llm"
	"github.com/rentproof/rentproof/internal/model"
)

// ErrExtraction indicates the backend call failed or its response was
// not parseable as the expected JSON shape. Engine code matches it with
// errors.Is to decide whether to fall back to direct matching.
var ErrExtraction = errors.New("extraction failed")

// RateLimiter gates outbound backend calls. Implemented by
// worker.Limiter; nil disables limiting.
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// Extractor turns raw document text into a structured tenancy record by
// prompting a completion backend against a fixed schema. The backend is
// injected so tests can run against a fake; the Extractor holds no
// per-request state.
type Extractor struct {
	backend llm.Provider
	limiter RateLimiter
	schema  *jsonschema.Schema
	log     *slog.Logger
}

// NewExtractor creates an Extractor around the given backend. limiter
// and log may be nil.
func NewExtractor(backend llm.Provider, limiter RateLimiter, log *slog.Logger) (*Extractor, error) {
	if backend == nil {
		return nil, fmt.Errorf("extraction backend is required")
	}
	schema, err := compileSchema(BuildRecordSchema())
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		backend: backend,
		limiter: limiter,
		schema:  schema,
		log:     log,
	}, nil
}

// Extract performs one backend call and parses the response strictly as
// JSON. Markdown-fenced or otherwise non-JSON output is an ErrExtraction
// (the backend contract requires raw JSON); missing fields inside valid
// JSON are not errors and surface as absent record values. The caller
// bounds the call with ctx.
func (e *Extractor) Extract(ctx context.Context, documentText string) (*model.ExtractedRecord, error) {
	rid := uuid.New().String()
	start := time.Now()

	e.log.Info("extract.start",
		"req_id", rid,
		"backend", e.backend.Name(),
		"text_len", len(documentText),
	)

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, e.backend.Name()); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %v", ErrExtraction, err)
		}
	}

	schemaMap := BuildRecordSchema()
	resp, err := e.backend.Complete(ctx, llm.CompletionRequest{
		System:   BuildSystemPrompt(),
		Prompt:   BuildUserPrompt(schemaMap, documentText),
		JSONOnly: true,
	})
	if err != nil {
		e.log.Error("extract.backend_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("%w: backend: %v", ErrExtraction, err)
	}

	record, err := e.parse([]byte(resp.Text))
	if err != nil {
		e.log.Error("extract.parse_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	e.log.Info("extract.ok",
		"req_id", rid,
		"model", resp.Model,
		"tokens", resp.TokensUsed,
		"tenants", len(record.Tenants),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// parse validates raw backend output against the record schema and
// unmarshals it. The amount fields get one sanitize pass first so a
// numerically sloppy but structurally correct response still lands.
func (e *Extractor) parse(raw []byte) (*model.ExtractedRecord, error) {
	cleaned, changed, err := SanitizeAmounts(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", ErrExtraction, err)
	}
	if len(changed) > 0 {
		e.log.Warn("extract.amounts_sanitized", "fields", changed)
	}

	var v any
	if err := json.Unmarshal(cleaned, &v); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", ErrExtraction, err)
	}
	if err := e.schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: response does not match record schema: %v", ErrExtraction, err)
	}

	var record model.ExtractedRecord
	if err := json.Unmarshal(cleaned, &record); err != nil {
		return nil, fmt.Errorf("%w: unmarshal record: %v", ErrExtraction, err)
	}
	return &record, nil
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("record.json")
}
