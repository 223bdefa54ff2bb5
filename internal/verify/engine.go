package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rentproof/rentproof/internal/cache"
	"github.com/rentproof/rentproof/internal/match"
	"github.com/rentproof/rentproof/internal/model"
)

// ErrUnavailable indicates both strategies were exhausted: structured
// extraction failed and fallback is disabled. The caller maps it to a
// user-facing error response.
var ErrUnavailable = errors.New("verification unavailable")

// noTextIssue is recorded when the document produced no text at all.
const noTextIssue = "No text available from document"

// RecordExtractor produces a structured tenancy record from document
// text. Implemented by extract.Extractor; faked in tests.
type RecordExtractor interface {
	Extract(ctx context.Context, documentText string) (*model.ExtractedRecord, error)
}

// Engine runs one verification per call: it produces comparable data
// from the document via the configured strategy, compares it against
// the claim, and aggregates the verdicts into a report. Engines are
// stateless across requests and safe for concurrent use; the only
// shared component is the optional extraction cache.
type Engine struct {
	cfg       model.EngineConfig
	matcher   *match.Matcher
	extractor RecordExtractor
	store     cache.Cache
	cacheCfg  model.CacheConfig
	log       *slog.Logger
}

// NewEngine creates an Engine. extractor is required for the structured
// strategies and ignored for direct; store may be nil to disable
// extraction caching; log may be nil.
func NewEngine(cfg model.EngineConfig, extractor RecordExtractor, store cache.Cache, cacheCfg model.CacheConfig, log *slog.Logger) (*Engine, error) {
	if !cfg.Strategy.Valid() {
		return nil, fmt.Errorf("unknown strategy: %q", cfg.Strategy)
	}
	if cfg.Strategy != model.StrategyDirect && extractor == nil {
		return nil, fmt.Errorf("strategy %q requires an extraction backend", cfg.Strategy)
	}

	matcher := match.NewMatcher()
	if cfg.DepositPattern != "" {
		var err error
		matcher, err = match.NewMatcherWithPattern(cfg.DepositPattern)
		if err != nil {
			return nil, err
		}
	}

	if !cacheCfg.Enabled {
		store = nil
	}
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		cfg:       cfg,
		matcher:   matcher,
		extractor: extractor,
		store:     store,
		cacheCfg:  cacheCfg,
		log:       log,
	}, nil
}

// Verify checks the claim against the document text and returns the
// report. It fails only on invalid claims, caller cancellation, or —
// with fallback disabled — an exhausted extraction; every other problem
// becomes a false verdict or an issue inside the report.
func (e *Engine) Verify(ctx context.Context, claim model.UserClaim, documentText string) (*model.VerificationReport, error) {
	if err := claim.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(documentText) == "" {
		return BuildReport(nil, model.FieldVerdict{}, nil, []string{noTextIssue}), nil
	}

	switch e.cfg.Strategy {
	case model.StrategyDirect:
		return e.verifyDirect(claim, documentText), nil

	case model.StrategyStructured:
		record, err := e.extractRecord(ctx, documentText)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return e.verifyStructured(claim, record), nil

	default: // model.StrategyStructuredWithFallback
		record, err := e.extractRecord(ctx, documentText)
		if err != nil {
			// Abandon on caller cancellation: no partial report.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.log.Warn("verify.fallback_to_direct", "error", err)
			return e.verifyDirect(claim, documentText), nil
		}
		return e.verifyStructured(claim, record), nil
	}
}

func (e *Engine) verifyDirect(claim model.UserClaim, documentText string) *model.VerificationReport {
	verdict, deposit := e.matcher.Match(claim, documentText)
	return BuildReport(nil, verdict, deposit, nil)
}

func (e *Engine) verifyStructured(claim model.UserClaim, record *model.ExtractedRecord) *model.VerificationReport {
	verdict := Compare(claim, record)
	return BuildReport(record, verdict, record.Deposit.Amount, nil)
}

// extractRecord runs the single outbound extraction, bounded by the
// configured timeout and short-circuited by the cache.
func (e *Engine) extractRecord(ctx context.Context, documentText string) (*model.ExtractedRecord, error) {
	key := cache.Key(documentText)

	if e.store != nil {
		if raw, ok := e.store.Get(key); ok {
			var record model.ExtractedRecord
			if err := json.Unmarshal(raw, &record); err == nil {
				return &record, nil
			}
			_ = e.store.Delete(key)
		}
	}

	callCtx := ctx
	if e.cfg.ExtractionTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.ExtractionTimeout)
		defer cancel()
	}

	record, err := e.extractor.Extract(callCtx, documentText)
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if raw, err := json.Marshal(record); err == nil {
			_ = e.store.Set(key, raw, e.cacheCfg.TTL)
		}
	}

	return record, nil
}
