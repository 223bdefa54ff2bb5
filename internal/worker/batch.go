package worker

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rentproof/rentproof/internal/model"
)

// Verifier defines the interface for verifying one claim against
// document text
type Verifier interface {
	Verify(ctx context.Context, claim model.UserClaim, documentText string) (*model.VerificationReport, error)
}

// TextLoader resolves a document reference (file path or URL) to its
// text content
type TextLoader func(ctx context.Context, source string) (string, error)

// Case is one claim/document pair in a batch file.
type Case struct {
	Name     string          `yaml:"name"`
	Document string          `yaml:"document"`
	Claim    model.UserClaim `yaml:"claim"`
}

// VerifyJob verifies a single case
type VerifyJob struct {
	Case     Case
	Verifier Verifier
	Load     TextLoader
}

// Execute executes the verification job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	text, err := j.Load(ctx, j.Case.Document)
	if err != nil {
		return &VerifyResult{
			Case:  j.Case,
			Error: fmt.Errorf("load document: %w", err),
		}
	}

	report, err := j.Verifier.Verify(ctx, j.Case.Claim, text)
	if err != nil {
		return &VerifyResult{
			Case:  j.Case,
			Error: err,
		}
	}
	return &VerifyResult{
		Case:   j.Case,
		Report: report,
	}
}

// VerifyResult represents the result of one verification job
type VerifyResult struct {
	Case   Case
	Report *model.VerificationReport
	Error  error
}

// GetError returns the error from the verification result
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple cases concurrently
type BatchProcessor struct {
	verifier    Verifier
	load        TextLoader
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier Verifier, load TextLoader, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		load:        load,
		concurrency: concurrency,
	}
}

// Process verifies all cases concurrently, preserving no particular
// order in the results. Results are drained while cases are still being
// submitted: the pool's channels are bounded, so a batch larger than
// the buffer would otherwise stall with workers blocked on the results
// channel and Submit blocked on the job queue. A case dropped by a
// cancelled pool still yields a result carrying the context error.
func (b *BatchProcessor) Process(ctx context.Context, cases []Case) []*VerifyResult {
	if len(cases) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	var dropped []*VerifyResult
	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for _, c := range cases {
			err := pool.Submit(&VerifyJob{
				Case:     c,
				Verifier: b.verifier,
				Load:     b.load,
			})
			if err != nil {
				dropped = append(dropped, &VerifyResult{
					Case:  c,
					Error: fmt.Errorf("case dropped: %w", err),
				})
			}
		}
		pool.Finish()
	}()

	verifyResults := make([]*VerifyResult, 0, len(cases))
	for r := range pool.Results() {
		if vr, ok := r.(*VerifyResult); ok {
			verifyResults = append(verifyResults, vr)
		}
	}

	<-submitted
	return append(verifyResults, dropped...)
}

// LoadCases reads a YAML batch file of verification cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases file: %w", err)
	}

	var file struct {
		Cases []Case `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse cases file: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("no cases in %s", path)
	}

	seen := make(map[string]int)
	for i := range file.Cases {
		c := &file.Cases[i]
		if c.Document == "" {
			return nil, fmt.Errorf("case %d (%s): document is required", i+1, c.Name)
		}
		if err := c.Claim.Validate(); err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i+1, c.Name, err)
		}

		// Names key the per-case report files, so unnamed cases get
		// their file position and repeats are rejected rather than
		// silently overwriting another case's report.
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if prev, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("case %d: duplicate name %q (also case %d)", i+1, c.Name, prev)
		}
		seen[c.Name] = i + 1
	}

	return file.Cases, nil
}
