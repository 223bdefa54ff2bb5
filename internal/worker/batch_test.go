package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rentproof/rentproof/internal/model"
)

// fakeVerifier reports success when the claim name appears in the text.
type fakeVerifier struct {
	calls int32
}

func (v *fakeVerifier) Verify(ctx context.Context, claim model.UserClaim, documentText string) (*model.VerificationReport, error) {
	atomic.AddInt32(&v.calls, 1)
	ok := strings.Contains(documentText, claim.FullName)
	report := &model.VerificationReport{Success: ok}
	if !ok {
		report.Issues = []string{"Mismatch on fullName"}
	}
	return report, nil
}

func fileLoader(texts map[string]string) TextLoader {
	return func(ctx context.Context, source string) (string, error) {
		text, ok := texts[source]
		if !ok {
			return "", fmt.Errorf("no such document: %s", source)
		}
		return text, nil
	}
}

func batchClaim(name string) model.UserClaim {
	return model.UserClaim{
		FullName:  name,
		Address:   "1 High St",
		Rent:      "1200",
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	verifier := &fakeVerifier{}
	loader := fileLoader(map[string]string{
		"a.txt": "tenancy of Jane Doe",
		"b.txt": "tenancy of John Smith",
	})

	cases := []Case{
		{Name: "match", Document: "a.txt", Claim: batchClaim("Jane Doe")},
		{Name: "mismatch", Document: "b.txt", Claim: batchClaim("Jane Doe")},
		{Name: "missing", Document: "c.txt", Claim: batchClaim("Jane Doe")},
	}

	results := NewBatchProcessor(verifier, loader, 2).Process(context.Background(), cases)

	if len(results) != len(cases) {
		t.Fatalf("expected %d results, got %d", len(cases), len(results))
	}

	byName := make(map[string]*VerifyResult)
	for _, r := range results {
		byName[r.Case.Name] = r
	}

	if r := byName["match"]; r.Error != nil || r.Report == nil || !r.Report.Success {
		t.Errorf("match case: %+v", r)
	}
	if r := byName["mismatch"]; r.Error != nil || r.Report == nil || r.Report.Success {
		t.Errorf("mismatch case: %+v", r)
	}
	if r := byName["missing"]; r.Error == nil {
		t.Errorf("missing document should carry an error, got %+v", r)
	}

	if atomic.LoadInt32(&verifier.calls) != 2 {
		t.Errorf("verifier called %d times, want 2 (missing document never reaches it)", verifier.calls)
	}
}

func TestBatchProcessor_ManyCasesFewWorkers(t *testing.T) {
	// Far more cases than the pool's channel buffers hold. Submission
	// and result draining must overlap or the batch stalls with the
	// workers blocked on a full results channel.
	verifier := &fakeVerifier{}
	texts := map[string]string{"doc.txt": "tenancy of Jane Doe"}

	count := 50
	cases := make([]Case, 0, count)
	for i := 0; i < count; i++ {
		cases = append(cases, Case{
			Name:     fmt.Sprintf("case-%d", i+1),
			Document: "doc.txt",
			Claim:    batchClaim("Jane Doe"),
		})
	}

	done := make(chan []*VerifyResult, 1)
	go func() {
		done <- NewBatchProcessor(verifier, fileLoader(texts), 2).Process(context.Background(), cases)
	}()

	var results []*VerifyResult
	select {
	case results = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Process did not finish; submission stalled against full result buffers")
	}

	if len(results) != count {
		t.Fatalf("expected %d results, got %d", count, len(results))
	}
	for _, r := range results {
		if r.Error != nil || r.Report == nil || !r.Report.Success {
			t.Errorf("case %s: %+v", r.Case.Name, r)
		}
	}
	if got := atomic.LoadInt32(&verifier.calls); got != int32(count) {
		t.Errorf("verifier called %d times, want %d", got, count)
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []Case{
		{Name: "a", Document: "doc.txt", Claim: batchClaim("Jane Doe")},
		{Name: "b", Document: "doc.txt", Claim: batchClaim("Jane Doe")},
	}

	results := NewBatchProcessor(&fakeVerifier{}, fileLoader(nil), 2).Process(ctx, cases)

	// Every dropped case still yields a result carrying the error.
	if len(results) != len(cases) {
		t.Fatalf("expected %d results, got %d", len(cases), len(results))
	}
	for _, r := range results {
		if r.Error == nil {
			t.Errorf("case %s: expected a drop error, got %+v", r.Case.Name, r)
		}
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	results := NewBatchProcessor(&fakeVerifier{}, fileLoader(nil), 2).Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

const casesYAML = `cases:
  - name: flat-2
    document: agreement.txt
    claim:
      fullName: Jane Doe
      address: 1 High St
      rent: "1200"
      startDate: "2024-01-01"
      endDate: "2024-12-31"
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCases(t *testing.T) {
	path := writeTempFile(t, "cases.yaml", casesYAML)

	cases, err := LoadCases(path)
	if err != nil {
		t.Fatalf("LoadCases: %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	if cases[0].Name != "flat-2" || cases[0].Document != "agreement.txt" {
		t.Errorf("case = %+v", cases[0])
	}
	if cases[0].Claim.FullName != "Jane Doe" || cases[0].Claim.Rent != "1200" {
		t.Errorf("claim = %+v", cases[0].Claim)
	}
}

func TestLoadCases_DefaultNames(t *testing.T) {
	content := `cases:
  - document: a.txt
    claim:
      fullName: Jane Doe
      address: 1 High St
      rent: "1200"
      startDate: "2024-01-01"
      endDate: "2024-12-31"
  - name: second
    document: b.txt
    claim:
      fullName: John Smith
      address: 2 High St
      rent: "950"
      startDate: "2024-02-01"
      endDate: "2025-01-31"
  - document: c.txt
    claim:
      fullName: Ann Lee
      address: 3 High St
      rent: "800"
      startDate: "2024-03-01"
      endDate: "2025-02-28"
`
	cases, err := LoadCases(writeTempFile(t, "cases.yaml", content))
	if err != nil {
		t.Fatalf("LoadCases: %v", err)
	}

	// Unnamed cases are named by file position, so report files map
	// back to the case file regardless of completion order.
	want := []string{"case-1", "second", "case-3"}
	for i, name := range want {
		if cases[i].Name != name {
			t.Errorf("cases[%d].Name = %q, want %q", i, cases[i].Name, name)
		}
	}
}

func TestLoadCases_DuplicateNames(t *testing.T) {
	content := `cases:
  - name: flat-2
    document: a.txt
    claim:
      fullName: Jane Doe
      address: 1 High St
      rent: "1200"
      startDate: "2024-01-01"
      endDate: "2024-12-31"
  - name: flat-2
    document: b.txt
    claim:
      fullName: John Smith
      address: 2 High St
      rent: "950"
      startDate: "2024-02-01"
      endDate: "2025-01-31"
`
	_, err := LoadCases(writeTempFile(t, "cases.yaml", content))
	if err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	if !strings.Contains(err.Error(), "flat-2") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadCases_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"no cases", "cases: []\n"},
		{"not yaml", "{{{"},
		{"missing document", "cases:\n  - name: x\n    claim:\n      fullName: Jane\n      address: a\n      rent: \"1\"\n      startDate: \"2024-01-01\"\n      endDate: \"2024-12-31\"\n"},
		{"incomplete claim", "cases:\n  - name: x\n    document: a.txt\n    claim:\n      fullName: Jane\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "cases.yaml", tt.content)
			if _, err := LoadCases(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadCases_MissingFile(t *testing.T) {
	if _, err := LoadCases(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
