package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVerificationReport_JSON(t *testing.T) {
	deposit := "1500.00"
	report := VerificationReport{
		Match:            FieldVerdict{FullName: true, Address: true, Rent: true, StartDate: true, EndDate: true},
		ExtractedDeposit: &deposit,
		Issues:           []string{},
		Success:          true,
	}

	b, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(b)

	// Extracted stays present (as null) even on the direct path, so
	// consumers see a stable shape.
	for _, want := range []string{`"extracted":null`, `"extractedDeposit":"1500.00"`, `"issues":[]`, `"success":true`, `"fullName":true`} {
		if !strings.Contains(out, want) {
			t.Errorf("marshaled report missing %s: %s", want, out)
		}
	}
}
