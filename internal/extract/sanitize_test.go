package extract

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sanitized(t *testing.T, in string) (map[string]any, []string) {
	t.Helper()
	out, changed, err := SanitizeAmounts([]byte(in))
	if err != nil {
		t.Fatalf("SanitizeAmounts: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	return m, changed
}

func amountOf(t *testing.T, m map[string]any, section string) (string, bool) {
	t.Helper()
	parent, ok := m[section].(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := parent["amount"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("%s.amount is %T, want string", section, v)
	}
	return s, true
}

func TestSanitizeAmounts_NumberBecomesString(t *testing.T) {
	m, changed := sanitized(t, `{"rent": {"amount": 1200}}`)

	if got, _ := amountOf(t, m, "rent"); got != "1200.00" {
		t.Errorf("rent.amount = %q, want 1200.00", got)
	}
	if !reflect.DeepEqual(changed, []string{"rent.amount"}) {
		t.Errorf("changed = %v", changed)
	}
}

func TestSanitizeAmounts_GroupingCommasStripped(t *testing.T) {
	m, changed := sanitized(t, `{"deposit": {"amount": "1,500.00"}}`)

	if got, _ := amountOf(t, m, "deposit"); got != "1500.00" {
		t.Errorf("deposit.amount = %q, want 1500.00", got)
	}
	if len(changed) != 1 {
		t.Errorf("changed = %v, want one entry", changed)
	}
}

func TestSanitizeAmounts_NullAndEmptyDropped(t *testing.T) {
	m, _ := sanitized(t, `{"rent": {"amount": null}, "deposit": {"amount": ""}}`)

	if _, present := amountOf(t, m, "rent"); present {
		t.Error("null rent.amount should be dropped")
	}
	if _, present := amountOf(t, m, "deposit"); present {
		t.Error("empty deposit.amount should be dropped")
	}
}

func TestSanitizeAmounts_CleanInputUntouched(t *testing.T) {
	m, changed := sanitized(t, `{"rent": {"amount": "1200.00", "currency": "GBP"}}`)

	if got, _ := amountOf(t, m, "rent"); got != "1200.00" {
		t.Errorf("rent.amount = %q", got)
	}
	if len(changed) != 0 {
		t.Errorf("clean input reported changes: %v", changed)
	}
}

func TestSanitizeAmounts_NonNumericLeftForValidation(t *testing.T) {
	m, changed := sanitized(t, `{"rent": {"amount": "twelve hundred"}}`)

	if got, _ := amountOf(t, m, "rent"); got != "twelve hundred" {
		t.Errorf("rent.amount = %q, want untouched", got)
	}
	if len(changed) != 0 {
		t.Errorf("changed = %v", changed)
	}
}

func TestSanitizeAmounts_InvalidJSON(t *testing.T) {
	if _, _, err := SanitizeAmounts([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
