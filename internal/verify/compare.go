package verify

import (
	"fmt"
	"strings"

	"github.com/rentproof/rentproof/internal/model"
)

// Compare evaluates each claim field against the structured record.
// It is pure and total: a nil record or absent extracted values yield
// false verdicts, never an error.
//
// Names and addresses match on case-insensitive substring containment
// of the trimmed claim inside the extracted value. Rent matches on
// numeric equality at minor-unit (pence) granularity, so "1200.00"
// equals "1200" without floating point drift. Dates match on exact
// string equality of the ISO YYYY-MM-DD forms.
func Compare(claim model.UserClaim, record *model.ExtractedRecord) model.FieldVerdict {
	if record == nil {
		return model.FieldVerdict{}
	}

	return model.FieldVerdict{
		FullName:  anyTenantMatches(record.Tenants, claim.FullName),
		Address:   containsClaim(record.Property.Address, claim.Address),
		Rent:      rentEqual(record.Rent.Amount, claim.Rent),
		StartDate: dateEqual(record.Tenancy.StartDate, claim.StartDate),
		EndDate:   dateEqual(record.Tenancy.EndDate, claim.EndDate),
	}
}

func anyTenantMatches(tenants []model.Tenant, claimName string) bool {
	for _, t := range tenants {
		if containsClaim(t.FullName, claimName) {
			return true
		}
	}
	return false
}

func containsClaim(extracted, claim string) bool {
	if extracted == "" {
		return false
	}
	return strings.Contains(strings.ToLower(extracted), strings.ToLower(strings.TrimSpace(claim)))
}

func rentEqual(extracted *string, claim string) bool {
	if extracted == nil {
		return false
	}
	want, err := minorUnits(claim)
	if err != nil {
		return false
	}
	got, err := minorUnits(*extracted)
	if err != nil {
		return false
	}
	return want == got
}

func dateEqual(extracted, claim string) bool {
	return extracted != "" && extracted == strings.TrimSpace(claim)
}

// minorUnits parses a decimal amount string into integer minor units
// (pence). Grouping commas are tolerated; more than two fractional
// digits are not.
func minorUnits(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("too many decimal places: %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var units int64
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount: %q", s)
			}
			units = units*10 + int64(r-'0')
		}
	}
	return units, nil
}
