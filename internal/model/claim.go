package model

import (
	"fmt"
	"strings"
)

// UserClaim holds the tenancy facts a user asserts about themselves.
// Rent is kept as the raw decimal string from the form; dates are
// YYYY-MM-DD strings. A claim is immutable for the duration of a request.
type UserClaim struct {
	FullName  string `json:"fullName" yaml:"fullName"`
	Address   string `json:"address" yaml:"address"`
	Rent      string `json:"rent" yaml:"rent"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
}

// ClaimFields lists the claim field names in declaration order.
// Issue ordering in reports follows this order.
var ClaimFields = []string{"fullName", "address", "rent", "startDate", "endDate"}

// Validate rejects claims with empty required fields. An empty claim
// value would trivially pass substring matching, so it is treated as a
// caller error rather than a silent match.
func (c UserClaim) Validate() error {
	missing := c.missingFields()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing claim fields: %s", ErrInvalidClaim, strings.Join(missing, ", "))
}

func (c UserClaim) missingFields() []string {
	values := map[string]string{
		"fullName":  c.FullName,
		"address":   c.Address,
		"rent":      c.Rent,
		"startDate": c.StartDate,
		"endDate":   c.EndDate,
	}

	var missing []string
	for _, name := range ClaimFields {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
