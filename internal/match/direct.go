package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rentproof/rentproof/internal/model"
)

// DefaultDepositPattern finds the token "deposit" followed, within a
// bounded lookahead, by an optional currency symbol and a decimal amount
// (optionally comma-grouped, optional cents). Capture group 1 is the
// amount string.
const DefaultDepositPattern = `(?i)deposit[^£$]*[£$]?\s?(\d+(?:,\d{3})*(?:\.\d{2})?)`

// Matcher is the fallback strategy: it checks literal substring presence
// of each claimed field inside normalized document text, and extracts
// the deposit amount with a regex. It holds no per-request state.
type Matcher struct {
	depositRe *regexp.Regexp
}

// NewMatcher creates a Matcher using the built-in deposit pattern.
func NewMatcher() *Matcher {
	return &Matcher{depositRe: regexp.MustCompile(DefaultDepositPattern)}
}

// NewMatcherWithPattern creates a Matcher with an overridden deposit
// pattern. The pattern must compile and keep at least one capture group
// for the amount.
func NewMatcherWithPattern(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile deposit pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("deposit pattern needs a capture group for the amount: %q", pattern)
	}
	return &Matcher{depositRe: re}, nil
}

// Match checks each claim field against the normalized text and
// extracts the deposit amount. Name and address are matched
// case-insensitively after trimming the claim; rent and dates are
// matched as their raw trimmed string ("1200" does not match "1,200").
// The returned deposit is nil when no amount was found.
func (m *Matcher) Match(claim model.UserClaim, text string) (model.FieldVerdict, *string) {
	normalized := Normalize(text)

	verdict := model.FieldVerdict{
		FullName:  strings.Contains(normalized, Normalize(claim.FullName)),
		Address:   strings.Contains(normalized, Normalize(claim.Address)),
		Rent:      strings.Contains(normalized, strings.TrimSpace(claim.Rent)),
		StartDate: strings.Contains(normalized, strings.TrimSpace(claim.StartDate)),
		EndDate:   strings.Contains(normalized, strings.TrimSpace(claim.EndDate)),
	}

	return verdict, m.ExtractDeposit(normalized)
}

// ExtractDeposit returns the first deposit amount found in the text, or
// nil if the pattern does not match.
func (m *Matcher) ExtractDeposit(text string) *string {
	groups := m.depositRe.FindStringSubmatch(text)
	if len(groups) < 2 || groups[1] == "" {
		return nil
	}
	amount := groups[1]
	return &amount
}
