package model

// FieldVerdict maps each claim field to its match result. The field set
// is fixed; issue generation walks the fields in declaration order.
type FieldVerdict struct {
	FullName  bool `json:"fullName"`
	Address   bool `json:"address"`
	Rent      bool `json:"rent"`
	StartDate bool `json:"startDate"`
	EndDate   bool `json:"endDate"`
}

// AllTrue reports whether every field matched.
func (v FieldVerdict) AllTrue() bool {
	return v.FullName && v.Address && v.Rent && v.StartDate && v.EndDate
}

// Ordered returns the verdicts in claim field declaration order,
// parallel to ClaimFields.
func (v FieldVerdict) Ordered() []bool {
	return []bool{v.FullName, v.Address, v.Rent, v.StartDate, v.EndDate}
}

// VerificationReport is the sole externally observable output of a
// verification. It is a terminal value: once built it is never mutated.
// Extracted is nil when the structured record did not get produced
// (direct strategy, or fallback after an extraction failure).
type VerificationReport struct {
	Extracted        *ExtractedRecord `json:"extracted"`
	Match            FieldVerdict     `json:"match"`
	ExtractedDeposit *string          `json:"extractedDeposit"`
	Issues           []string         `json:"issues"`
	Success          bool             `json:"success"`
}
