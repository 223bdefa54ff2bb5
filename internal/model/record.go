package model

// ExtractedRecord is the structured projection of a tenancy agreement
// produced by the extraction backend. Fields the document does not state
// stay zero or nil, never fabricated. Monetary amounts are decimal
// strings (e.g. "1200.00") so comparison can happen at minor-unit
// granularity without binary floating point drift.
type ExtractedRecord struct {
	Tenants  []Tenant     `json:"tenants"`
	Property Property     `json:"property"`
	Rent     RentTerms    `json:"rent"`
	Tenancy  TenancyTerms `json:"tenancy"`
	Deposit  DepositTerms `json:"deposit"`
	Landlord Landlord     `json:"landlord"`
}

// Tenant identifies one named tenant on the agreement.
type Tenant struct {
	FullName string `json:"fullName"`
}

// Property identifies the let property.
type Property struct {
	Address string `json:"address"`
}

// RentTerms captures the rent obligations stated in the agreement.
type RentTerms struct {
	Amount         *string `json:"amount"`
	Currency       string  `json:"currency"`
	DueDay         int     `json:"dueDay"`
	Frequency      string  `json:"frequency"`
	PaymentDetails string  `json:"paymentDetails"`
}

// TenancyTerms captures the term of the tenancy. Dates are ISO
// YYYY-MM-DD strings; empty means the document did not state them.
type TenancyTerms struct {
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	DurationMonths int    `json:"durationMonths"`
}

// DepositTerms captures the deposit and its protection scheme.
type DepositTerms struct {
	Amount      *string `json:"amount"`
	Currency    string  `json:"currency"`
	ProtectedBy string  `json:"protectedBy"`
}

// Landlord captures landlord and managing-agent details.
type Landlord struct {
	Name  string `json:"name"`
	Agent Agent  `json:"agent"`
}

// Agent is the landlord's managing agent, if any.
type Agent struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
