package verify

import "github.com/rentproof/rentproof/internal/model"

// DepositIssue is recorded when no deposit amount could be obtained
// from the document by either strategy.
const DepositIssue = "Could not extract deposit amount from document"

// BuildReport aggregates field verdicts, the extracted deposit and any
// pipeline-level issues into a terminal VerificationReport. Issues are
// deterministic and stable: one "Mismatch on <field>" per false verdict
// in claim-field declaration order, then the deposit issue, then
// pipeline issues. Success holds iff there are no issues.
func BuildReport(extracted *model.ExtractedRecord, verdict model.FieldVerdict, deposit *string, pipelineIssues []string) *model.VerificationReport {
	var issues []string

	ordered := verdict.Ordered()
	for i, field := range model.ClaimFields {
		if !ordered[i] {
			issues = append(issues, "Mismatch on "+field)
		}
	}

	if deposit == nil {
		issues = append(issues, DepositIssue)
	}

	issues = append(issues, pipelineIssues...)

	return &model.VerificationReport{
		Extracted:        extracted,
		Match:            verdict,
		ExtractedDeposit: deposit,
		Issues:           issues,
		Success:          len(issues) == 0,
	}
}
