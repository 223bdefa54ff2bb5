package extract

// BuildRecordSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is embedded in the prompt as the output contract and
// used locally to validate the backend's response. Nothing is required:
// a field the document does not state must be omitted, not fabricated,
// and an absent field is a non-match downstream rather than an error.
// Present fields are type-checked strictly.
func BuildRecordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenants": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"fullName": map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
			"property": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"address": map[string]any{"type": "string"},
				},
			},
			"rent": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"amount":         decimalProp(),
					"currency":       currencyProp(),
					"dueDay":         map[string]any{"type": "integer", "minimum": 1, "maximum": 31},
					"frequency":      map[string]any{"type": "string"},
					"paymentDetails": map[string]any{"type": "string"},
				},
			},
			"tenancy": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"startDate":      dateProp(),
					"endDate":        dateProp(),
					"durationMonths": map[string]any{"type": "integer", "minimum": 0},
				},
			},
			"deposit": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"amount":      decimalProp(),
					"currency":    currencyProp(),
					"protectedBy": map[string]any{"type": "string"},
				},
			},
			"landlord": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
					"agent": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":    map[string]any{"type": "string"},
							"address": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d+(\.\d{1,2})?$`,
	}
}

func dateProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	}
}

func currencyProp() map[string]any {
	return map[string]any{
		"type":      "string",
		"minLength": 3,
		"maxLength": 3,
	}
}
