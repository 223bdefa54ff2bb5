package extract

import (
	"encoding/json"
	"strings"
)

// maxDocumentChars bounds how much document text is embedded in the
// prompt. Tenancy agreements front-load the parties, property, rent and
// deposit clauses, so truncating the tail loses little.
const maxDocumentChars = 12000

// BuildSystemPrompt composes the instruction message. The backend
// contract is strict: raw JSON only, no markdown fences, nothing
// invented for fields the document does not state.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a tenancy agreement parser. Return ONLY a raw JSON object that matches the provided JSON Schema.",
		"Do NOT wrap the output in markdown code fences or add any text before or after the JSON.",
		"Use ISO-8601 dates (YYYY-MM-DD).",
		"Monetary amounts must be decimal strings without grouping separators, e.g. \"1200.00\".",
		"Currency must be a 3-letter ISO 4217 code (e.g. GBP).",
		"Extract every tenant named on the agreement into 'tenants'.",
		"Never invent values. If the document does not state a field, omit it entirely; never output null.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the schema and the (bounded) document text.
func BuildUserPrompt(schema map[string]any, documentText string) string {
	doc := strings.TrimSpace(documentText)
	if len(doc) > maxDocumentChars {
		doc = doc[:maxDocumentChars]
	}

	var b strings.Builder
	b.WriteString("JSON Schema:\n")
	b.WriteString(mustJSON(schema))
	b.WriteString("\n\nTenancy agreement text:\n")
	b.WriteString(doc)
	b.WriteString("\n\nReturn ONLY JSON that matches the schema.")
	return b.String()
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
