package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// amountPaths are the nested decimal-string fields backends most often
// get wrong (emitting numbers or grouped strings instead).
var amountPaths = [][2]string{
	{"rent", "amount"},
	{"deposit", "amount"},
}

// SanitizeAmounts normalizes the monetary amount fields of a parsed
// response so a response that is structurally right but numerically
// sloppy still validates: JSON numbers become two-decimal strings,
// grouping commas are stripped, and null/empty amounts are dropped.
// Only the amount fields are touched; everything else must already
// conform. Returns the cleaned document and the paths it changed.
func SanitizeAmounts(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var changed []string
	for _, path := range amountPaths {
		parent, ok := m[path[0]].(map[string]any)
		if !ok {
			continue
		}
		v, ok := parent[path[1]]
		if !ok {
			continue
		}

		name := path[0] + "." + path[1]
		switch t := v.(type) {
		case nil:
			delete(parent, path[1])
			changed = append(changed, name)
		case float64:
			parent[path[1]] = fmt.Sprintf("%.2f", t)
			changed = append(changed, name)
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
			if s == "" || strings.EqualFold(s, "null") {
				delete(parent, path[1])
				changed = append(changed, name)
				continue
			}
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				// Leave it for schema validation to reject.
				continue
			}
			if s != t {
				changed = append(changed, name)
			}
			parent[path[1]] = s
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, changed, nil
}
