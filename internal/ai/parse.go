package ai

import (
	"encoding/json"
	"errors"
	"strings"

	"yoga-playlist/internal/schema"
)

// ErrMalformedResponse is returned when no parseable JSON object could be
// extracted from the completion text.
var ErrMalformedResponse = errors.New("no valid JSON object in response")

// ParsePlan extracts a class plan from raw completion text and validates it
// against the policy. Models wrap JSON in prose or code fences often enough
// that a strict parse alone is not viable: after stripping fences the text is
// parsed as-is first, then retried on the slice between the first '{' and the
// last '}'.
func ParsePlan(text string, policy schema.Policy) (schema.ClassPlan, error) {
	cleaned := stripFences(strings.TrimSpace(text))

	plan, ok := parsePlanJSON(cleaned)
	if !ok {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return schema.ClassPlan{}, ErrMalformedResponse
		}
		plan, ok = parsePlanJSON(cleaned[start : end+1])
		if !ok {
			return schema.ClassPlan{}, ErrMalformedResponse
		}
	}

	if err := schema.Validate(plan, policy); err != nil {
		return schema.ClassPlan{}, err
	}
	return plan, nil
}

func parsePlanJSON(raw string) (schema.ClassPlan, bool) {
	var plan schema.ClassPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return schema.ClassPlan{}, false
	}
	return plan, true
}

// stripFences removes a leading ```/```json marker and a trailing ``` if
// present. Fences elsewhere are left for the brace scan to skip over.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	rest := strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[idx+1:]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}
