package intent

import (
	"strings"
)

// Normalize extracts a best-effort JSON object substring from raw model
// output. Models frequently wrap JSON in markdown fences or surround it
// with prose; this strips both. When no object can be located the trimmed
// input is returned unchanged and the caller's parse attempt reports the
// failure. Normalize never errors.
//
// Normalize is idempotent over its own output.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)

	if inner, ok := extractFencedBlock(text); ok {
		text = strings.TrimSpace(inner)
	}

	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text
	}

	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return text
	}

	return text[startIdx : endIdx+1]
}

// extractFencedBlock returns the inner content of the first ``` fenced
// block, tolerating an optional language tag after the opening fence.
func extractFencedBlock(text string) (string, bool) {
	open := strings.Index(text, "```")
	if open == -1 {
		return "", false
	}

	rest := text[open+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// Drop the language tag line ("json", "JSON", or empty).
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || len(tag) <= 10 && !strings.ContainsAny(tag, "{}") {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end == -1 {
		return rest, true
	}
	return rest[:end], true
}
