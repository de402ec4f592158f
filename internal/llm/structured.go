package llm

import (
	"encoding/json"
	"strings"
)

// RawKey holds the original text when a response contains no JSON object.
const RawKey = "raw"

// ParseObject reads a JSON object out of model output. It tries the whole
// text first, then the first balanced {...} block, and finally returns
// {"raw": text} so callers always get an object back.
func ParseObject(text string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err == nil && obj != nil {
		return obj
	}
	if block := extractJSONBlock(text); block != "" {
		obj = nil
		if err := json.Unmarshal([]byte(block), &obj); err == nil && obj != nil {
			return obj
		}
	}
	return map[string]any{RawKey: text}
}

// extractJSONBlock finds the first balanced { ... } block in the text,
// ignoring braces inside string literals.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
