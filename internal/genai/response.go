package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"fairwaycast/internal/domain"
)

// ParseCommentary extracts the commentary string from raw model output.
//
// The service is known to emit trailing explanatory text or truncated
// continuations after the JSON object, so everything past the last closing
// brace is discarded before parsing. No brace at all, or unparseable JSON,
// is ErrResponseParse; a parsed object without the commentary field is
// ErrMissingField.
func ParseCommentary(raw string) (string, error) {
	idx := strings.LastIndex(raw, "}")
	if idx < 0 {
		return "", fmt.Errorf("genai: no closing brace in %d chars of output: %w", len(raw), domain.ErrResponseParse)
	}
	trimmed := raw[:idx+1]

	var result struct {
		Commentary *string `json:"commentary"`
	}
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return "", fmt.Errorf("genai: invalid JSON in output: %w", domain.ErrResponseParse)
	}
	if result.Commentary == nil || *result.Commentary == "" {
		return "", fmt.Errorf("genai: response object has no commentary: %w", domain.ErrMissingField)
	}
	return *result.Commentary, nil
}
