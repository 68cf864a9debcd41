package adapter

import (
	"encoding/json"
	"fmt"
)

// DefaultMaxOutputChars is the default formatted-output budget in runes.
const DefaultMaxOutputChars = 4000

// TruncationMarker is appended when output is cut to the budget. A formatted
// result is never longer than the budget plus this marker.
const TruncationMarker = "\n… [output truncated]"

// resultKeys are conventional result-bearing map keys probed in order.
var resultKeys = []string{"output", "result"}

// FormatResult converts an arbitrary agent return value into display text
// bounded to maxChars runes. It reports whether truncation occurred.
//
//   - strings pass through unchanged
//   - maps are probed for conventional result keys, else rendered as JSON
//   - anything else uses its textual representation
func FormatResult(v any, maxChars int) (string, bool) {
	if maxChars <= 0 {
		maxChars = DefaultMaxOutputChars
	}

	return truncate(stringify(v), maxChars)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		for _, key := range resultKeys {
			if rv, ok := t[key]; ok {
				return stringify(rv)
			}
		}

		b, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", t)
		}

		return string(b)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, maxChars int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s, false
	}

	return string(runes[:maxChars]) + TruncationMarker, true
}
