package backend

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// messageFrom pulls a human-readable message out of the error shapes the
// sandbox uses: {"message"}, {"error"}, {"detail"}, {"errors": [...]} and
// FastAPI-style {"detail": [{"msg"}]}.
func messageFrom(body []byte) string {
	var shape map[string]any
	if err := json.Unmarshal(body, &shape); err != nil {
		return truncate(strings.TrimSpace(string(body)), maxMessageRunes)
	}
	for _, key := range []string{"message", "error", "detail", "errors"} {
		if msg := flatten(shape[key]); msg != "" {
			return msg
		}
	}
	return ""
}

const maxMessageRunes = 200

// truncate cuts s to at most n runes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func flatten(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		for _, key := range []string{"msg", "message", "error", "detail"} {
			if s := flatten(t[key]); s != "" {
				return s
			}
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}
