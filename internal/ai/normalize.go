package ai

import (
	"encoding/json"
	"strings"
)

// Normalize decodes raw into T. It first tries a strict parse of the trimmed
// text, then the span from the first opening delimiter to the last matching
// closer. If both fail the fallback is returned unchanged.
//
// Two top-level JSON values separated by prose produce a span that does not
// parse, so that case yields the fallback.
func Normalize[T any](raw string, fallback T) T {
	v, ok := Decode[T](raw)
	if !ok {
		return fallback
	}
	return v
}

// Decode is Normalize without a fallback; ok reports whether either stage parsed.
// A bare JSON null carries no payload and does not count as a parse.
func Decode[T any](raw string) (T, bool) {
	var out T
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return out, false
	}

	if err := json.Unmarshal([]byte(trimmed), &out); err == nil {
		return out, true
	}

	span, ok := ExtractJSON(trimmed)
	if !ok {
		return out, false
	}

	var retry T
	if err := json.Unmarshal([]byte(span), &retry); err != nil {
		return out, false
	}
	return retry, true
}

// ExtractJSON slices raw from the first '{' or '[' (whichever comes first)
// to the last occurrence of its matching closer. It does not check balance.
func ExtractJSON(raw string) (string, bool) {
	start := strings.IndexAny(raw, "{[")
	if start < 0 {
		return "", false
	}

	closer := byte('}')
	if raw[start] == '[' {
		closer = ']'
	}

	end := strings.LastIndexByte(raw, closer)
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
