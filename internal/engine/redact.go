package engine

import (
	"sort"
	"strings"
)

const privateKeyMarker = "PRIVATE KEY"

// RedactText rewrites the text with every matched span replaced by a
// placeholder. Spans containing a private-key block keep their first and
// last line with the interior collapsed, so the block boundary stays visible
// without exposing key material. Redaction is idempotent on its own output
// for masked spans.
func RedactText(text string, cfg *Config) string {
	rules := BuildPatterns(cfg)
	matches := DetectAll(text, rules)
	if len(matches) == 0 {
		return text
	}

	// Order by position; on identical starts prefer the longer span.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].Length > matches[j].Length
	})

	var b strings.Builder
	pos := 0
	for _, m := range matches {
		if m.Start < pos {
			continue // overlaps a span already redacted
		}
		b.WriteString(text[pos:m.Start])
		span := text[m.Start : m.Start+m.Length]
		if strings.Contains(span, privateKeyMarker) {
			b.WriteString(redactKeyBlock(span))
		} else {
			b.WriteString("[REDACTED:" + m.Type + "]")
		}
		pos = m.Start + m.Length
	}
	b.WriteString(text[pos:])
	return b.String()
}

// redactKeyBlock keeps the first and last line of a multi-line key block and
// replaces everything between them with an ellipsis marker.
func redactKeyBlock(span string) string {
	lines := strings.Split(span, "\n")
	if len(lines) < 2 {
		// Key material on a single line: nothing structural to preserve.
		return "[REDACTED:private_key_block]"
	}
	return lines[0] + "\n...\n" + lines[len(lines)-1]
}

// RedactParams walks a JSON-like parameter tree and redacts every string it
// finds. Nested mappings are recursed into, array elements are handled
// per-element, and non-string scalars pass through unchanged. A nil root
// collapses to an empty mapping.
func RedactParams(params any, cfg *Config) any {
	if params == nil {
		return map[string]any{}
	}
	return redactValue(params, cfg)
}

func redactValue(v any, cfg *Config) any {
	switch t := v.(type) {
	case string:
		return RedactText(t, cfg)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = redactValue(val, cfg)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			if s, ok := el.(string); ok {
				out[i] = RedactText(s, cfg)
			} else {
				out[i] = redactValue(el, cfg)
			}
		}
		return out
	default:
		return v
	}
}
