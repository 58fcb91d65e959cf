package audit

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yardops/yardops/domain/payload"
)

// unicodeEscape matches the 4-hex-digit escape form a strict JSON
// serializer emits for characters like apostrophes.
var unicodeEscape = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// FormatPayload renders a stored audit payload as a single human-readable
// line. It is total: any input, including malformed documents, produces a
// string and never an error.
//
// Empty input yields "N/A". Input that fails to parse is returned with
// unicode escapes repaired but otherwise untouched. A top-level object is
// rendered as "Key: value" pairs joined by ", ", suppressing the legacy
// redundant "UserId" key (case-insensitive, top level only; nested objects
// keep it). Any other
// successfully parsed document falls back to the repaired raw text.
//
// The output is display text, not JSON: formatting is a one-way transform
// and its result is not expected to re-parse.
func FormatPayload(raw string) string {
	if raw == "" {
		return "N/A"
	}

	doc, err := payload.Parse(raw)
	if err != nil || doc.Kind != payload.KindObject {
		return repairUnicode(raw)
	}

	parts := make([]string, 0, len(doc.Members))
	for _, m := range doc.Members {
		if strings.EqualFold(m.Key, "UserId") {
			continue
		}
		parts = append(parts, m.Key+": "+formatValue(m.Value))
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

func formatValue(v payload.Value) string {
	switch v.Kind {
	case payload.KindString:
		return repairUnicode(v.Str)
	case payload.KindNumber:
		return v.Num
	case payload.KindBool:
		if v.Boolean {
			return "true"
		}
		return "false"
	case payload.KindNull:
		return "null"
	case payload.KindArray:
		items := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case payload.KindObject:
		members := make([]string, 0, len(v.Members))
		for _, m := range v.Members {
			members = append(members, m.Key+": "+formatValue(m.Value))
		}
		return "{" + strings.Join(members, ", ") + "}"
	default:
		return ""
	}
}

// repairUnicode replaces every \uXXXX sequence with the literal character it
// encodes.
func repairUnicode(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	return unicodeEscape.ReplaceAllStringFunc(s, func(match string) string {
		code, err := strconv.ParseUint(match[2:], 16, 32)
		if err != nil {
			return match
		}
		return string(rune(code))
	})
}
