package domain

import (
	"strconv"
	"strings"
)

// ResolveNoteID extracts a note's unique identifier from its frontmatter
// metadata using the configured field name. The second return value is
// false when the field is missing, empty or of an unusable type; callers
// must treat that as "exclude this note from all queue and sync
// operations" rather than as an error.
//
// Numeric frontmatter values are accepted and rendered as strings, since
// YAML parses bare identifiers like `id: 20240117` as integers.
func ResolveNoteID(metadata map[string]any, field string) (string, bool) {
	if field == "" {
		return "", false
	}

	raw, ok := metadata[field]
	if !ok {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		id := strings.TrimSpace(v)
		return id, id != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		// YAML only yields float64 for genuinely fractional values;
		// format without exponent so IDs stay stable.
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
