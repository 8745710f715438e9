// Package frontmatter parses and strips YAML frontmatter from notes.
//
// A frontmatter block is delimited by a "---" line at the very start of
// the content and a matching closing "---" line. Only the first block is
// recognised; content without an opening marker at position 0 passes
// through unchanged.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const marker = "---"

// Strip removes the leading frontmatter block, delimiters included, and
// returns the remainder verbatim. Content without frontmatter is
// returned unchanged. A block that is opened but never closed is treated
// as absent.
func Strip(raw string) string {
	_, body := split(raw)
	return body
}

// Parse returns the frontmatter as a key-value mapping plus the stripped
// body. Notes without frontmatter yield an empty mapping. Malformed YAML
// in the block is an error; the body is still returned so callers can
// fall back to treating the note as metadata-less.
func Parse(raw string) (map[string]any, string, error) {
	block, body := split(raw)
	if block == "" {
		return map[string]any{}, body, nil
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return map[string]any{}, body, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// split separates the first frontmatter block from the body. The block
// is returned without its delimiters.
func split(raw string) (block, body string) {
	rest, ok := strings.CutPrefix(raw, marker+"\n")
	if !ok {
		// Tolerate CRLF line endings on the opening line.
		rest, ok = strings.CutPrefix(raw, marker+"\r\n")
		if !ok {
			return "", raw
		}
	}

	// An empty block closes on the very next line.
	if after, ok := strings.CutPrefix(rest, marker+"\n"); ok {
		return "", after
	}
	if rest == marker {
		return "", ""
	}

	for _, closing := range []string{"\n" + marker + "\n", "\n" + marker + "\r\n"} {
		if idx := strings.Index(rest, closing); idx >= 0 {
			return rest[:idx], rest[idx+len(closing):]
		}
	}

	// Closing marker as the final line without a trailing newline.
	if strings.HasSuffix(rest, "\n"+marker) {
		return strings.TrimSuffix(rest, "\n"+marker), ""
	}

	return "", raw
}
