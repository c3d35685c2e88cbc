// Package util holds small string helpers shared by the catalog loaders.
package util

import (
	"regexp"
	"strings"
)

var (
	separatorRe = regexp.MustCompile(`[\s_/]+`)
	invalidRe   = regexp.MustCompile(`[^a-z0-9-]`)
	dashRunRe   = regexp.MustCompile(`-+`)
)

// NormalizeTagID turns a hand-written tag id into its canonical form:
// lowercase ASCII letters, digits and single inner dashes.
//
//	"Write"        -> "write"
//	"mind_map"     -> "mind-map"
//	" AI / Tools " -> "ai-tools"
//	"✍️"           -> ""
//
// URL tag values are compared against these canonical ids verbatim.
func NormalizeTagID(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = separatorRe.ReplaceAllString(s, "-")
	s = invalidRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
