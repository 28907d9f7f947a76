// Package names maps free-form labels to filesystem-safe output filenames.
//
// Clean is the pure character-class sanitizer; Namer layers per-run
// fallback naming and duplicate disambiguation on top of it. A Namer is
// scoped to a single conversion run and must not be shared across runs.
package names

import (
	"fmt"
	"strings"
)

// reserved is the set of characters replaced by '_' in output filenames.
// Matches the Windows-reserved set; other control characters pass through.
const reserved = `\/*?:"<>|`

// Clean strips leading/trailing whitespace and replaces every reserved
// filename character with an underscore. It never truncates and is
// idempotent: Clean(Clean(x)) == Clean(x).
func Clean(label string) string {
	label = strings.TrimSpace(label)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(reserved, r) {
			return '_'
		}
		return r
	}, label)
}

// Namer assigns unique output names within one conversion run.
type Namer struct {
	counts map[string]int
}

// NewNamer returns an empty Namer. Duplicate counting starts fresh,
// so disambiguation suffixes never leak across conversions.
func NewNamer() *Namer {
	return &Namer{counts: make(map[string]int)}
}

// Next resolves the output name (without extension) for the given label
// and 1-based page number. A label that is blank after trimming falls
// back to a zero-padded page ordinal ("Page_001"). The resolved label is
// sanitized with Clean, then disambiguated: the first occurrence keeps
// the plain name, later occurrences get "_2", "_3", and so on.
//
// A non-blank label that sanitizes to an empty string is kept as-is
// rather than falling back to the page ordinal.
func (n *Namer) Next(label string, pageNr int) string {
	if strings.TrimSpace(label) == "" {
		label = fmt.Sprintf("Page_%03d", pageNr)
	}
	name := Clean(label)
	n.counts[name]++
	if c := n.counts[name]; c > 1 {
		return fmt.Sprintf("%s_%d", name, c)
	}
	return name
}
