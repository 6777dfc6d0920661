package delegate

import (
	"strings"

	"github.com/hiveworks/swarmrouter/internal/catalog"
)

// Classification is the outcome of dance selection for one description.
type Classification struct {
	// Entry is the selected catalog entry.
	Entry catalog.Entry
	// Score is the number of the entry's keywords found in the description.
	Score int
	// Matched lists the keywords that were found, in catalog order.
	Matched []string
	// Fallback is true when no keyword in any entry matched and the
	// catalog fallback was used.
	Fallback bool
}

// Classify scores the description against every catalog entry and returns
// the best match. Scoring counts how many of an entry's keywords occur as
// substrings of the lowercased description, each keyword at most once.
// Ties go to the earliest entry in catalog order, so the result is
// deterministic. A description matching nothing classifies into the
// catalog fallback; classification never fails.
func Classify(c *catalog.Catalog, description string) Classification {
	lower := strings.ToLower(description)

	var best Classification
	bestScore := -1
	for _, entry := range c.Entries() {
		var matched []string
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > bestScore {
			bestScore = len(matched)
			best = Classification{Entry: entry, Score: len(matched), Matched: matched}
		}
	}

	if bestScore == 0 {
		return Classification{Entry: c.Fallback(), Fallback: true}
	}
	return best
}
