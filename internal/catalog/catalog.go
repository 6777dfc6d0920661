// Package catalog holds the dance catalog: the authoritative table mapping
// each dance type to its classification keywords, decomposition template,
// efficiency multiplier, and bee specialty.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

// DescriptionPlaceholder is the token replaced with the original task
// description when a template is instantiated.
const DescriptionPlaceholder = "{description}"

// Entry describes one dance type in the catalog.
type Entry struct {
	// Dance is the dance type this entry describes.
	Dance models.Dance
	// Keywords trigger classification into this dance. Matching is
	// case-insensitive substring containment, each keyword counted once.
	Keywords []string
	// Template is the ordered list of subtask patterns used when the
	// caller supplies no explicit subtasks. Entries may contain
	// DescriptionPlaceholder.
	Template []string
	// Multiplier is the efficiency multiplier in (0, 1] applied to each
	// bee's base token share.
	Multiplier float64
	// Specialty is the role label given to bees recruited for this dance.
	Specialty string
}

// Instantiate renders the entry's template for a concrete description.
func (e Entry) Instantiate(description string) []string {
	out := make([]string, len(e.Template))
	for i, pattern := range e.Template {
		out[i] = strings.ReplaceAll(pattern, DescriptionPlaceholder, description)
	}
	return out
}

// Catalog is an ordered, thread-safe set of entries. Order matters: the
// classifier breaks score ties by returning the first maximum in catalog
// order, and the first entry is the fallback when nothing matches.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
	byDance map[models.Dance]Entry
}

// New creates a catalog from the given entries after validating them.
func New(entries []Entry) (*Catalog, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}
	c := &Catalog{}
	c.replace(entries)
	return c, nil
}

// Default returns a catalog with the built-in dance table.
func Default() *Catalog {
	c, err := New(defaultEntries())
	if err != nil {
		// The built-in table is a package constant; it cannot be invalid.
		panic(fmt.Sprintf("catalog: built-in entries invalid: %v", err))
	}
	return c
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry for a dance and whether it exists.
func (c *Catalog) Lookup(d models.Dance) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byDance[d]
	return e, ok
}

// Fallback returns the entry used when no keyword matches. This is the
// first entry in catalog order (waggle in the built-in table): unmatched
// tasks are treated as complex and decomposed.
func (c *Catalog) Fallback() Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[0]
}

// Replace swaps the catalog contents after validating the new entries.
// Used by the file watcher for hot reloads.
func (c *Catalog) Replace(entries []Entry) error {
	if err := Validate(entries); err != nil {
		return err
	}
	c.replace(entries)
	return nil
}

func (c *Catalog) replace(entries []Entry) {
	byDance := make(map[models.Dance]Entry, len(entries))
	for _, e := range entries {
		byDance[e.Dance] = e
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.byDance = byDance
}

// Validate checks catalog invariants: at least one entry, valid dance
// values, no duplicates, multipliers in (0, 1], non-empty templates.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("catalog must have at least one entry")
	}
	seen := make(map[models.Dance]bool, len(entries))
	for _, e := range entries {
		if !e.Dance.Valid() {
			return fmt.Errorf("unknown dance type %q", e.Dance)
		}
		if seen[e.Dance] {
			return fmt.Errorf("duplicate entry for dance %q", e.Dance)
		}
		seen[e.Dance] = true
		if e.Multiplier <= 0 || e.Multiplier > 1 {
			return fmt.Errorf("dance %q: multiplier %v out of range (0, 1]", e.Dance, e.Multiplier)
		}
		if len(e.Template) == 0 {
			return fmt.Errorf("dance %q: template must have at least one entry", e.Dance)
		}
	}
	return nil
}

// defaultEntries is the built-in dance table. Order is significant.
func defaultEntries() []Entry {
	return []Entry{
		{
			Dance: models.DanceWaggle,
			Keywords: []string{
				"complex", "decompose", "analyze", "multi-step", "elaborate",
				"comprehensive", "detailed", "break down", "architect",
			},
			Template: []string{
				"Analyze requirements for: " + DescriptionPlaceholder,
				"Design solution architecture",
				"Implement core functionality",
				"Create tests and documentation",
			},
			Multiplier: 0.3,
			Specialty:  "architect",
		},
		{
			Dance: models.DanceRound,
			Keywords: []string{
				"simple", "notify", "alert", "inform", "quick", "brief",
				"announcement", "update", "status", "list", "show",
				"display", "get",
			},
			Template: []string{
				"Execute: " + DescriptionPlaceholder,
			},
			Multiplier: 0.9,
			Specialty:  "messenger",
		},
		{
			Dance: models.DanceScout,
			Keywords: []string{
				"research", "explore", "find", "discover", "investigate",
				"search", "locate", "identify", "survey",
			},
			Template: []string{
				"Research existing solutions for: " + DescriptionPlaceholder,
				"Identify best practices",
				"Compile findings report",
			},
			Multiplier: 0.5,
			Specialty:  "explorer",
		},
		{
			Dance: models.DanceTremble,
			Keywords: []string{
				"error", "issue", "problem", "fix", "debug", "troubleshoot",
				"resolve", "broken", "failed",
			},
			Template: []string{
				"Identify root cause of: " + DescriptionPlaceholder,
				"Develop fix or workaround",
				"Test and validate solution",
			},
			Multiplier: 0.7,
			Specialty:  "debugger",
		},
		{
			Dance: models.DanceConverge,
			Keywords: []string{
				"consensus", "agree", "decide", "vote", "collaborate",
				"merge", "combine", "unify", "coordinate",
			},
			Template: []string{
				"Gather perspectives on: " + DescriptionPlaceholder,
				"Synthesize different viewpoints",
				"Build consensus recommendation",
			},
			Multiplier: 0.4,
			Specialty:  "facilitator",
		},
		{
			Dance: models.DanceDisperse,
			Keywords: []string{
				"parallel", "distribute", "split", "concurrent", "multiple",
				"simultaneous", "spread", "divide", "batch",
			},
			Template: []string{
				"Parallel task 1: " + DescriptionPlaceholder,
				"Parallel task 2: " + DescriptionPlaceholder,
				"Parallel task 3: " + DescriptionPlaceholder,
			},
			Multiplier: 0.25,
			Specialty:  "coordinator",
		},
	}
}
