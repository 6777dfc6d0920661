package catalog

import (
	"strings"
	"testing"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

func TestDefault(t *testing.T) {
	c := Default()
	entries := c.Entries()

	wantOrder := []models.Dance{
		models.DanceWaggle,
		models.DanceRound,
		models.DanceScout,
		models.DanceTremble,
		models.DanceConverge,
		models.DanceDisperse,
	}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, want := range wantOrder {
		if entries[i].Dance != want {
			t.Errorf("entry %d: expected dance %q, got %q", i, want, entries[i].Dance)
		}
	}
}

func TestDefault_Multipliers(t *testing.T) {
	c := Default()
	tests := []struct {
		dance models.Dance
		want  float64
	}{
		{models.DanceWaggle, 0.3},
		{models.DanceRound, 0.9},
		{models.DanceScout, 0.5},
		{models.DanceTremble, 0.7},
		{models.DanceConverge, 0.4},
		{models.DanceDisperse, 0.25},
	}

	for _, tt := range tests {
		t.Run(string(tt.dance), func(t *testing.T) {
			e, ok := c.Lookup(tt.dance)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.dance)
			}
			if e.Multiplier != tt.want {
				t.Errorf("multiplier = %v, want %v", e.Multiplier, tt.want)
			}
		})
	}
}

func TestDefault_Specialties(t *testing.T) {
	c := Default()
	tests := []struct {
		dance models.Dance
		want  string
	}{
		{models.DanceWaggle, "architect"},
		{models.DanceRound, "messenger"},
		{models.DanceScout, "explorer"},
		{models.DanceTremble, "debugger"},
		{models.DanceConverge, "facilitator"},
		{models.DanceDisperse, "coordinator"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dance), func(t *testing.T) {
			e, _ := c.Lookup(tt.dance)
			if e.Specialty != tt.want {
				t.Errorf("specialty = %q, want %q", e.Specialty, tt.want)
			}
		})
	}
}

func TestCatalog_Fallback(t *testing.T) {
	c := Default()
	if got := c.Fallback().Dance; got != models.DanceWaggle {
		t.Errorf("expected waggle fallback, got %q", got)
	}
}

func TestCatalog_Lookup_Unknown(t *testing.T) {
	c := Default()
	if _, ok := c.Lookup(models.Dance("shimmy")); ok {
		t.Error("expected lookup of unknown dance to fail")
	}
}

func TestEntry_Instantiate(t *testing.T) {
	e := Entry{
		Dance: models.DanceScout,
		Template: []string{
			"Research existing solutions for: " + DescriptionPlaceholder,
			"Identify best practices",
		},
	}
	got := e.Instantiate("caching layers")

	if got[0] != "Research existing solutions for: caching layers" {
		t.Errorf("unexpected first subtask: %q", got[0])
	}
	if got[1] != "Identify best practices" {
		t.Errorf("expected placeholder-free pattern unchanged, got %q", got[1])
	}
}

func TestEntry_Instantiate_MultiplePlaceholders(t *testing.T) {
	e := Entry{
		Template: []string{DescriptionPlaceholder + " then verify " + DescriptionPlaceholder},
	}
	got := e.Instantiate("the fix")
	if got[0] != "the fix then verify the fix" {
		t.Errorf("expected every placeholder replaced, got %q", got[0])
	}
}

func TestValidate(t *testing.T) {
	valid := Entry{
		Dance:      models.DanceRound,
		Template:   []string{"Execute: " + DescriptionPlaceholder},
		Multiplier: 0.9,
	}

	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "empty catalog",
			entries: nil,
			wantErr: "at least one entry",
		},
		{
			name: "unknown dance",
			entries: []Entry{
				{Dance: "shimmy", Template: []string{"x"}, Multiplier: 0.5},
			},
			wantErr: "unknown dance",
		},
		{
			name:    "duplicate dance",
			entries: []Entry{valid, valid},
			wantErr: "duplicate",
		},
		{
			name: "zero multiplier",
			entries: []Entry{
				{Dance: models.DanceRound, Template: []string{"x"}, Multiplier: 0},
			},
			wantErr: "out of range",
		},
		{
			name: "multiplier above one",
			entries: []Entry{
				{Dance: models.DanceRound, Template: []string{"x"}, Multiplier: 1.5},
			},
			wantErr: "out of range",
		},
		{
			name: "empty template",
			entries: []Entry{
				{Dance: models.DanceRound, Multiplier: 0.9},
			},
			wantErr: "template",
		},
		{
			name:    "valid single entry",
			entries: []Entry{valid},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestCatalog_Replace(t *testing.T) {
	c := Default()

	custom := []Entry{
		{
			Dance:      models.DanceRound,
			Keywords:   []string{"ping"},
			Template:   []string{"Execute: " + DescriptionPlaceholder},
			Multiplier: 0.8,
			Specialty:  "messenger",
		},
	}
	if err := c.Replace(custom); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("expected 1 entry after replace, got %d", len(c.Entries()))
	}
	if c.Fallback().Dance != models.DanceRound {
		t.Errorf("expected fallback to follow new first entry, got %q", c.Fallback().Dance)
	}

	// Invalid replacements leave the catalog untouched.
	if err := c.Replace(nil); err == nil {
		t.Fatal("expected error replacing with empty entries")
	}
	if len(c.Entries()) != 1 {
		t.Errorf("expected catalog unchanged after failed replace, got %d entries", len(c.Entries()))
	}
}
