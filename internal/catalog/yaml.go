package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

// fileEntry is the YAML representation of a catalog entry.
type fileEntry struct {
	Dance      string   `yaml:"dance"`
	Keywords   []string `yaml:"keywords"`
	Template   []string `yaml:"template"`
	Multiplier float64  `yaml:"multiplier"`
	Specialty  string   `yaml:"specialty"`
}

// catalogFile is the top-level YAML document for a catalog override.
//
//	dances:
//	  - dance: waggle
//	    keywords: [complex, decompose]
//	    template:
//	      - "Analyze requirements for: {description}"
//	    multiplier: 0.3
//	    specialty: architect
type catalogFile struct {
	Dances []fileEntry `yaml:"dances"`
}

// LoadFile reads and validates a catalog override from a YAML file.
// Entry order in the file becomes catalog order.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	entries := make([]Entry, len(f.Dances))
	for i, fe := range f.Dances {
		entries[i] = Entry{
			Dance:      models.Dance(fe.Dance),
			Keywords:   fe.Keywords,
			Template:   fe.Template,
			Multiplier: fe.Multiplier,
			Specialty:  fe.Specialty,
		}
	}
	if err := Validate(entries); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return entries, nil
}

// FromFile creates a catalog from a YAML override file.
func FromFile(path string) (*Catalog, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(entries)
}
