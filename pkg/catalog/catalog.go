package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultDocument []byte

// ErrInvalidEntry is returned by Parse when an entry cannot be turned into a
// fixture file.
var ErrInvalidEntry = errors.New("invalid catalog entry")

// Entry describes one fixture image. Code is drawn as-is; Description is only
// printed to the console.
type Entry struct {
	Name        string `yaml:"name"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// FileName returns the PNG file name for the entry.
func (e Entry) FileName() string {
	return e.Name + ".png"
}

// Default returns the built-in catalog in declaration order.
func Default() []Entry {
	entries, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded fixtures: %v", err))
	}
	return entries
}

// Parse decodes a YAML list of entries, keeping document order.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("entry %d: %w: duplicate name %q", i, ErrInvalidEntry, e.Name)
		}
		seen[e.Name] = true
	}
	return entries, nil
}

func validate(e Entry) error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	case strings.ContainsAny(e.Name, `/\`) || strings.Contains(e.Name, ".."):
		return fmt.Errorf("%w: name %q is not a plain file stem", ErrInvalidEntry, e.Name)
	case e.Code == "":
		return fmt.Errorf("%w: %q has no code", ErrInvalidEntry, e.Name)
	}
	return nil
}
