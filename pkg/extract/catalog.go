package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// patternFile is the on-disk shape of a custom pattern catalog.
type patternFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// LoadPatterns reads additional relation patterns from a YAML catalog and
// appends them to the built-in set. Relation labels are open strings, so a
// catalog can introduce new labels freely; categories must be one of the
// known tags and every expression must compile with two capture groups.
func LoadPatterns(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern catalog: %w", err)
	}
	extra, err := ParsePatterns(data)
	if err != nil {
		return nil, err
	}
	return append(DefaultPatterns(), extra...), nil
}

// ParsePatterns decodes and validates a YAML pattern catalog.
func ParsePatterns(data []byte) ([]Pattern, error) {
	var file patternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode pattern catalog: %w", err)
	}

	for i := range file.Patterns {
		p := &file.Patterns[i]
		if p.Label == "" {
			return nil, fmt.Errorf("pattern %d: label is required", i)
		}
		if _, err := types.ParseCategory(string(p.Category)); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Label, err)
		}
		if p.Confidence <= 0 || p.Confidence > 1 {
			return nil, fmt.Errorf("pattern %q: confidence must be in (0,1]", p.Label)
		}
		re, err := p.Regexp()
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Label, err)
		}
		if re.NumSubexp() < 2 {
			return nil, fmt.Errorf("pattern %q: expression needs two capture groups", p.Label)
		}
	}
	return file.Patterns, nil
}
