package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML lexicon from path. Sections absent from the file keep their
// default values. An empty path returns Default().
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	f := DefaultFile()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	return New(f), nil
}
