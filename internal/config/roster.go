package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Roster is the static officer and alias configuration, loaded once at
// process start and immutable afterwards. Officer order in the file is
// the declared report order. Changes require a restart.
type Roster struct {
	Officers []string          `yaml:"officers"`
	Aliases  map[string]string `yaml:"aliases"`
}

// LoadRoster reads the roster file. A missing file is not an error:
// reports simply run with an empty officer set and no aliases.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Roster{}, nil
		}
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}

	return &roster, nil
}
