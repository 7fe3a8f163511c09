// Package seed loads the activity table the directory starts from.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"mergingtonactivities/internal/domain"
)

//go:embed activities.toml
var defaultTable []byte

type table struct {
	Activities []activityRow `toml:"activity"`
}

type activityRow struct {
	Name            string   `toml:"name"`
	Description     string   `toml:"description"`
	Schedule        string   `toml:"schedule"`
	MaxParticipants int      `toml:"max_participants"`
	Participants    []string `toml:"participants"`
}

// Default returns the built-in activity table.
func Default() (domain.ActivityList, error) {
	return Parse(defaultTable)
}

// LoadFile reads an activity table from a TOML file on disk.
func LoadFile(path string) (domain.ActivityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML activity table. Activities keep the
// order in which they appear in the document.
func Parse(data []byte) (domain.ActivityList, error) {
	var t table
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: decode seed: %v", domain.ErrInvalidInput, err)
	}

	seen := make(map[string]struct{}, len(t.Activities))
	out := make(domain.ActivityList, 0, len(t.Activities))
	for i, row := range t.Activities {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: activity #%d has no name", domain.ErrInvalidInput, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate activity %q", domain.ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
		if row.MaxParticipants < 0 {
			return nil, fmt.Errorf("%w: activity %q has negative max_participants", domain.ErrInvalidInput, name)
		}

		a := domain.NewActivity(name, row.Description, row.Schedule, row.MaxParticipants)
		for _, email := range row.Participants {
			email = strings.TrimSpace(email)
			if email == "" {
				return nil, fmt.Errorf("%w: activity %q has a blank participant", domain.ErrInvalidInput, name)
			}
			if a.HasParticipant(email) {
				return nil, fmt.Errorf("%w: activity %q lists %s twice", domain.ErrInvalidInput, name, email)
			}
			a.Participants = append(a.Participants, email)
		}
		out = append(out, a)
	}
	return out, nil
}
