// Package lfrconfig loads the host-tunable limits lfr's fixed-capacity
// tables need at construction time (spec.md §4.1, §4.5): row and id-range
// bounds for the node table, scheduling queue capacity, and the default RNG
// seed for randomize_number.
package lfrconfig

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits bounds every fixed-capacity structure lfr allocates up front.
type Limits struct {
	MaxNodes      int    `yaml:"max_nodes"`
	MaxIDRange    uint32 `yaml:"max_id_range"`
	QueueCapacity int    `yaml:"queue_capacity"`
	Seed          int64  `yaml:"seed"`
}

// Default returns lfr's out-of-the-box limits, generous enough for a small
// demo scene but still bounded, per spec.md's "no unbounded growth" design.
func Default() Limits {
	return Limits{
		MaxNodes:      4096,
		MaxIDRange:    1 << 20,
		QueueCapacity: 4096,
		Seed:          1,
	}
}

// Validate reports whether l's bounds are usable.
func (l Limits) Validate() error {
	if l.MaxNodes <= 0 {
		return fmt.Errorf("lfrconfig: max_nodes must be positive, got %d", l.MaxNodes)
	}
	if l.MaxIDRange < 2 {
		return fmt.Errorf("lfrconfig: max_id_range must be at least 2, got %d", l.MaxIDRange)
	}
	if l.QueueCapacity <= 0 {
		return fmt.Errorf("lfrconfig: queue_capacity must be positive, got %d", l.QueueCapacity)
	}
	return nil
}

// Load reads Limits from a YAML file, starting from Default() so a partial
// file only overrides the fields it names.
func Load(path string) (Limits, error) {
	f, err := os.Open(path)
	if err != nil {
		return Limits{}, fmt.Errorf("lfrconfig: open %s: %w", path, err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (Limits, error) {
	l := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&l); err != nil && err != io.EOF {
		return Limits{}, fmt.Errorf("lfrconfig: decode: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Limits{}, err
	}
	return l, nil
}
