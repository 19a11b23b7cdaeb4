// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package slip39

import "fmt"

// DefaultIterationExponent is the iteration exponent recorded in new shares.
const DefaultIterationExponent = 1

// GroupSpec is the member threshold and member count of one group.
type GroupSpec struct {
	Threshold int `yaml:"threshold" json:"threshold"`
	Count     int `yaml:"count" json:"count"`
}

// Config describes the two-level split of a master secret.
type Config struct {
	// GroupThreshold is the number of groups required to recover.
	GroupThreshold int `yaml:"group_threshold" json:"group_threshold"`

	// Groups lists each group's member threshold and count.
	Groups []GroupSpec `yaml:"groups" json:"groups"`

	// IterationExponent is carried in every share for passphrase
	// stretching by callers. It does not affect the split.
	IterationExponent int `yaml:"iteration_exponent" json:"iteration_exponent"`

	// Extendable marks the share set as extendable and selects the
	// checksum customization string.
	Extendable bool `yaml:"extendable" json:"extendable"`
}

// NewConfig returns an extendable config with the default iteration
// exponent.
func NewConfig(groupThreshold int, groups ...GroupSpec) *Config {
	return &Config{
		GroupThreshold:    groupThreshold,
		Groups:            groups,
		IterationExponent: DefaultIterationExponent,
		Extendable:        true,
	}
}

// Validate checks the group layout. It returns a *ConfigError naming the
// first offending field.
func (c *Config) Validate() error {
	if len(c.Groups) == 0 {
		return &ConfigError{Field: "groups", Message: "at least one group is required"}
	}
	if len(c.Groups) > MaxGroups {
		return &ConfigError{Field: "groups", Message: fmt.Sprintf("at most %d groups, got %d", MaxGroups, len(c.Groups))}
	}
	if c.GroupThreshold < 1 || c.GroupThreshold > len(c.Groups) {
		return &ConfigError{
			Field:   "group_threshold",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", len(c.Groups), c.GroupThreshold),
		}
	}
	for i, g := range c.Groups {
		if g.Count < 1 || g.Count > MaxGroups {
			return &ConfigError{
				Field:   fmt.Sprintf("groups[%d].count", i),
				Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxGroups, g.Count),
			}
		}
		if g.Threshold < 1 || g.Threshold > g.Count {
			return &ConfigError{
				Field:   fmt.Sprintf("groups[%d].threshold", i),
				Message: fmt.Sprintf("must be between 1 and %d, got %d", g.Count, g.Threshold),
			}
		}
	}
	if c.IterationExponent < 0 || c.IterationExponent > MaxIterationExponent {
		return &ConfigError{
			Field:   "iteration_exponent",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxIterationExponent, c.IterationExponent),
		}
	}
	return nil
}

// ShareCount returns the total number of member shares the config produces.
func (c *Config) ShareCount() int {
	n := 0
	for _, g := range c.Groups {
		n += g.Count
	}
	return n
}
