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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(1, GroupSpec{Threshold: 2, Count: 3})
	assert.True(t, cfg.Extendable)
	assert.Equal(t, DefaultIterationExponent, cfg.IterationExponent)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.ShareCount())
}

func TestConfig_Validate(t *testing.T) {
	sixteen := make([]GroupSpec, 16)
	for i := range sixteen {
		sixteen[i] = GroupSpec{Threshold: 1, Count: 1}
	}

	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantErr bool
	}{
		{"single 1-of-1", Config{GroupThreshold: 1, Groups: []GroupSpec{{1, 1}}}, "", false},
		{"1-of-n group", Config{GroupThreshold: 1, Groups: []GroupSpec{{1, 5}}}, "", false},
		{"sixteen groups", Config{GroupThreshold: 16, Groups: sixteen}, "", false},
		{"sixteen members", Config{GroupThreshold: 1, Groups: []GroupSpec{{16, 16}}}, "", false},
		{"no groups", Config{GroupThreshold: 1}, "groups", true},
		{"seventeen groups", Config{GroupThreshold: 1, Groups: append(sixteen, GroupSpec{1, 1})}, "groups", true},
		{"zero group threshold", Config{GroupThreshold: 0, Groups: []GroupSpec{{1, 1}}}, "group_threshold", true},
		{"group threshold above count", Config{GroupThreshold: 3, Groups: []GroupSpec{{1, 1}, {1, 1}}}, "group_threshold", true},
		{"member count zero", Config{GroupThreshold: 1, Groups: []GroupSpec{{1, 0}}}, "groups[0].count", true},
		{"member count above max", Config{GroupThreshold: 1, Groups: []GroupSpec{{2, 3}, {1, 17}}}, "groups[1].count", true},
		{"member threshold above count", Config{GroupThreshold: 1, Groups: []GroupSpec{{4, 3}}}, "groups[0].threshold", true},
		{"member threshold zero", Config{GroupThreshold: 1, Groups: []GroupSpec{{0, 3}}}, "groups[0].threshold", true},
		{"iteration exponent", Config{GroupThreshold: 1, Groups: []GroupSpec{{1, 1}}, IterationExponent: 16}, "iteration_exponent", true},
		{"negative iteration exponent", Config{GroupThreshold: 1, Groups: []GroupSpec{{1, 1}}, IterationExponent: -1}, "iteration_exponent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
