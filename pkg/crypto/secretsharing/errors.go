// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.

package secretsharing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates threshold, share count or secret length bounds were violated.
	ErrInvalidConfig = errors.New("invalid secret sharing configuration")

	// ErrInvalidPoints indicates an unusable set of shares was passed to Combine.
	ErrInvalidPoints = errors.New("invalid share points")
)

// ConfigError reports which parameter violated its bounds.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// PointError describes why a set of shares cannot be interpolated.
type PointError struct {
	Index   int
	Message string
}

func (e *PointError) Error() string {
	return fmt.Sprintf("share %d: %s", e.Index, e.Message)
}

func (e *PointError) Unwrap() error {
	return ErrInvalidPoints
}
