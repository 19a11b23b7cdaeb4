// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.

package gf256

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned when an operation would divide by the zero element.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// DomainError reports an operation applied outside its domain.
type DomainError struct {
	Op      string
	Operand byte
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("gf256: %s undefined for zero element (operand 0x%02x)", e.Op, e.Operand)
}

// Unwrap returns the underlying error for errors.Is() support.
func (e *DomainError) Unwrap() error {
	return ErrDivisionByZero
}
