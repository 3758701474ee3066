package bankster

import (
	"errors"
	"fmt"
)

// ErrorCode is a domain error code used by registry and money operations.
type ErrorCode string

const (
	// ErrorNotFound indicates a registry mutation targeted an unknown currency.
	ErrorNotFound ErrorCode = "not-found"
	// ErrorAlreadyExists indicates a duplicate registration without replace semantics.
	ErrorAlreadyExists ErrorCode = "already-exists"
	// ErrorCurrencyMismatch indicates arithmetic or comparison across incompatible currencies.
	ErrorCurrencyMismatch ErrorCode = "currency-mismatch"
	// ErrorInexactRounding indicates a forced scale change that would lose precision
	// with no rounding mode in effect.
	ErrorInexactRounding ErrorCode = "inexact-rounding"
	// ErrorDivisionByZero indicates division by a zero divisor.
	ErrorDivisionByZero ErrorCode = "division-by-zero"
	// ErrorInvalidRatio indicates an allocation with non-integer or all-zero ratios.
	ErrorInvalidRatio ErrorCode = "invalid-ratio"
	// ErrorMalformedInput indicates a structurally unsupported resolution input.
	ErrorMalformedInput ErrorCode = "malformed-input"
	// ErrorInvalidCurrency indicates a currency definition that violates its own
	// structural constraints.
	ErrorInvalidCurrency ErrorCode = "invalid-currency"
)

// Error represents a structured domain validation error.
type Error struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewError creates a domain error with code, field, and message.
func NewError(code ErrorCode, field, message string) error {
	return Error{Code: code, Field: field, Message: message}
}

// Errorf creates a domain error with a formatted message.
func Errorf(code ErrorCode, field, format string, args ...any) error {
	return Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the domain error code from err, or the empty code when err
// is not a domain error.
func CodeOf(err error) ErrorCode {
	var de Error
	if errors.As(err, &de) {
		return de.Code
	}

	return ""
}

// IsCode reports whether err is a domain error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
