package models

import "fmt"

// ValidationError describes a comprobante rejected at load time.
type ValidationError struct {
	Index   int
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("comprobante %d: field '%s': %s (value: %v)", e.Index, e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(index int, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Index:   index,
		Field:   field,
		Value:   value,
		Message: message,
	}
}
