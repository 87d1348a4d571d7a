package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "ValidationError", "ItemNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Field name, offending value, cause
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest", "ValidationError", "InvalidCategory":
		return http.StatusBadRequest
	case "ItemNotFound":
		return http.StatusNotFound
	case "InvalidOperation":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError("InvalidRequest", message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

func NewItemNotFound(itemID string) *StandardError {
	return NewStandardError("ItemNotFound", "item not found", fmt.Sprintf("Item ID: %s", itemID))
}

func NewInvalidCategory(category string) *StandardError {
	return NewStandardError("InvalidCategory", "unknown category",
		fmt.Sprintf("Category: %s (expected MEAT, VEGETABLE, FRUIT, SEAFOOD or OTHER)", category))
}

// NewInvalidOperation reports a request that is well formed but not allowed in
// the item's current state, e.g. purging an item that is not in the trash.
func NewInvalidOperation(message, details string) *StandardError {
	return NewStandardError("InvalidOperation", message, details)
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
