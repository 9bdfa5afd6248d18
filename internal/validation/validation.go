// Package validation carries structured field-level validation results
// across domain boundaries.
package validation

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error aggregates field errors for one request.
type Error struct {
	Fields []FieldError `json:"errors"`
}

func (e *Error) Error() string { return "validation error" }

// Add appends a field error and returns the receiver for chaining.
func (e *Error) Add(field, code, message string) *Error {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
	return e
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
