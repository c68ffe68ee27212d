package services

import "fmt"

// ValidationError reports a missing or malformed request field. Field is the
// JSON path of the offending value, e.g. "products[1].quantity".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced record that does not exist. Field is set
// when the reference came from a request body.
type NotFoundError struct {
	Resource string
	ID       uint
	Field    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
