package state

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by state mutations.
var (
	ErrListNotFound   = errors.New("list not found")
	ErrFieldNotFound  = errors.New("field not found")
	ErrSchemaNotFound = errors.New("schema not found")
	ErrLastSchema     = errors.New("at least one schema must remain")
	ErrEmptyName      = errors.New("schema name is empty")
	ErrInvalidType    = errors.New("invalid field type")
)

// MsgInvalidJSON is the user-facing message for a rejected import.
const MsgInvalidJSON = "Некоректний формат JSON"

// ImportError reports a blob that cannot be imported at all.
// Nothing from the blob has been applied when it is returned.
type ImportError struct {
	// Message is shown to the user.
	Message string

	// Path locates the offending value when known (e.g. "lists").
	Path string

	// Err is the underlying decode or validation error.
	Err error
}

func (e *ImportError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsImportError returns true if err is or wraps an ImportError.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}
