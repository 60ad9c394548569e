package selection

import (
	"errors"
	"fmt"
)

// RequestError rejects a creation request before any write.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicateSelectionError signals the driver already has a selection that is
// not completed.
type DuplicateSelectionError struct {
	SelectionID string
}

func (e *DuplicateSelectionError) Error() string {
	return fmt.Sprintf("driver already has an open plan selection %s", e.SelectionID)
}

// IsRequest reports whether err is a RequestError.
func IsRequest(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsDuplicate reports whether err is a DuplicateSelectionError.
func IsDuplicate(err error) bool {
	var de *DuplicateSelectionError
	return errors.As(err, &de)
}
