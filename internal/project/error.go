package project

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProject indicates a malformed project file
	ErrInvalidProject = errors.New("invalid project file")

	// ErrUnsupportedSchema indicates a schema version this build cannot read
	ErrUnsupportedSchema = errors.New("unsupported project schema")
)

// DuplicateOperationError reports two operations with the same name
type DuplicateOperationError struct {
	Name string
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("duplicate operation %q", e.Name)
}

func (e *DuplicateOperationError) Unwrap() error {
	return ErrInvalidProject
}

// DuplicateJobError reports two jobs with the same state-point
type DuplicateJobError struct {
	ID string
}

func (e *DuplicateJobError) Error() string {
	return fmt.Sprintf("duplicate job %s", e.ID)
}

func (e *DuplicateJobError) Unwrap() error {
	return ErrInvalidProject
}

// IsDuplicateOperation checks if an error is a DuplicateOperationError
func IsDuplicateOperation(err error) bool {
	var de *DuplicateOperationError
	return errors.As(err, &de)
}
