package submit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrScriptExists indicates a script artifact that would be replaced without --force
	ErrScriptExists = errors.New("script already exists")

	// ErrNothingToSubmit indicates an empty selection
	ErrNothingToSubmit = errors.New("no operations selected")
)

// UnknownOperationError reports an operation name the project does not define
type UnknownOperationError struct {
	Name  string
	Known []string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// UnknownJobError reports a job ID prefix that matches no job
type UnknownJobError struct {
	Prefix string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("no job matches %q", e.Prefix)
}

// AmbiguousJobError reports a job ID prefix that matches several jobs
type AmbiguousJobError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousJobError) Error() string {
	return fmt.Sprintf("job prefix %q is ambiguous (%d matches)", e.Prefix, len(e.Matches))
}

// IsUnknownOperation checks if an error is an UnknownOperationError
func IsUnknownOperation(err error) bool {
	var ue *UnknownOperationError
	return errors.As(err, &ue)
}

// IsUnknownJob checks if an error is an UnknownJobError
func IsUnknownJob(err error) bool {
	var ue *UnknownJobError
	return errors.As(err, &ue)
}

// IsAmbiguousJob checks if an error is an AmbiguousJobError
func IsAmbiguousJob(err error) bool {
	var ae *AmbiguousJobError
	return errors.As(err, &ae)
}
