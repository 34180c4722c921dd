// Package workflow holds the domain types shared by the submission layer:
// jobs, operations, resource directives and launch modes.
package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidDirective indicates a resource directive with out-of-range values
var ErrInvalidDirective = errors.New("invalid resource directive")

// ResourceDirective holds the resources one operation asks for.
// The zero value is a single serial process.
type ResourceDirective struct {
	Processes      int `yaml:"np"`              // Plain processes (>=1, default 1)
	Ranks          int `yaml:"nranks"`          // MPI ranks (0 = no MPI)
	ThreadsPerRank int `yaml:"omp_num_threads"` // OpenMP threads per rank (default 1)
	GPUs           int `yaml:"ngpu"`            // GPUs (0 = none)
}

// Normalize returns a copy with defaults applied (Processes and ThreadsPerRank at least 1).
func (d ResourceDirective) Normalize() ResourceDirective {
	if d.Processes < 1 {
		d.Processes = 1
	}
	if d.ThreadsPerRank < 1 {
		d.ThreadsPerRank = 1
	}
	return d
}

// Validate rejects negative counts.
func (d ResourceDirective) Validate() error {
	switch {
	case d.Processes < 0:
		return fmt.Errorf("%w: np=%d", ErrInvalidDirective, d.Processes)
	case d.Ranks < 0:
		return fmt.Errorf("%w: nranks=%d", ErrInvalidDirective, d.Ranks)
	case d.ThreadsPerRank < 0:
		return fmt.Errorf("%w: omp_num_threads=%d", ErrInvalidDirective, d.ThreadsPerRank)
	case d.GPUs < 0:
		return fmt.Errorf("%w: ngpu=%d", ErrInvalidDirective, d.GPUs)
	}
	return nil
}

// Tasks is the number of scheduler tasks the directive occupies: ranks when
// MPI is requested, plain processes otherwise.
func (d ResourceDirective) Tasks() int {
	d = d.Normalize()
	if d.Ranks > 0 {
		return d.Ranks
	}
	return d.Processes
}

// LaunchMode is the execution paradigm implied by a directive.
type LaunchMode int

const (
	Serial LaunchMode = iota
	Parallel
	MPI
	OpenMP
	Hybrid
	GPU
	MPIGPU
)

var launchModeNames = map[LaunchMode]string{
	Serial:   "serial",
	Parallel: "parallel",
	MPI:      "mpi",
	OpenMP:   "openmp",
	Hybrid:   "hybrid",
	GPU:      "gpu",
	MPIGPU:   "mpi+gpu",
}

func (m LaunchMode) String() string {
	if name, ok := launchModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("LaunchMode(%d)", int(m))
}

// UsesGPU reports whether the mode needs a GPU partition.
func (m LaunchMode) UsesGPU() bool {
	return m == GPU || m == MPIGPU
}

// UsesMPI reports whether the mode launches MPI ranks.
func (m LaunchMode) UsesMPI() bool {
	return m == MPI || m == Hybrid || m == MPIGPU
}

// Classify maps a directive to its launch mode. The checks run from the
// most to the least specific request, so every directive has exactly one mode.
func Classify(d ResourceDirective) LaunchMode {
	d = d.Normalize()
	switch {
	case d.GPUs > 0 && d.Ranks > 0:
		return MPIGPU
	case d.GPUs > 0:
		return GPU
	case d.Ranks > 0 && d.ThreadsPerRank > 1:
		return Hybrid
	case d.Ranks > 0:
		return MPI
	case d.ThreadsPerRank > 1:
		return OpenMP
	case d.Processes > 1:
		return Parallel
	default:
		return Serial
	}
}
