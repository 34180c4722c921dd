package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vishav1771/signac-flow/internal/workflow"
)

// Common errors
var (
	// ErrUnknownPartition indicates a partition name the environment does not define
	ErrUnknownPartition = errors.New("unknown partition")

	// ErrEmptyBundle indicates a bundle without any (operation, job) pair
	ErrEmptyBundle = errors.New("bundle has no operations")

	// ErrBundlingUnsupported indicates a multi-operation bundle on an environment that cannot bundle
	ErrBundlingUnsupported = errors.New("environment does not support bundling")

	// ErrSchedulerNotFound indicates the submission binary was not found
	ErrSchedulerNotFound = errors.New("scheduler binary not found in PATH")

	// ErrJobIDParseFailed indicates parsing job ID from output failed
	ErrJobIDParseFailed = errors.New("failed to parse job ID from scheduler output")

	// ErrNoSubmission indicates a live submission on an environment without a scheduler
	ErrNoSubmission = errors.New("environment has no scheduler to submit to")
)

// PartitionMismatchError reports a launch mode that the partition cannot host:
// a GPU mode on a CPU partition, or a non-GPU mode on a GPU-only partition.
type PartitionMismatchError struct {
	Environment  string              // Environment name
	Partition    string              // Requested partition
	Mode         workflow.LaunchMode // Launch mode of the bundle
	GPUPartition bool                // Whether the partition is GPU-only
}

func (e *PartitionMismatchError) Error() string {
	if e.GPUPartition {
		return fmt.Sprintf("partition %s on %s is GPU-only but the %s launch mode requests no GPUs",
			e.Partition, e.Environment, e.Mode)
	}
	return fmt.Sprintf("partition %s on %s has no GPUs but the %s launch mode requires them",
		e.Partition, e.Environment, e.Mode)
}

// Is allows errors.Is to match any PartitionMismatchError
func (e *PartitionMismatchError) Is(target error) bool {
	_, ok := target.(*PartitionMismatchError)
	return ok
}

// NodeCountError reports a requested or estimated node count outside a partition's bounds
type NodeCountError struct {
	Partition string // Partition where the bounds apply
	Requested int    // Requested node count
	Min       int    // Minimum nodes
	Max       int    // Maximum nodes (0 = unbounded)
}

func (e *NodeCountError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("node count %d out of range [%d, %d] for partition %s",
			e.Requested, e.Min, e.Max, e.Partition)
	}
	return fmt.Sprintf("node count %d below minimum %d for partition %s",
		e.Requested, e.Min, e.Partition)
}

// Is allows errors.Is to match any NodeCountError
func (e *NodeCountError) Is(target error) bool {
	_, ok := target.(*NodeCountError)
	return ok
}

// MixedEnvironmentError reports a bundle whose members target more than one environment.
// It is a construction bug in the caller and is never retried.
type MixedEnvironmentError struct {
	Bundle       string   // Canonical bundle name
	Environments []string // Distinct environment names, in member order
}

func (e *MixedEnvironmentError) Error() string {
	return fmt.Sprintf("bundle %s spans multiple environments: %s",
		e.Bundle, strings.Join(e.Environments, ", "))
}

// Is allows errors.Is to match any MixedEnvironmentError
func (e *MixedEnvironmentError) Is(target error) bool {
	_, ok := target.(*MixedEnvironmentError)
	return ok
}

// UnknownEnvironmentError reports a cluster name with no registered environment
type UnknownEnvironmentError struct {
	Name  string   // Requested environment name
	Known []string // Registered environment names
}

func (e *UnknownEnvironmentError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown environment %q", e.Name)
	}
	return fmt.Sprintf("unknown environment %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is allows errors.Is to match any UnknownEnvironmentError
func (e *UnknownEnvironmentError) Is(target error) bool {
	_, ok := target.(*UnknownEnvironmentError)
	return ok
}

// SubmissionError represents an error during job submission
type SubmissionError struct {
	Scheduler string // Scheduler name
	JobName   string // Job name
	Output    string // Scheduler output
	Err       error  // Underlying error
}

func (e *SubmissionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s submission failed for job %s: %v\nOutput: %s",
			e.Scheduler, e.JobName, e.Err, e.Output)
	}
	return fmt.Sprintf("%s submission failed for job %s: %v",
		e.Scheduler, e.JobName, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewPartitionMismatchError creates a new PartitionMismatchError
func NewPartitionMismatchError(env string, partition PartitionSpec, mode workflow.LaunchMode) *PartitionMismatchError {
	return &PartitionMismatchError{
		Environment:  env,
		Partition:    partition.Name,
		Mode:         mode,
		GPUPartition: partition.GPUOnly,
	}
}

// NewNodeCountError creates a new NodeCountError
func NewNodeCountError(partition PartitionSpec, requested int) *NodeCountError {
	return &NodeCountError{
		Partition: partition.Name,
		Requested: requested,
		Min:       partition.MinNodes,
		Max:       partition.MaxNodes,
	}
}

// NewSubmissionError creates a new SubmissionError
func NewSubmissionError(scheduler string, jobName string, output string, err error) *SubmissionError {
	return &SubmissionError{
		Scheduler: scheduler,
		JobName:   jobName,
		Output:    output,
		Err:       err,
	}
}

// IsPartitionMismatch checks if an error is a PartitionMismatchError
func IsPartitionMismatch(err error) bool {
	var pe *PartitionMismatchError
	return errors.As(err, &pe)
}

// IsNodeCountOutOfRange checks if an error is a NodeCountError
func IsNodeCountOutOfRange(err error) bool {
	var ne *NodeCountError
	return errors.As(err, &ne)
}

// IsMixedEnvironment checks if an error is a MixedEnvironmentError
func IsMixedEnvironment(err error) bool {
	var me *MixedEnvironmentError
	return errors.As(err, &me)
}

// IsUnknownEnvironment checks if an error is an UnknownEnvironmentError
func IsUnknownEnvironment(err error) bool {
	var ue *UnknownEnvironmentError
	return errors.As(err, &ue)
}

// IsSubmissionError checks if an error is a SubmissionError
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}
