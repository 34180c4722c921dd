// Package scheduler models HPC clusters and turns bundles of operations into
// scheduler-native batch scripts.
package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/vishav1771/signac-flow/internal/workflow"
)

// SchedulerType represents the type of job scheduler
type SchedulerType string

const (
	SchedulerUnknown SchedulerType = ""
	SchedulerSLURM   SchedulerType = "SLURM"
	SchedulerPBS     SchedulerType = "PBS"
)

// ParseSchedulerType maps a configuration string to a SchedulerType.
// Anything that is not SLURM or PBS is SchedulerUnknown.
func ParseSchedulerType(s string) SchedulerType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SLURM":
		return SchedulerSLURM
	case "PBS", "TORQUE":
		return SchedulerPBS
	default:
		return SchedulerUnknown
	}
}

func (t SchedulerType) String() string {
	if t == SchedulerUnknown {
		return "Unknown"
	}
	return string(t)
}

// PartitionSpec holds the constraints of one partition/queue
type PartitionSpec struct {
	Name         string `mapstructure:"name"`
	MinNodes     int    `mapstructure:"min_nodes"`      // Minimum nodes per job
	MaxNodes     int    `mapstructure:"max_nodes"`      // Maximum nodes per job (0 = unbounded)
	GPUOnly      bool   `mapstructure:"gpu"`            // GPU partition; non-GPU jobs are rejected
	CoresPerNode int    `mapstructure:"cores_per_node"` // Used for node estimates (0 = unknown)
}

// acceptsNodes reports whether n lies within the partition bounds.
func (p PartitionSpec) acceptsNodes(n int) bool {
	if n < p.MinNodes {
		return false
	}
	return p.MaxNodes <= 0 || n <= p.MaxNodes
}

// Environment describes one target cluster
type Environment struct {
	Name             string
	Scheduler        SchedulerType
	Partitions       []PartitionSpec // Ordered; the first compatible one is the default
	DefaultWalltime  *time.Duration  // nil = no walltime line unless requested
	SupportsBundling bool            // Whether several operations may share one script
	MaxJobNameLength int             // 0 = unlimited
	CoresPerNode     int             // Node estimate fallback when partitions are not declared
	MPILauncher      string          // Prefix for MPI invocations; "{np}" is replaced by the rank count
	Description      string
}

// Classify maps a directive to its launch mode on this environment.
func (e *Environment) Classify(d workflow.ResourceDirective) workflow.LaunchMode {
	return workflow.Classify(d)
}

// Partition looks up a partition by name (case-sensitive, as schedulers are).
func (e *Environment) Partition(name string) (PartitionSpec, bool) {
	for _, p := range e.Partitions {
		if p.Name == name {
			return p, true
		}
	}
	return PartitionSpec{}, false
}

// PartitionNames returns the partition names in declaration order.
func (e *Environment) PartitionNames() []string {
	names := make([]string, 0, len(e.Partitions))
	for _, p := range e.Partitions {
		names = append(names, p.Name)
	}
	return names
}

// DefaultPartition returns the first partition whose GPU capability matches the mode.
// Returns false when the environment declares no compatible partition.
func (e *Environment) DefaultPartition(mode workflow.LaunchMode) (PartitionSpec, bool) {
	for _, p := range e.Partitions {
		if p.GPUOnly == mode.UsesGPU() {
			return p, true
		}
	}
	return PartitionSpec{}, false
}

// ValidatePartition checks that the partition can host the launch mode and,
// when nodes is set, that the explicit node count is within bounds.
// GPU capability is checked in both directions.
func (e *Environment) ValidatePartition(partition string, mode workflow.LaunchMode, nodes *int) error {
	p, ok := e.Partition(partition)
	if !ok {
		return fmt.Errorf("%w: %s (environment %s has: %s)",
			ErrUnknownPartition, partition, e.Name, strings.Join(e.PartitionNames(), ", "))
	}
	if p.GPUOnly != mode.UsesGPU() {
		return NewPartitionMismatchError(e.Name, p, mode)
	}
	if nodes != nil && !p.acceptsNodes(*nodes) {
		return NewNodeCountError(p, *nodes)
	}
	return nil
}

// estimateNodes derives a node count from the task geometry.
// Returns nil when the cores per node are unknown, leaving the choice to the scheduler.
func (e *Environment) estimateNodes(p *PartitionSpec, tasks, threads int) *int {
	cores := e.CoresPerNode
	minNodes := 0
	if p != nil {
		if p.CoresPerNode > 0 {
			cores = p.CoresPerNode
		}
		minNodes = p.MinNodes
	}
	if cores <= 0 || tasks <= 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}
	n := (tasks*threads + cores - 1) / cores
	if n < minNodes {
		n = minNodes
	}
	return &n
}

// mpiPrefix returns the launcher prefix for a member with the given rank count.
func (e *Environment) mpiPrefix(ranks int) string {
	launcher := e.MPILauncher
	if launcher == "" {
		launcher = "mpiexec -n {np}"
	}
	return strings.ReplaceAll(launcher, "{np}", fmt.Sprint(ranks))
}
