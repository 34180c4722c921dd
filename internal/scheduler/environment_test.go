package scheduler

import (
	"errors"
	"testing"

	"github.com/vishav1771/signac-flow/internal/workflow"
)

func TestValidatePartitionGPUSymmetry(t *testing.T) {
	env := newTestEnvironment()

	tests := []struct {
		name      string
		partition string
		mode      workflow.LaunchMode
		wantErr   bool
	}{
		{"cpu mode on cpu partition", "cpu", workflow.MPI, false},
		{"gpu mode on gpu partition", "gpu", workflow.GPU, false},
		{"mpi+gpu on gpu partition", "gpu", workflow.MPIGPU, false},
		{"gpu mode on cpu partition", "cpu", workflow.GPU, true},
		{"mpi+gpu on cpu partition", "cpu", workflow.MPIGPU, true},
		{"serial on gpu partition", "gpu", workflow.Serial, true},
		{"hybrid on gpu partition", "gpu", workflow.Hybrid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.ValidatePartition(tt.partition, tt.mode, nil)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !IsPartitionMismatch(err) {
				t.Fatalf("expected PartitionMismatchError, got %v", err)
			}
			if !errors.Is(err, &PartitionMismatchError{}) {
				t.Error("errors.Is should match PartitionMismatchError")
			}
		})
	}
}

func TestValidatePartitionNodeCount(t *testing.T) {
	env := newTestEnvironment()

	tests := []struct {
		nodes   int
		wantErr bool
	}{
		{1, false},
		{4, false},
		{0, true},
		{5, true},
	}

	for _, tt := range tests {
		err := env.ValidatePartition("cpu", workflow.Serial, intPtr(tt.nodes))
		if tt.wantErr != IsNodeCountOutOfRange(err) {
			t.Errorf("nodes=%d: err = %v; wantErr %v", tt.nodes, err, tt.wantErr)
		}
	}

	// Unbounded partition accepts any count above the minimum
	env.Partitions = append(env.Partitions, PartitionSpec{Name: "big", MinNodes: 2})
	if err := env.ValidatePartition("big", workflow.MPI, intPtr(1000)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := env.ValidatePartition("big", workflow.MPI, intPtr(1)); !IsNodeCountOutOfRange(err) {
		t.Errorf("expected NodeCountError, got %v", err)
	}
}

func TestValidatePartitionUnknown(t *testing.T) {
	env := newTestEnvironment()
	err := env.ValidatePartition("debug", workflow.Serial, nil)
	if !errors.Is(err, ErrUnknownPartition) {
		t.Errorf("expected ErrUnknownPartition, got %v", err)
	}
}

func TestDefaultPartition(t *testing.T) {
	env := newTestEnvironment()
	if p, ok := env.DefaultPartition(workflow.Serial); !ok || p.Name != "cpu" {
		t.Errorf("DefaultPartition(serial) = %q, %v; want cpu", p.Name, ok)
	}
	if p, ok := env.DefaultPartition(workflow.MPIGPU); !ok || p.Name != "gpu" {
		t.Errorf("DefaultPartition(mpi+gpu) = %q, %v; want gpu", p.Name, ok)
	}
	empty := &Environment{Name: "bare"}
	if _, ok := empty.DefaultPartition(workflow.Serial); ok {
		t.Error("environment without partitions should have no default")
	}
}

func TestEstimateNodes(t *testing.T) {
	env := &Environment{Name: "est", CoresPerNode: 16}
	p := &PartitionSpec{Name: "wide", MinNodes: 2, CoresPerNode: 8}

	tests := []struct {
		name      string
		partition *PartitionSpec
		tasks     int
		threads   int
		want      *int
	}{
		{"env cores", nil, 20, 1, intPtr(2)},
		{"env cores with threads", nil, 4, 4, intPtr(1)},
		{"partition cores", p, 20, 1, intPtr(3)},
		{"partition minimum", p, 1, 1, intPtr(2)},
		{"no tasks", nil, 0, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.estimateNodes(tt.partition, tt.tasks, tt.threads)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("estimateNodes() = %d; want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("estimateNodes() = nil; want %d", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("estimateNodes() = %d; want %d", *got, *tt.want)
			}
		})
	}

	unknown := &Environment{Name: "nocores"}
	if got := unknown.estimateNodes(nil, 64, 1); got != nil {
		t.Errorf("unknown cores should leave nodes unset, got %d", *got)
	}
}

func TestParseSchedulerType(t *testing.T) {
	tests := map[string]SchedulerType{
		"slurm":  SchedulerSLURM,
		" PBS ":  SchedulerPBS,
		"torque": SchedulerPBS,
		"lsf":    SchedulerUnknown,
		"":       SchedulerUnknown,
	}
	for in, want := range tests {
		if got := ParseSchedulerType(in); got != want {
			t.Errorf("ParseSchedulerType(%q) = %q; want %q", in, got, want)
		}
	}
	if SchedulerUnknown.String() != "Unknown" {
		t.Errorf("SchedulerUnknown.String() = %q", SchedulerUnknown.String())
	}
}

func TestMPIPrefix(t *testing.T) {
	env := &Environment{MPILauncher: "aprun -n {np}"}
	if got := env.mpiPrefix(4); got != "aprun -n 4" {
		t.Errorf("mpiPrefix(4) = %q", got)
	}
	env.MPILauncher = ""
	if got := env.mpiPrefix(2); got != "mpiexec -n 2" {
		t.Errorf("default mpiPrefix(2) = %q", got)
	}
}
