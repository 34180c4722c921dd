package scheduler

import (
	"testing"
	"time"

	"github.com/vishav1771/signac-flow/internal/workflow"
)

// newTestEnvironment creates a small SLURM cluster with one CPU partition
// (up to 4 nodes) and one GPU partition.
func newTestEnvironment() *Environment {
	return &Environment{
		Name:      "testcluster",
		Scheduler: SchedulerSLURM,
		Partitions: []PartitionSpec{
			{Name: "cpu", MinNodes: 1, MaxNodes: 4},
			{Name: "gpu", MinNodes: 1, MaxNodes: 2, GPUOnly: true},
		},
		SupportsBundling: true,
	}
}

var testOperations = map[string]workflow.Operation{
	"serial_op":   {Name: "serial_op", Command: "python ops.py serial_op {{.ID}}"},
	"parallel_op": {Name: "parallel_op", Command: "python ops.py parallel_op {{.ID}}", Directive: workflow.ResourceDirective{Processes: 2}},
	"mpi_op":      {Name: "mpi_op", Command: "python ops.py mpi_op {{.ID}}", Directive: workflow.ResourceDirective{Ranks: 2}},
	"omp_op":      {Name: "omp_op", Command: "python ops.py omp_op {{.ID}}", Directive: workflow.ResourceDirective{ThreadsPerRank: 2}},
	"hybrid_op":   {Name: "hybrid_op", Command: "python ops.py hybrid_op {{.ID}}", Directive: workflow.ResourceDirective{Ranks: 2, ThreadsPerRank: 2}},
	"gpu_op":      {Name: "gpu_op", Command: "python ops.py gpu_op {{.ID}}", Directive: workflow.ResourceDirective{GPUs: 2}},
	"mpi_gpu_op":  {Name: "mpi_gpu_op", Command: "python ops.py mpi_gpu_op {{.ID}}", Directive: workflow.ResourceDirective{Ranks: 2, GPUs: 2}},
}

func testJob(t *testing.T, i int) workflow.Job {
	t.Helper()
	job, err := workflow.NewJob(map[string]any{"i": i})
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	return job
}

// newTestBundle binds the named operations to job 0 on env.
func newTestBundle(t *testing.T, env *Environment, ops ...string) *Bundle {
	t.Helper()
	job := testJob(t, 0)
	b := &Bundle{Project: "SubmissionTest"}
	for _, name := range ops {
		op, ok := testOperations[name]
		if !ok {
			t.Fatalf("unknown test operation %s", name)
		}
		b.Pairs = append(b.Pairs, Pair{Operation: op, Job: job, Environment: env})
	}
	return b
}

func intPtr(n int) *int { return &n }

func durationPtr(d time.Duration) *time.Duration { return &d }
