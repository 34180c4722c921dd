package golden

import (
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/workflow"
)

// ProjectName is the project name used for every reference script.
const ProjectName = "SubmissionTest"

// ranks is the resource count every reference operation asks for.
const ranks = 2

// Case is one environment with one parameter combination.
type Case struct {
	Environment string
	Params      Params
}

// Operations returns the reference operations, one per launch mode.
func Operations() []workflow.Operation {
	op := func(name string, d workflow.ResourceDirective) workflow.Operation {
		return workflow.Operation{Name: name, Command: "python ops.py " + name + " {{.ID}}", Directive: d}
	}
	return []workflow.Operation{
		op("serial_op", workflow.ResourceDirective{}),
		op("parallel_op", workflow.ResourceDirective{Processes: ranks}),
		op("mpi_op", workflow.ResourceDirective{Ranks: ranks}),
		op("omp_op", workflow.ResourceDirective{ThreadsPerRank: ranks}),
		op("hybrid_op", workflow.ResourceDirective{Ranks: ranks, ThreadsPerRank: ranks}),
		op("gpu_op", workflow.ResourceDirective{GPUs: ranks}),
		op("mpi_gpu_op", workflow.ResourceDirective{Ranks: ranks, GPUs: ranks}),
	}
}

// parameterSets lists, per environment, the parameter axes tested together.
// Each entry is expanded with Product.
var parameterSets = []struct {
	env  string
	sets []map[string][]any
}{
	{scheduler.EnvLocal, nil},
	{scheduler.EnvComet, []map[string][]any{
		{"partition": {"compute", "shared", "gpu"}, "walltime": {nil, 1}},
		{"partition": {"compute"}, "nn": {nil, 1, 2}},
		{"partition": {"compute"}, "parallel": {false, true}, "bundle": {[]string{"mpi_op", "omp_op"}}},
	}},
	{scheduler.EnvStampede2, []map[string][]any{
		{"partition": {"skx-normal"}, "walltime": {nil, 1}},
		{"partition": {"skx-normal"}, "nn": {nil, 1, 2}},
		{"partition": {"skx-normal"}, "parallel": {false, true}, "bundle": {[]string{"mpi_op", "omp_op"}}},
	}},
	{scheduler.EnvBridges, []map[string][]any{
		{"partition": {"RM", "RM-Shared", "GPU"}, "walltime": {nil, 1}},
		{"partition": {"RM"}, "nn": {nil, 1, 2}},
		{"partition": {"RM"}, "parallel": {false, true}, "bundle": {[]string{"mpi_op", "omp_op"}}},
	}},
	{scheduler.EnvFlux, unpartitionedSets()},
	{scheduler.EnvTitan, unpartitionedSets()},
	{scheduler.EnvEos, unpartitionedSets()},
}

func unpartitionedSets() []map[string][]any {
	return []map[string][]any{
		{"walltime": {nil, 1}},
		{"nn": {nil, 1, 2}},
		{"parallel": {false, true}, "bundle": {[]string{"mpi_op", "omp_op"}}},
	}
}

// Cases expands the built-in parameter table.
func Cases() []Case {
	var cases []Case
	for _, ps := range parameterSets {
		for _, axes := range ps.sets {
			for p := range Product(axes).All() {
				cases = append(cases, Case{Environment: ps.env, Params: p})
			}
		}
	}
	return cases
}
