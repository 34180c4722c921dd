// Package submit turns a selection of operations and jobs into rendered
// batch scripts and, outside pretend mode, hands them to the scheduler.
package submit

import (
	"slices"
	"time"

	"github.com/vishav1771/signac-flow/internal/project"
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/workflow"
)

// Request is one operation to run on one job.
type Request struct {
	Operation workflow.Operation
	Job       workflow.Job
}

// Options are the per-submission settings copied onto every bundle.
type Options struct {
	Project   string
	Partition string
	Walltime  *time.Duration
	Nodes     *int
	Parallel  bool
	Pretend   bool
	Force     bool
}

// BuildBundles groups requests into bundles of at most bundleSize pairs.
// A bundleSize of 0 (or one at least len(requested)) puts everything in a
// single bundle. Input order is preserved.
func BuildBundles(env *scheduler.Environment, requested []Request, bundleSize int, opts Options) []*scheduler.Bundle {
	if len(requested) == 0 {
		return nil
	}
	if bundleSize <= 0 || bundleSize > len(requested) {
		bundleSize = len(requested)
	}

	bundles := make([]*scheduler.Bundle, 0, (len(requested)+bundleSize-1)/bundleSize)
	for group := range slices.Chunk(requested, bundleSize) {
		b := &scheduler.Bundle{
			Project:   opts.Project,
			Partition: opts.Partition,
			Walltime:  opts.Walltime,
			Nodes:     opts.Nodes,
			Parallel:  opts.Parallel,
			Pretend:   opts.Pretend,
			Force:     opts.Force,
		}
		for _, r := range group {
			b.Pairs = append(b.Pairs, scheduler.Pair{Operation: r.Operation, Job: r.Job, Environment: env})
		}
		bundles = append(bundles, b)
	}
	return bundles
}

// Select resolves operation names and job ID prefixes against the project.
// Empty lists select every operation or every job. The result is job-major:
// all requested operations of the first job, then of the second, and so on.
func Select(p *project.Project, opNames []string, jobPrefixes []string) ([]Request, error) {
	var ops []workflow.Operation
	if len(opNames) == 0 {
		ops = p.Operations
	}
	for _, name := range opNames {
		op, ok := p.Operation(name)
		if !ok {
			return nil, &UnknownOperationError{Name: name, Known: p.OperationNames()}
		}
		if !slices.ContainsFunc(ops, func(o workflow.Operation) bool { return o.Name == op.Name }) {
			ops = append(ops, op)
		}
	}

	var jobs []workflow.Job
	if len(jobPrefixes) == 0 {
		jobs = p.Jobs
	}
	seen := make(map[string]bool)
	for _, prefix := range jobPrefixes {
		matches := p.JobsWithPrefix(prefix)
		switch {
		case len(matches) == 0:
			return nil, &UnknownJobError{Prefix: prefix}
		case len(matches) > 1:
			ids := make([]string, 0, len(matches))
			for _, j := range matches {
				ids = append(ids, j.ID())
			}
			return nil, &AmbiguousJobError{Prefix: prefix, Matches: ids}
		}
		if job := matches[0]; !seen[job.ID()] {
			seen[job.ID()] = true
			jobs = append(jobs, job)
		}
	}

	requests := make([]Request, 0, len(ops)*len(jobs))
	for _, job := range jobs {
		for _, op := range ops {
			requests = append(requests, Request{Operation: op, Job: job})
		}
	}
	return requests, nil
}
