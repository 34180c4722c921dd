package scheduler

import (
	"fmt"
	"slices"
	"time"

	"github.com/vishav1771/signac-flow/internal/workflow"
)

// AggregatedDirective holds the bundle-wide totals a scheduler header needs.
// Nil pointers and empty strings are omitted from the header.
type AggregatedDirective struct {
	Mode              workflow.LaunchMode
	Processes         int            // Sum over members when parallel, max otherwise
	TotalRanks        int            // Sum of MPI ranks
	MaxThreadsPerRank int            // Max OpenMP threads per rank (>=1)
	TotalGPUs         int            // Sum of GPUs
	Partition         string         // Resolved partition ("" = none)
	Nodes             *int           // Requested or estimated node count
	Walltime          *time.Duration // Requested or default walltime
}

// Directive returns the totals as a single resource directive.
func (a *AggregatedDirective) Directive() workflow.ResourceDirective {
	return workflow.ResourceDirective{
		Processes:      a.Processes,
		Ranks:          a.TotalRanks,
		ThreadsPerRank: a.MaxThreadsPerRank,
		GPUs:           a.TotalGPUs,
	}
}

// TaskCount is the rank/process count of the header: total ranks when MPI is
// used, the process count when more than one process runs, 0 otherwise.
func (a *AggregatedDirective) TaskCount() int {
	if a.TotalRanks > 0 {
		return a.TotalRanks
	}
	if a.Processes > 1 {
		return a.Processes
	}
	return 0
}

// Aggregate combines the directives of the bundle's members and checks them
// against the environment. It depends only on the bundle, so identical
// bundles always aggregate identically.
func Aggregate(b *Bundle) (*AggregatedDirective, error) {
	if len(b.Pairs) == 0 {
		return nil, ErrEmptyBundle
	}
	env, err := bundleEnvironment(b)
	if err != nil {
		return nil, err
	}
	if len(b.Pairs) > 1 && !env.SupportsBundling {
		return nil, fmt.Errorf("%w: %s", ErrBundlingUnsupported, env.Name)
	}

	agg := &AggregatedDirective{MaxThreadsPerRank: 1}
	for _, p := range b.Pairs {
		if err := p.Operation.Directive.Validate(); err != nil {
			return nil, fmt.Errorf("operation %s: %w", p.Operation.Name, err)
		}
		d := p.Operation.Directive.Normalize()
		agg.TotalRanks += d.Ranks
		agg.TotalGPUs += d.GPUs
		agg.MaxThreadsPerRank = max(agg.MaxThreadsPerRank, d.ThreadsPerRank)
		if b.Parallel {
			agg.Processes += d.Processes
		} else {
			agg.Processes = max(agg.Processes, d.Processes)
		}
	}
	agg.Mode = env.Classify(agg.Directive())

	var partition *PartitionSpec
	switch {
	case b.Partition != "":
		if err := env.ValidatePartition(b.Partition, agg.Mode, b.Nodes); err != nil {
			return nil, err
		}
		p, _ := env.Partition(b.Partition)
		partition = &p
	case len(env.Partitions) > 0:
		p, ok := env.DefaultPartition(agg.Mode)
		if !ok {
			return nil, fmt.Errorf("%w: no partition of %s accepts the %s launch mode",
				ErrUnknownPartition, env.Name, agg.Mode)
		}
		if err := env.ValidatePartition(p.Name, agg.Mode, b.Nodes); err != nil {
			return nil, err
		}
		partition = &p
	}
	if partition != nil {
		agg.Partition = partition.Name
	}

	if b.Nodes != nil {
		n := *b.Nodes
		agg.Nodes = &n
	} else {
		tasks := agg.TotalRanks
		if tasks == 0 {
			tasks = agg.Processes
		}
		agg.Nodes = env.estimateNodes(partition, tasks, agg.MaxThreadsPerRank)
		if partition != nil && agg.Nodes != nil && !partition.acceptsNodes(*agg.Nodes) {
			return nil, NewNodeCountError(*partition, *agg.Nodes)
		}
	}

	switch {
	case b.Walltime != nil:
		w := *b.Walltime
		agg.Walltime = &w
	case env.DefaultWalltime != nil:
		w := *env.DefaultWalltime
		agg.Walltime = &w
	}

	return agg, nil
}

// bundleEnvironment returns the environment shared by all members.
func bundleEnvironment(b *Bundle) (*Environment, error) {
	env := b.Pairs[0].Environment
	var names []string
	for _, p := range b.Pairs {
		if p.Environment == nil {
			return nil, fmt.Errorf("operation %s on job %s has no environment", p.Operation.Name, p.Job.ID())
		}
		if !slices.Contains(names, p.Environment.Name) {
			names = append(names, p.Environment.Name)
		}
	}
	if len(names) > 1 {
		return nil, &MixedEnvironmentError{Bundle: b.CanonicalName(), Environments: names}
	}
	return env, nil
}
