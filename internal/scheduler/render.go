package scheduler

import (
	"bytes"
	"fmt"
)

// Script is a rendered batch script.
type Script struct {
	Name      string // Scheduler job name (DisplayName of the bundle)
	FileName  string // Suggested artifact name
	Scheduler SchedulerType
	Text      string
}

// Render produces the batch script of a bundle from its aggregated directive.
// Every member command is rendered before anything is returned, so a failure
// never yields a partial script.
func Render(b *Bundle, agg *AggregatedDirective) (*Script, error) {
	if len(b.Pairs) == 0 {
		return nil, ErrEmptyBundle
	}
	env, err := bundleEnvironment(b)
	if err != nil {
		return nil, err
	}

	commands := make([]string, 0, len(b.Pairs))
	for _, p := range b.Pairs {
		cmd, err := p.Operation.RenderCommand(p.Job)
		if err != nil {
			return nil, err
		}
		if ranks := p.Operation.Directive.Ranks; ranks > 0 {
			cmd = env.mpiPrefix(ranks) + " " + cmd
		}
		if b.Parallel {
			cmd += " &"
		}
		commands = append(commands, cmd)
	}

	d := dialectFor(env.Scheduler)
	name := b.DisplayName()

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "#!/bin/bash")
	d.writeHeader(&buf, name, agg)
	writeEnvVars(&buf, agg)
	fmt.Fprintln(&buf, "")
	for _, cmd := range commands {
		fmt.Fprintln(&buf, cmd)
	}
	if b.Parallel {
		fmt.Fprintln(&buf, "wait")
	}

	return &Script{
		Name:      name,
		FileName:  b.ScriptName(),
		Scheduler: env.Scheduler,
		Text:      buf.String(),
	}, nil
}

// writeEnvVars writes the runtime exports the launch mode needs.
// The OpenMP thread count is always an export, never a header flag.
func writeEnvVars(buf *bytes.Buffer, agg *AggregatedDirective) {
	if agg.MaxThreadsPerRank > 1 {
		fmt.Fprintln(buf, "")
		fmt.Fprintf(buf, "export OMP_NUM_THREADS=%d\n", agg.MaxThreadsPerRank)
	}
}

// Prepare aggregates and renders a bundle in one step.
func Prepare(b *Bundle) (*AggregatedDirective, *Script, error) {
	agg, err := Aggregate(b)
	if err != nil {
		return nil, nil, err
	}
	script, err := Render(b, agg)
	if err != nil {
		return nil, nil, err
	}
	return agg, script, nil
}
