package scheduler

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// dialect is the per-scheduler header grammar. The set is closed: one
// implementation per SchedulerType, picked by dialectFor.
type dialect interface {
	// name is the scheduler label used in messages.
	name() string
	// writeHeader writes the resource-request lines, in the fixed order:
	// job name, partition, nodes, walltime, rank/process count, GPU count.
	writeHeader(w io.Writer, jobName string, agg *AggregatedDirective)
	// submitBinary is the submission command looked up in PATH.
	submitBinary() string
	// jobIDPattern extracts the job ID from the submission output.
	jobIDPattern() *regexp.Regexp
	// directivePrefix marks header lines ("" when the dialect has none).
	directivePrefix() string
}

var (
	slurmJobIDRe = regexp.MustCompile(`Submitted batch job (\d+)`)
	pbsJobIDRe   = regexp.MustCompile(`^(\d+\..*|^\d+)$`)
)

func dialectFor(t SchedulerType) dialect {
	switch t {
	case SchedulerSLURM:
		return slurmDialect{}
	case SchedulerPBS:
		return pbsDialect{}
	default:
		return unknownDialect{}
	}
}

// unknownDialect renders plain shell scripts with no scheduler header.
type unknownDialect struct{}

func (unknownDialect) name() string                                        { return "Unknown" }
func (unknownDialect) writeHeader(io.Writer, string, *AggregatedDirective) {}
func (unknownDialect) submitBinary() string                                { return "" }
func (unknownDialect) jobIDPattern() *regexp.Regexp                        { return nil }
func (unknownDialect) directivePrefix() string                             { return "" }

// DirectivePrefix returns the header line marker of a scheduler ("#SBATCH", "#PBS"),
// or "" for environments without a scheduler.
func DirectivePrefix(t SchedulerType) string {
	return dialectFor(t).directivePrefix()
}

// SubmitBinary returns the submission command of a scheduler, or "" when
// the environment has no scheduler.
func SubmitBinary(t SchedulerType) string {
	return dialectFor(t).submitBinary()
}

// ParseJobID extracts the job ID from the output of the submission command.
func ParseJobID(t SchedulerType, output string) (string, error) {
	re := dialectFor(t).jobIDPattern()
	if re == nil {
		return "", ErrNoSubmission
	}
	matches := re.FindStringSubmatch(strings.TrimSpace(output))
	if len(matches) < 2 {
		return "", fmt.Errorf("%w: %s", ErrJobIDParseFailed, output)
	}
	return matches[1], nil
}
