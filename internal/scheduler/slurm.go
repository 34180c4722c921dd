package scheduler

import (
	"fmt"
	"io"
	"regexp"
	"time"
)

// slurmDialect writes #SBATCH headers
type slurmDialect struct{}

func (slurmDialect) name() string                 { return "SLURM" }
func (slurmDialect) submitBinary() string         { return "sbatch" }
func (slurmDialect) jobIDPattern() *regexp.Regexp { return slurmJobIDRe }
func (slurmDialect) directivePrefix() string      { return "#SBATCH" }

func (slurmDialect) writeHeader(w io.Writer, jobName string, agg *AggregatedDirective) {
	if jobName != "" {
		fmt.Fprintf(w, "#SBATCH --job-name=%s\n", jobName)
	}
	if agg.Partition != "" {
		fmt.Fprintf(w, "#SBATCH --partition=%s\n", agg.Partition)
	}
	if agg.Nodes != nil {
		fmt.Fprintf(w, "#SBATCH --nodes=%d\n", *agg.Nodes)
	}
	if agg.Walltime != nil {
		fmt.Fprintf(w, "#SBATCH --time=%s\n", formatSlurmTimeSpec(*agg.Walltime))
	}
	if n := agg.TaskCount(); n > 0 {
		fmt.Fprintf(w, "#SBATCH --ntasks=%d\n", n)
	}
	if agg.TotalGPUs > 0 {
		fmt.Fprintf(w, "#SBATCH --gres=gpu:%d\n", agg.TotalGPUs)
	}
}

// formatSlurmTimeSpec formats a duration as [D-]HH:MM:SS
func formatSlurmTimeSpec(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	total := int64(d.Seconds())
	days := total / (24 * 3600)
	rem := total % (24 * 3600)
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60
	if days > 0 {
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
