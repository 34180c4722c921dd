package scheduler

import (
	"fmt"
	"io"
	"regexp"
	"time"
)

// pbsDialect writes #PBS headers for PBS/Torque
type pbsDialect struct{}

func (pbsDialect) name() string                 { return "PBS" }
func (pbsDialect) submitBinary() string         { return "qsub" }
func (pbsDialect) jobIDPattern() *regexp.Regexp { return pbsJobIDRe }
func (pbsDialect) directivePrefix() string      { return "#PBS" }

func (pbsDialect) writeHeader(w io.Writer, jobName string, agg *AggregatedDirective) {
	if jobName != "" {
		fmt.Fprintf(w, "#PBS -N %s\n", jobName)
	}
	if agg.Partition != "" {
		fmt.Fprintf(w, "#PBS -q %s\n", agg.Partition)
	}
	if agg.Nodes != nil {
		fmt.Fprintf(w, "#PBS -l nodes=%d\n", *agg.Nodes)
	}
	if agg.Walltime != nil {
		fmt.Fprintf(w, "#PBS -l walltime=%s\n", formatPbsTime(*agg.Walltime))
	}
	if n := agg.TaskCount(); n > 0 {
		fmt.Fprintf(w, "#PBS -l procs=%d\n", n)
	}
	if agg.TotalGPUs > 0 {
		fmt.Fprintf(w, "#PBS -l ngpus=%d\n", agg.TotalGPUs)
	}
}

// formatPbsTime formats a duration as HH:MM:SS; hours may exceed 24.
func formatPbsTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
