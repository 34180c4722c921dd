package golden

import (
	"slices"
	"strings"

	"github.com/vishav1771/signac-flow/internal/scheduler"
)

// Header markers of the scheduler dialects with batch headers.
var headerPrefixes = []string{
	scheduler.DirectivePrefix(scheduler.SchedulerPBS),
	scheduler.DirectivePrefix(scheduler.SchedulerSLURM),
}

// FilterScript keeps the lines of a script that golden files compare:
// scheduler header lines and the OpenMP export. The trailing hash of the
// job name is removed so the result does not depend on job IDs.
func FilterScript(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if !isHeaderLine(line) && !strings.Contains(line, "OMP_NUM_THREADS") {
			continue
		}
		if isJobNameLine(line) {
			line = scheduler.StripHashSuffix(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func isHeaderLine(line string) bool {
	return slices.ContainsFunc(headerPrefixes, func(prefix string) bool {
		return strings.Contains(line, prefix)
	})
}

func isJobNameLine(line string) bool {
	return strings.Contains(line, "#PBS -N") || strings.Contains(line, "#SBATCH --job-name")
}
