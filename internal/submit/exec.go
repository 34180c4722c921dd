package submit

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
)

// Submitter hands a saved script to the scheduler and returns the job ID.
type Submitter interface {
	Submit(ctx context.Context, env *scheduler.Environment, script *scheduler.Script, path string) (string, error)
}

// ExecSubmitter runs the scheduler's submission command (sbatch, qsub).
type ExecSubmitter struct {
	// Binary overrides the submission command; empty means the
	// environment's default looked up in PATH.
	Binary string
}

// Submit runs the submission command on path and parses the job ID.
func (s *ExecSubmitter) Submit(ctx context.Context, env *scheduler.Environment, script *scheduler.Script, path string) (string, error) {
	if env.Scheduler == scheduler.SchedulerUnknown {
		return "", fmt.Errorf("%w: %s", scheduler.ErrNoSubmission, env.Name)
	}
	bin := s.Binary
	if bin == "" {
		bin = scheduler.SubmitBinary(env.Scheduler)
	}
	bin, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", scheduler.ErrSchedulerNotFound, err)
	}

	utils.PrintDebug("Running %s", utils.StyleCommand(bin+" "+path))
	cmd := exec.CommandContext(ctx, bin, path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", scheduler.NewSubmissionError(env.Scheduler.String(), script.Name, string(output), err)
	}
	return scheduler.ParseJobID(env.Scheduler, string(output))
}
