package submit

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/vishav1771/signac-flow/internal/project"
	"github.com/vishav1771/signac-flow/internal/scheduler"
)

const testProjectFile = `
name: SubmissionTest
operations:
  - name: serial_op
    cmd: python ops.py serial_op {{.ID}}
  - name: mpi_op
    cmd: python ops.py mpi_op {{.ID}}
    directives: {nranks: 2}
  - name: omp_op
    cmd: python ops.py omp_op {{.ID}}
    directives: {omp_num_threads: 2}
  - name: gpu_op
    cmd: python ops.py gpu_op {{.ID}}
    directives: {ngpu: 2}
jobs:
  - statepoint: {i: 0}
  - statepoint: {i: 1}
  - statepoint: {i: 2}
`

func loadTestProject(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.Parse([]byte(testProjectFile))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return p
}

func newTestEnvironment() *scheduler.Environment {
	return &scheduler.Environment{
		Name:      "testcluster",
		Scheduler: scheduler.SchedulerSLURM,
		Partitions: []scheduler.PartitionSpec{
			{Name: "cpu", MinNodes: 1, MaxNodes: 4},
			{Name: "gpu", MinNodes: 1, MaxNodes: 2, GPUOnly: true},
		},
		SupportsBundling: true,
	}
}

// fakeSubmitter records submitted paths and fails on the call numbered failAt (1-based).
type fakeSubmitter struct {
	mu     sync.Mutex
	paths  []string
	failAt int
	err    error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ *scheduler.Environment, _ *scheduler.Script, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAt > 0 && len(f.paths)+1 == f.failAt {
		return "", f.err
	}
	f.paths = append(f.paths, path)
	return fmt.Sprintf("%d", 1000+len(f.paths)), nil
}

func newTestController(sub Submitter) (*Controller, afero.Fs) {
	fs := afero.NewMemMapFs()
	return &Controller{
		Registry:  scheduler.NewRegistry(newTestEnvironment()),
		Submitter: sub,
		Store:     &ArtifactStore{Fs: fs, Dir: "/scripts"},
	}, fs
}
