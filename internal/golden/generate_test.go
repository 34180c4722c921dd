package golden

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestFilterScript(t *testing.T) {
	in := "#!/bin/bash\n" +
		"#SBATCH --job-name=SubmissionTest/mpi_op/1a2b3c4d\n" +
		"#SBATCH --partition=compute\n" +
		"#SBATCH --ntasks=2\n" +
		"\n" +
		"export OMP_NUM_THREADS=2\n" +
		"\n" +
		"ibrun -v python ops.py mpi_op 0123\n"
	want := "#SBATCH --job-name=SubmissionTest/mpi_op\n" +
		"#SBATCH --partition=compute\n" +
		"#SBATCH --ntasks=2\n" +
		"export OMP_NUM_THREADS=2\n"
	if diff := cmp.Diff(want, FilterScript(in)); diff != "" {
		t.Errorf("FilterScript mismatch (-want +got):\n%s", diff)
	}

	pbs := "#!/bin/bash\n#PBS -N SubmissionTest/serial_op/ffff0000\n#PBS -l walltime=01:00:00\n\npython x\n"
	if got := FilterScript(pbs); got != "#PBS -N SubmissionTest/serial_op\n#PBS -l walltime=01:00:00\n" {
		t.Errorf("FilterScript(pbs) = %q", got)
	}

	if got := FilterScript("#!/bin/bash\n\npython x\n"); got != "" {
		t.Errorf("plain script should filter to nothing, got %q", got)
	}
}

func TestGPUMismatch(t *testing.T) {
	tests := []struct {
		partition, op string
		want          bool
	}{
		{"compute", "mpi_op", false},
		{"gpu", "gpu_op", false},
		{"GPU", "mpi_gpu_op", false},
		{"compute", "gpu_op", true},
		{"GPU", "serial_op", true},
	}
	for _, tt := range tests {
		if got := gpuMismatch(tt.partition, tt.op); got != tt.want {
			t.Errorf("gpuMismatch(%s, %s) = %v; want %v", tt.partition, tt.op, got, tt.want)
		}
	}
}

func TestRenderCase(t *testing.T) {
	g := NewGenerator()

	scripts, err := g.Render(Case{Environment: "comet", Params: Params{"partition": "compute", "walltime": 1}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(scripts) != 5 {
		t.Fatalf("expected 5 CPU scripts on compute, got %d", len(scripts))
	}
	var mpi *Script
	for i := range scripts {
		if scripts[i].FileName == "script_mpi_op.sh" {
			mpi = &scripts[i]
		}
	}
	if mpi == nil {
		t.Fatal("script_mpi_op.sh not rendered")
	}
	want := "#SBATCH --job-name=SubmissionTest/mpi_op\n" +
		"#SBATCH --partition=compute\n" +
		"#SBATCH --nodes=1\n" +
		"#SBATCH --time=01:00:00\n" +
		"#SBATCH --ntasks=2\n"
	if diff := cmp.Diff(want, mpi.Text); diff != "" {
		t.Errorf("mpi_op script mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBundleCase(t *testing.T) {
	g := NewGenerator()
	scripts, err := g.Render(Case{Environment: "comet", Params: Params{
		"partition": "compute",
		"parallel":  true,
		"bundle":    []string{"mpi_op", "omp_op"},
	}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(scripts) != 1 || scripts[0].FileName != "script_mpi_op_omp_op.sh" {
		t.Fatalf("unexpected scripts: %+v", scripts)
	}
	want := "#SBATCH --job-name=SubmissionTest/mpi_op_omp_op\n" +
		"#SBATCH --partition=compute\n" +
		"#SBATCH --nodes=1\n" +
		"#SBATCH --ntasks=2\n" +
		"export OMP_NUM_THREADS=2\n"
	if diff := cmp.Diff(want, scripts[0].Text); diff != "" {
		t.Errorf("bundle script mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRejectsBadParams(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Render(Case{Environment: "comet", Params: Params{"walltime": "1h"}}); err == nil {
		t.Error("expected error for a non-numeric walltime")
	}
	if _, err := g.Render(Case{Environment: "comet", Params: Params{"colour": "red"}}); err == nil {
		t.Error("expected error for an unknown parameter")
	}
	if _, err := g.Render(Case{Environment: "summit"}); err == nil {
		t.Error("expected error for an unknown environment")
	}
}

func TestGenerateAndCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := NewGenerator()
	cases := Cases()

	n, err := g.Generate(fs, "/golden", cases, false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	total := 0
	for _, c := range cases {
		scripts, _ := g.Render(c)
		total += len(scripts)
	}
	if n != total {
		t.Errorf("Generate wrote %d scripts; want %d", n, total)
	}

	mismatches, err := g.Check(fs, "/golden", cases)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(mismatches) != 0 {
		t.Errorf("fresh output has %d mismatches, first: %s", len(mismatches), mismatches[0].Path)
	}

	if _, err := g.Generate(fs, "/golden", cases, false); !errors.Is(err, ErrOutputExists) {
		t.Errorf("expected ErrOutputExists, got %v", err)
	}

	scripts, _ := g.Render(cases[0])
	path := filepath.Join("/golden", scripts[0].Dir, scripts[0].FileName)
	if err := afero.WriteFile(fs, path, []byte("stale\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mismatches, err = g.Check(fs, "/golden", cases)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(mismatches) != 1 || mismatches[0].Path != path || mismatches[0].Expected != "stale\n" {
		t.Errorf("expected one stale mismatch at %s, got %+v", path, mismatches)
	}

	if _, err := g.Generate(fs, "/golden", cases, true); err != nil {
		t.Fatalf("forced Generate failed: %v", err)
	}
	if mismatches, _ := g.Check(fs, "/golden", cases); len(mismatches) != 0 {
		t.Errorf("forced regeneration left %d mismatches", len(mismatches))
	}
}
