package scheduler

import (
	"strings"
	"testing"
)

func TestBundleNames(t *testing.T) {
	env := newTestEnvironment()
	b := newTestBundle(t, env, "mpi_op", "omp_op")

	if got := b.CanonicalName(); got != "SubmissionTest/mpi_op_omp_op" {
		t.Errorf("CanonicalName() = %q", got)
	}
	if got := b.ScriptName(); got != "script_mpi_op_omp_op.sh" {
		t.Errorf("ScriptName() = %q", got)
	}

	display := b.DisplayName()
	if !strings.HasPrefix(display, b.CanonicalName()+"/") {
		t.Errorf("DisplayName() = %q; want canonical prefix", display)
	}
	if len(b.Hash()) != hashSuffixLen {
		t.Errorf("Hash() length = %d", len(b.Hash()))
	}
	if got := StripHashSuffix(display); got != b.CanonicalName() {
		t.Errorf("StripHashSuffix(%q) = %q", display, got)
	}
}

func TestBundleNameDeterministic(t *testing.T) {
	env := newTestEnvironment()
	a := newTestBundle(t, env, "mpi_op", "omp_op")
	b := newTestBundle(t, env, "mpi_op", "omp_op")
	if a.DisplayName() != b.DisplayName() {
		t.Errorf("identical bundles named differently: %q vs %q", a.DisplayName(), b.DisplayName())
	}

	// Same member set in another order shares the hash
	reordered := newTestBundle(t, env, "omp_op", "mpi_op")
	if a.Hash() != reordered.Hash() {
		t.Error("hash should not depend on member order")
	}

	// A different environment changes the hash
	other := newTestEnvironment()
	other.Name = "othercluster"
	moved := newTestBundle(t, other, "mpi_op", "omp_op")
	if a.Hash() == moved.Hash() {
		t.Error("hash should depend on the environment")
	}

	// A different job changes the hash
	withJob := newTestBundle(t, env, "mpi_op", "omp_op")
	withJob.Pairs[1].Job = testJob(t, 1)
	if a.Hash() == withJob.Hash() {
		t.Error("hash should depend on member jobs")
	}
}

func TestBundleDisplayNameTruncation(t *testing.T) {
	env := newTestEnvironment()
	env.MaxJobNameLength = 20
	b := newTestBundle(t, env, "mpi_op", "omp_op")

	name := b.DisplayName()
	if len(name) != 20 {
		t.Fatalf("DisplayName() = %q (len %d); want len 20", name, len(name))
	}
	if !strings.HasSuffix(name, "/"+b.Hash()) {
		t.Errorf("DisplayName() = %q; want hash suffix", name)
	}
	if got := StripHashSuffix(name); got != "SubmissionT" {
		t.Errorf("StripHashSuffix(%q) = %q", name, got)
	}

	env.MaxJobNameLength = 5
	if got := b.DisplayName(); got != b.Hash()[:5] {
		t.Errorf("tiny limit DisplayName() = %q", got)
	}
}

func TestBundleOperationNamesDeduplicated(t *testing.T) {
	env := newTestEnvironment()
	b := newTestBundle(t, env, "serial_op")
	b.Pairs = append(b.Pairs, Pair{Operation: testOperations["serial_op"], Job: testJob(t, 1), Environment: env})
	if got := b.CanonicalName(); got != "SubmissionTest/serial_op" {
		t.Errorf("CanonicalName() = %q", got)
	}
}

func TestStripHashSuffix(t *testing.T) {
	tests := map[string]string{
		"proj/mpi_op/0a1b2c3d": "proj/mpi_op",
		"proj/mpi_op":          "proj/mpi_op",
		"proj/Mixed-Case":      "proj/Mixed-Case",
		"nohash":               "nohash",
	}
	for in, want := range tests {
		if got := StripHashSuffix(in); got != want {
			t.Errorf("StripHashSuffix(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestEmptyBundleEnvironment(t *testing.T) {
	b := &Bundle{}
	if b.Environment() != nil {
		t.Error("empty bundle should have no environment")
	}
}
