package scheduler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"comet", "Comet", " TITAN "} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
		}
	}

	_, err := r.Lookup("summit")
	if !IsUnknownEnvironment(err) {
		t.Fatalf("expected UnknownEnvironmentError, got %v", err)
	}
	ue := err.(*UnknownEnvironmentError)
	if diff := cmp.Diff(r.Names(), ue.Known); diff != "" {
		t.Errorf("Known names mismatch:\n%s", diff)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry(newTestEnvironment())
	replacement := newTestEnvironment()
	replacement.Name = "TestCluster"
	replacement.MaxJobNameLength = 12
	r.Register(replacement)

	if got := r.Names(); len(got) != 1 || got[0] != "TestCluster" {
		t.Fatalf("Names() = %v", got)
	}
	env, err := r.Lookup("testcluster")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if env.MaxJobNameLength != 12 {
		t.Errorf("expected the replacement environment, got %+v", env)
	}
}

func TestBuiltinEnvironmentsAreFresh(t *testing.T) {
	a := BuiltinEnvironments()
	b := BuiltinEnvironments()
	a[1].Partitions[0].MaxNodes = 1
	if b[1].Partitions[0].MaxNodes == 1 {
		t.Error("BuiltinEnvironments shares partition slices between calls")
	}

	want := []string{EnvLocal, EnvComet, EnvStampede2, EnvBridges, EnvTitan, EnvEos, EnvFlux}
	if diff := cmp.Diff(want, DefaultRegistry().Names()); diff != "" {
		t.Errorf("built-in names mismatch:\n%s", diff)
	}
}
