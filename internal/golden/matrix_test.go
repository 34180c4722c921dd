package golden

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(m *Matrix) []Params {
	var out []Params
	for p := range m.All() {
		out = append(out, p)
	}
	return out
}

func TestProduct(t *testing.T) {
	m := Product(map[string][]any{
		"walltime":  {nil, 1},
		"partition": {"compute", "gpu"},
	})
	if m.Len() != 4 {
		t.Fatalf("Len() = %d; want 4", m.Len())
	}

	want := []Params{
		{"partition": "compute", "walltime": nil},
		{"partition": "compute", "walltime": 1},
		{"partition": "gpu", "walltime": nil},
		{"partition": "gpu", "walltime": 1},
	}
	if diff := cmp.Diff(want, collect(m)); diff != "" {
		t.Errorf("combinations mismatch (-want +got):\n%s", diff)
	}
	// restartable
	if diff := cmp.Diff(want, collect(m)); diff != "" {
		t.Errorf("second iteration differs:\n%s", diff)
	}
}

func TestProductEdgeCases(t *testing.T) {
	empty := Product(map[string][]any{})
	if got := collect(empty); len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("empty axes should yield one empty combination, got %v", got)
	}

	none := Product(map[string][]any{"nn": {1, 2}, "partition": {}})
	if none.Len() != 0 || len(collect(none)) != 0 {
		t.Errorf("an empty axis should yield nothing")
	}

	m := Product(map[string][]any{"nn": {nil, 1, 2}})
	n := 0
	for range m.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("early break not honoured, got %d", n)
	}
}

func TestCasesTable(t *testing.T) {
	cases := Cases()
	if len(cases) != 50 {
		t.Errorf("expected 50 cases, got %d", len(cases))
	}
	counts := make(map[string]int)
	for _, c := range cases {
		counts[c.Environment]++
	}
	want := map[string]int{
		"comet": 11, "stampede2": 7, "bridges": 11,
		"flux": 7, "titan": 7, "eos": 7,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("per-environment counts mismatch:\n%s", diff)
	}
}
