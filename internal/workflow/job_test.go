package workflow

import (
	"math"
	"testing"
)

func TestJobIDDeterministic(t *testing.T) {
	a, err := NewJob(map[string]any{"a": 1, "b": map[string]any{"y": 2, "x": 1}})
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	b, err := NewJob(map[string]any{"b": map[string]any{"x": 1, "y": 2}, "a": 1})
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if a.ID() != b.ID() {
		t.Errorf("IDs differ for equal state-points: %s vs %s", a.ID(), b.ID())
	}
	if len(a.ID()) != 32 {
		t.Errorf("ID length = %d; want 32", len(a.ID()))
	}

	c, _ := NewJob(map[string]any{"a": 2})
	if c.ID() == a.ID() {
		t.Error("different state-points share an ID")
	}
}

func TestJobStatePointImmutable(t *testing.T) {
	sp := map[string]any{"a": 1}
	job, err := NewJob(sp)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	sp["a"] = 99
	got := job.StatePoint()
	got["a"] = 42
	if job.StatePoint()["a"] != 1 {
		t.Errorf("state-point mutated: %v", job.StatePoint())
	}
}

func TestJobIDKnownValues(t *testing.T) {
	tests := []struct {
		name string
		sp   map[string]any
		want string
	}{
		{"flat", map[string]any{"a": 1, "b": "x"}, "4f5f4713d180fb0cb1041f7caf4faaaa"},
		{"empty", nil, "99914b932bd37a50b983c5e7c90ae93b"},
		{"nested", map[string]any{
			"N": 2,
			"f": 1.0,
			"l": []any{1, 2.5, nil, true},
			"n": map[string]any{"z": 1, "a": "<>&"},
			"s": "\u00e9",
		}, "a1ba8fcafe129e33dff888522d205b54"},
		{"exponents", map[string]any{"big": 1e16, "small": 1e-05}, "d65e1b735a3855567b2c249ab43326f8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := NewJob(tt.sp)
			if err != nil {
				t.Fatalf("NewJob failed: %v", err)
			}
			if job.ID() != tt.want {
				t.Errorf("ID() = %s; want %s", job.ID(), tt.want)
			}
		})
	}
}

func TestCanonicalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"sorted keys", map[string]any{"b": "x", "a": 1}, `{"a": 1, "b": "x"}`},
		{"no html escape", map[string]any{"k": "<>&"}, `{"k": "<>&"}`},
		{"non-ascii", "\u00e9\U0001F600", `"\u00e9\ud83d\ude00"`},
		{"control", "a\tb\x01", `"a\tb\u0001"`},
		{"integral float", 3.0, `3.0`},
		{"fraction", 0.1, `0.1`},
		{"small", 0.0001, `0.0001`},
		{"tiny", 0.00001, `1e-05`},
		{"large", 1.5e16, `1.5e+16`},
		{"typed slice", []float64{1, 2.5}, `[1.0, 2.5]`},
		{"typed map", map[string]int{"y": 2, "x": 1}, `{"x": 1, "y": 2}`},
		{"nil", nil, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalJSON(tt.in)
			if err != nil {
				t.Fatalf("CanonicalJSON failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("CanonicalJSON() = %s; want %s", got, tt.want)
			}
		})
	}
}

func TestCanonicalJSONRejectsNaN(t *testing.T) {
	if _, err := CanonicalJSON(map[string]any{"x": math.NaN()}); err == nil {
		t.Error("expected error for NaN")
	}
}

func TestJobRejectsUnencodableStatePoint(t *testing.T) {
	if _, err := NewJob(map[string]any{"f": func() {}}); err == nil {
		t.Error("expected error for non-JSON state-point")
	}
}
