package golden

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
	"github.com/vishav1771/signac-flow/internal/workflow"
)

// ErrOutputExists indicates a golden directory that is only replaced with force
var ErrOutputExists = errors.New("golden output already exists")

// StatePointFile holds the case of a golden directory.
const StatePointFile = "statepoint.json"

// Script is one filtered reference script.
type Script struct {
	Dir      string // Case directory, named by the case ID
	FileName string // script_<operation or bundle>.sh
	Text     string // Filtered script
}

// Generator renders reference scripts for a set of cases.
type Generator struct {
	Registry   *scheduler.Registry
	Operations []workflow.Operation
}

// NewGenerator creates a generator with the built-in environments and operations.
func NewGenerator() *Generator {
	return &Generator{Registry: scheduler.DefaultRegistry(), Operations: Operations()}
}

// caseJob turns a case into the job its scripts are rendered for.
// The job ID names the case directory.
func caseJob(c Case) (workflow.Job, error) {
	return workflow.NewJob(map[string]any{
		"environment": c.Environment,
		"parameters":  map[string]any(c.Params),
	})
}

// Render produces the filtered scripts of one case. Operations whose GPU
// use does not match the requested partition are skipped.
func (g *Generator) Render(c Case) ([]Script, error) {
	env, err := g.Registry.Lookup(c.Environment)
	if err != nil {
		return nil, err
	}
	job, err := caseJob(c)
	if err != nil {
		return nil, err
	}
	base, err := bundleTemplate(c.Params)
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", job.ID(), err)
	}

	var groups [][]workflow.Operation
	if names, ok := c.Params["bundle"].([]string); ok {
		var ops []workflow.Operation
		for _, name := range names {
			op, ok := g.operation(name)
			if !ok {
				return nil, fmt.Errorf("case %s: unknown operation %s", job.ID(), name)
			}
			ops = append(ops, op)
		}
		groups = append(groups, ops)
	} else {
		for _, op := range g.Operations {
			if partition, ok := c.Params["partition"].(string); ok && gpuMismatch(partition, op.Name) {
				continue
			}
			groups = append(groups, []workflow.Operation{op})
		}
	}

	scripts := make([]Script, 0, len(groups))
	for _, ops := range groups {
		b := base
		for _, op := range ops {
			b.Pairs = append(b.Pairs, scheduler.Pair{Operation: op, Job: job, Environment: env})
		}
		_, script, err := scheduler.Prepare(&b)
		if err != nil {
			return nil, fmt.Errorf("case %s (%s): %w", job.ID(), b.CanonicalName(), err)
		}
		scripts = append(scripts, Script{
			Dir:      job.ID(),
			FileName: script.FileName,
			Text:     FilterScript(script.Text),
		})
	}
	return scripts, nil
}

func (g *Generator) operation(name string) (workflow.Operation, bool) {
	for _, op := range g.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return workflow.Operation{}, false
}

// gpuMismatch reports whether exactly one of partition and operation is a GPU one.
func gpuMismatch(partition, op string) bool {
	return strings.Contains(strings.ToLower(partition), "gpu") != strings.Contains(strings.ToLower(op), "gpu")
}

// bundleTemplate maps case parameters onto bundle settings.
func bundleTemplate(p Params) (scheduler.Bundle, error) {
	b := scheduler.Bundle{Project: ProjectName, Pretend: true, Force: true}
	for key, v := range p {
		if v == nil {
			continue
		}
		switch key {
		case "partition":
			s, ok := v.(string)
			if !ok {
				return b, fmt.Errorf("partition must be a string, got %T", v)
			}
			b.Partition = s
		case "walltime":
			hours, ok := v.(int)
			if !ok {
				return b, fmt.Errorf("walltime must be a number of hours, got %T", v)
			}
			w := time.Duration(hours) * time.Hour
			b.Walltime = &w
		case "nn":
			n, ok := v.(int)
			if !ok {
				return b, fmt.Errorf("nn must be an integer, got %T", v)
			}
			b.Nodes = &n
		case "parallel":
			parallel, ok := v.(bool)
			if !ok {
				return b, fmt.Errorf("parallel must be a bool, got %T", v)
			}
			b.Parallel = parallel
		case "bundle":
		default:
			return b, fmt.Errorf("unknown parameter %s", key)
		}
	}
	return b, nil
}

// Generate writes the reference scripts of all cases under dir, one
// directory per case. An existing dir is only replaced when force is set.
// It returns the number of scripts written.
func (g *Generator) Generate(fs afero.Fs, dir string, cases []Case, force bool) (int, error) {
	if exists, _ := afero.Exists(fs, dir); exists {
		if !force {
			return 0, fmt.Errorf("%w: %s (use --force to regenerate)", ErrOutputExists, dir)
		}
		if err := fs.RemoveAll(dir); err != nil {
			return 0, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}

	written := 0
	for _, c := range cases {
		scripts, err := g.Render(c)
		if err != nil {
			return written, err
		}
		if len(scripts) == 0 {
			continue
		}
		caseDir := filepath.Join(dir, scripts[0].Dir)
		sp, err := json.MarshalIndent(map[string]any{"environment": c.Environment, "parameters": c.Params}, "", "  ")
		if err != nil {
			return written, err
		}
		if err := utils.WriteFileExclusive(fs, filepath.Join(caseDir, StatePointFile), sp, utils.PermFile, false); err != nil {
			return written, err
		}
		for _, s := range scripts {
			if err := utils.WriteFileExclusive(fs, filepath.Join(caseDir, s.FileName), []byte(s.Text), utils.PermFile, false); err != nil {
				return written, err
			}
			written++
		}
		utils.PrintDebug("Wrote %d script(s) for %s %v", len(scripts), c.Environment, map[string]any(c.Params))
	}
	return written, nil
}

// Mismatch is a reference script that differs from the current rendering.
type Mismatch struct {
	Path     string
	Missing  bool
	Expected string // Content on disk
	Actual   string // Current rendering
}

// Check renders all cases and compares them with the scripts under dir.
func (g *Generator) Check(fs afero.Fs, dir string, cases []Case) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, c := range cases {
		scripts, err := g.Render(c)
		if err != nil {
			return nil, err
		}
		for _, s := range scripts {
			path := filepath.Join(dir, s.Dir, s.FileName)
			data, err := afero.ReadFile(fs, path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				mismatches = append(mismatches, Mismatch{Path: path, Missing: true, Actual: s.Text})
			case err != nil:
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			case string(data) != s.Text:
				mismatches = append(mismatches, Mismatch{Path: path, Expected: string(data), Actual: s.Text})
			}
		}
	}
	return mismatches, nil
}
