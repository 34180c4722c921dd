// Package project loads the project file: the operations of a workflow and
// the jobs (state-points) they run on.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/vishav1771/signac-flow/internal/workflow"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the project file schema this build writes and reads.
// Files with the same major version are accepted.
const SchemaVersion = "v1.0.0"

// DefaultFile is the project file looked up when none is given.
const DefaultFile = "flow.yaml"

// Project is a loaded, validated project file.
type Project struct {
	Name       string
	Schema     string
	Path       string
	Operations []workflow.Operation
	Jobs       []workflow.Job
}

// fileOperation is the on-disk form of an operation.
type fileOperation struct {
	Name       string                     `yaml:"name"`
	Command    string                     `yaml:"cmd"`
	Directives workflow.ResourceDirective `yaml:"directives"`
}

type fileJob struct {
	StatePoint map[string]any `yaml:"statepoint"`
}

type projectFile struct {
	Schema     string          `yaml:"schema"`
	Name       string          `yaml:"name"`
	Operations []fileOperation `yaml:"operations"`
	Jobs       []fileJob       `yaml:"jobs"`
}

// Load reads and parses the project file at path.
func Load(fs afero.Fs, path string) (*Project, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

// Parse decodes a project file. Unknown keys, duplicate keys, duplicate
// operation names and duplicate jobs are rejected.
func Parse(data []byte) (*Project, error) {
	var f projectFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty project file", ErrInvalidProject)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}

	schema, err := checkSchema(f.Schema)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("%w: missing project name", ErrInvalidProject)
	}

	p := &Project{Name: f.Name, Schema: schema}

	seenOps := make(map[string]bool)
	for i, fo := range f.Operations {
		if fo.Name == "" {
			return nil, fmt.Errorf("%w: operation #%d has no name", ErrInvalidProject, i+1)
		}
		if seenOps[fo.Name] {
			return nil, &DuplicateOperationError{Name: fo.Name}
		}
		seenOps[fo.Name] = true
		if strings.TrimSpace(fo.Command) == "" {
			return nil, fmt.Errorf("%w: operation %s has no command", ErrInvalidProject, fo.Name)
		}
		if err := fo.Directives.Validate(); err != nil {
			return nil, fmt.Errorf("operation %s: %w", fo.Name, err)
		}
		p.Operations = append(p.Operations, workflow.Operation{
			Name:      fo.Name,
			Command:   fo.Command,
			Directive: fo.Directives,
		})
	}

	seenJobs := make(map[string]bool)
	for i, fj := range f.Jobs {
		job, err := workflow.NewJob(fj.StatePoint)
		if err != nil {
			return nil, fmt.Errorf("%w: job #%d: %v", ErrInvalidProject, i+1, err)
		}
		if seenJobs[job.ID()] {
			return nil, &DuplicateJobError{ID: job.ID()}
		}
		seenJobs[job.ID()] = true
		p.Jobs = append(p.Jobs, job)
	}

	return p, nil
}

// checkSchema accepts an empty schema (current version) or any version with
// the same major version as SchemaVersion. "1.2" and "v1.2" are equivalent.
func checkSchema(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SchemaVersion, nil
	}
	v := s
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q is not a version", ErrUnsupportedSchema, s)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedSchema, s, semver.Major(SchemaVersion))
	}
	return semver.Canonical(v), nil
}

// Operation returns the operation with the given name.
func (p *Project) Operation(name string) (workflow.Operation, bool) {
	for _, op := range p.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return workflow.Operation{}, false
}

// OperationNames returns the operation names in file order.
func (p *Project) OperationNames() []string {
	names := make([]string, 0, len(p.Operations))
	for _, op := range p.Operations {
		names = append(names, op.Name)
	}
	return names
}

// JobsWithPrefix returns the jobs whose ID starts with prefix, in file order.
func (p *Project) JobsWithPrefix(prefix string) []workflow.Job {
	var jobs []workflow.Job
	for _, j := range p.Jobs {
		if strings.HasPrefix(j.ID(), prefix) {
			jobs = append(jobs, j)
		}
	}
	return jobs
}
