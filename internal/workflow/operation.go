package workflow

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// legacyJobPlaceholder is replaced by the job ID before template execution.
const legacyJobPlaceholder = "{job}"

// Operation is a named unit of work run against a job.
type Operation struct {
	Name      string
	Command   string // text/template evaluated against CommandData
	Directive ResourceDirective
}

// CommandData is the template context of an operation command.
type CommandData struct {
	ID string         // Job ID
	SP map[string]any // Job state-point
	Op string         // Operation name
}

// Mode classifies the operation's directive.
func (o Operation) Mode() LaunchMode {
	return Classify(o.Directive)
}

// RenderCommand substitutes the job into the command template.
func (o Operation) RenderCommand(job Job) (string, error) {
	src := strings.ReplaceAll(o.Command, legacyJobPlaceholder, job.ID())
	tmpl, err := template.New(o.Name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid command template for operation %s: %w", o.Name, err)
	}
	var buf bytes.Buffer
	data := CommandData{ID: job.ID(), SP: job.StatePoint(), Op: o.Name}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render command for operation %s on job %s: %w", o.Name, job.ID(), err)
	}
	return buf.String(), nil
}
