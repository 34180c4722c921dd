package scheduler

import (
	"crypto/sha1"
	"encoding/hex"
	"slices"
	"strings"
	"time"

	"github.com/vishav1771/signac-flow/internal/workflow"
)

// hashSuffixLen is the number of hex characters of the bundle name suffix.
const hashSuffixLen = 8

// Pair binds an operation to the job it runs on and the environment it targets.
type Pair struct {
	Operation   workflow.Operation
	Job         workflow.Job
	Environment *Environment
}

// ID is the member identity used for naming: "<operation>:<job id>".
func (p Pair) ID() string {
	return p.Operation.Name + ":" + p.Job.ID()
}

// Bundle is one or more (operation, job) pairs submitted as a single scheduler job.
// It is built per submission request and owns no persistent state.
type Bundle struct {
	Project   string         // Project name, first segment of the bundle name
	Pairs     []Pair         // Members, in script order
	Partition string         // Requested partition ("" = environment default)
	Walltime  *time.Duration // Requested walltime (nil = environment default)
	Nodes     *int           // Requested node count (nil = estimate)
	Parallel  bool           // Run members concurrently inside the script
	Pretend   bool           // Render only, never submit
	Force     bool           // Replace an existing script artifact
}

// Environment returns the environment of the first member, or nil for an empty bundle.
func (b *Bundle) Environment() *Environment {
	if len(b.Pairs) == 0 {
		return nil
	}
	return b.Pairs[0].Environment
}

// OperationNames returns the distinct operation names in member order.
func (b *Bundle) OperationNames() []string {
	var names []string
	for _, p := range b.Pairs {
		if !slices.Contains(names, p.Operation.Name) {
			names = append(names, p.Operation.Name)
		}
	}
	return names
}

// CanonicalName is the stable part of the bundle name: the project followed
// by the operation names joined with "_". Golden-file comparisons use it.
func (b *Bundle) CanonicalName() string {
	ops := strings.Join(b.OperationNames(), "_")
	if b.Project == "" {
		return ops
	}
	return b.Project + "/" + ops
}

// Hash is a short digest of the environment and the sorted member identities.
// Bundles with the same members on the same environment share a hash
// regardless of member order.
func (b *Bundle) Hash() string {
	ids := make([]string, 0, len(b.Pairs))
	for _, p := range b.Pairs {
		ids = append(ids, p.ID())
	}
	slices.Sort(ids)

	h := sha1.New()
	if env := b.Environment(); env != nil {
		h.Write([]byte(env.Name))
	}
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(ids, "\n")))
	return hex.EncodeToString(h.Sum(nil))[:hashSuffixLen]
}

// DisplayName is the scheduler job name: the canonical name, truncated to
// the environment's job-name limit, followed by "/<hash>".
func (b *Bundle) DisplayName() string {
	hash := b.Hash()
	base := b.CanonicalName()
	limit := 0
	if env := b.Environment(); env != nil {
		limit = env.MaxJobNameLength
	}
	if limit > 0 {
		room := limit - len(hash) - 1
		if room <= 0 {
			return hash[:min(limit, len(hash))]
		}
		if len(base) > room {
			base = base[:room]
		}
	}
	return base + "/" + hash
}

// ScriptName is the artifact file name: script_<operations>.sh
func (b *Bundle) ScriptName() string {
	return "script_" + strings.Join(b.OperationNames(), "_") + ".sh"
}

// StripHashSuffix removes a trailing "/<hash>" segment from a job name.
func StripHashSuffix(name string) string {
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return name
	}
	suffix := name[i+1:]
	for _, r := range suffix {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return name
		}
	}
	return name[:i]
}
