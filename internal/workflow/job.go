package workflow

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"maps"
)

// Job is a unit of data identified by its state-point.
// The state-point is fixed at construction; accessors hand out copies.
type Job struct {
	id         string
	statePoint map[string]any
}

// NewJob builds a job from a state-point. The ID is the hex MD5 of the
// canonical JSON encoding of the state-point (see CanonicalJSON).
func NewJob(statePoint map[string]any) (Job, error) {
	sp := maps.Clone(statePoint)
	if sp == nil {
		sp = map[string]any{}
	}
	id, err := StatePointID(sp)
	if err != nil {
		return Job{}, err
	}
	return Job{id: id, statePoint: sp}, nil
}

// StatePointID returns the job ID of a state-point.
func StatePointID(sp map[string]any) (string, error) {
	data, err := CanonicalJSON(sp)
	if err != nil {
		return "", fmt.Errorf("state-point is not JSON encodable: %w", err)
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// ID returns the job identifier.
func (j Job) ID() string { return j.id }

// StatePoint returns a copy of the state-point.
func (j Job) StatePoint() map[string]any {
	return maps.Clone(j.statePoint)
}

// String returns the job ID, so a job prints as its identifier in templates.
func (j Job) String() string { return j.id }
