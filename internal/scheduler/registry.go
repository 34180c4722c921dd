package scheduler

import (
	"strings"
	"sync"
)

// Registry maps cluster names to environments. Lookups are case-insensitive.
type Registry struct {
	mu    sync.RWMutex
	envs  map[string]*Environment
	order []string
}

// NewRegistry creates a registry holding the given environments.
func NewRegistry(envs ...*Environment) *Registry {
	r := &Registry{envs: make(map[string]*Environment)}
	for _, env := range envs {
		r.Register(env)
	}
	return r
}

// DefaultRegistry returns a registry with the built-in environments.
func DefaultRegistry() *Registry {
	return NewRegistry(BuiltinEnvironments()...)
}

// Register adds an environment, replacing any environment with the same name.
func (r *Registry) Register(env *Environment) {
	key := strings.ToLower(env.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.envs[key]; !exists {
		r.order = append(r.order, key)
	}
	r.envs[key] = env
}

// Lookup returns the environment registered under name.
// No scheduler dialect is guessed for unknown names.
func (r *Registry) Lookup(name string) (*Environment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if env, ok := r.envs[strings.ToLower(strings.TrimSpace(name))]; ok {
		return env, nil
	}
	return nil, &UnknownEnvironmentError{Name: name, Known: r.namesLocked()}
}

// Names returns the registered environment names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.envs[key].Name)
	}
	return names
}

// Environments returns the registered environments in registration order.
func (r *Registry) Environments() []*Environment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	envs := make([]*Environment, 0, len(r.order))
	for _, key := range r.order {
		envs = append(envs, r.envs[key])
	}
	return envs
}
