package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
)

// EnvironmentsKey is the config key holding user-defined environments
const EnvironmentsKey = "environments"

// EnvironmentConfig is the config-file form of an environment.
//
//	environments:
//	  - name: greatlakes
//	    scheduler: slurm
//	    walltime: "4h"
//	    mpi_launcher: "srun -n {np}"
//	    partitions:
//	      - {name: standard, min_nodes: 1, max_nodes: 100, cores_per_node: 36}
//	      - {name: gpu, gpu: true}
type EnvironmentConfig struct {
	Name             string                    `mapstructure:"name"`
	Scheduler        string                    `mapstructure:"scheduler"`
	Walltime         string                    `mapstructure:"walltime"`
	Bundling         *bool                     `mapstructure:"bundling"`
	MaxJobNameLength int                       `mapstructure:"max_job_name_length"`
	CoresPerNode     int                       `mapstructure:"cores_per_node"`
	MPILauncher      string                    `mapstructure:"mpi_launcher"`
	Description      string                    `mapstructure:"description"`
	Partitions       []scheduler.PartitionSpec `mapstructure:"partitions"`
}

// ToEnvironment validates the config entry and converts it.
func (c EnvironmentConfig) ToEnvironment() (*scheduler.Environment, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("environment without a name")
	}
	env := &scheduler.Environment{
		Name:             c.Name,
		Scheduler:        scheduler.ParseSchedulerType(c.Scheduler),
		Partitions:       c.Partitions,
		SupportsBundling: c.Bundling == nil || *c.Bundling,
		MaxJobNameLength: c.MaxJobNameLength,
		CoresPerNode:     c.CoresPerNode,
		MPILauncher:      c.MPILauncher,
		Description:      c.Description,
	}
	if c.Scheduler != "" && env.Scheduler == scheduler.SchedulerUnknown {
		return nil, fmt.Errorf("environment %s: unsupported scheduler %q (use slurm or pbs)", c.Name, c.Scheduler)
	}
	if c.Walltime != "" {
		w, err := utils.ParseWalltime(c.Walltime)
		if err != nil {
			return nil, fmt.Errorf("environment %s: %w", c.Name, err)
		}
		env.DefaultWalltime = &w
	}
	seen := make(map[string]bool)
	for _, p := range c.Partitions {
		if p.Name == "" {
			return nil, fmt.Errorf("environment %s: partition without a name", c.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("environment %s: duplicate partition %s", c.Name, p.Name)
		}
		seen[p.Name] = true
		if p.MinNodes < 0 || (p.MaxNodes > 0 && p.MaxNodes < p.MinNodes) {
			return nil, fmt.Errorf("environment %s: partition %s has invalid node bounds [%d, %d]",
				c.Name, p.Name, p.MinNodes, p.MaxNodes)
		}
	}
	return env, nil
}

// LoadEnvironments reads the environments declared in the config.
func LoadEnvironments(v *viper.Viper) ([]*scheduler.Environment, error) {
	var cfgs []EnvironmentConfig
	if err := v.UnmarshalKey(EnvironmentsKey, &cfgs); err != nil {
		return nil, fmt.Errorf("invalid %s section: %w", EnvironmentsKey, err)
	}
	envs := make([]*scheduler.Environment, 0, len(cfgs))
	for _, c := range cfgs {
		env, err := c.ToEnvironment()
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

// NewRegistry returns the built-in environments merged with those declared
// in the config. A configured environment replaces a built-in one of the same name.
func NewRegistry(v *viper.Viper) (*scheduler.Registry, error) {
	reg := scheduler.DefaultRegistry()
	envs, err := LoadEnvironments(v)
	if err != nil {
		return nil, err
	}
	for _, env := range envs {
		utils.PrintDebug("Registering environment %s from config", utils.StyleName(env.Name))
		reg.Register(env)
	}
	return reg, nil
}
