package scheduler

import "time"

// Names of the built-in environments
const (
	EnvLocal     = "local"
	EnvComet     = "comet"
	EnvStampede2 = "stampede2"
	EnvBridges   = "bridges"
	EnvTitan     = "titan"
	EnvEos       = "eos"
	EnvFlux      = "flux"
)

// BuiltinEnvironments returns fresh copies of the clusters known out of the box.
func BuiltinEnvironments() []*Environment {
	fluxWalltime := time.Hour
	return []*Environment{
		{
			Name:             EnvLocal,
			Scheduler:        SchedulerUnknown,
			SupportsBundling: true,
			MPILauncher:      "mpiexec -n {np}",
			Description:      "Local workstation without a scheduler",
		},
		{
			Name:      EnvComet,
			Scheduler: SchedulerSLURM,
			Partitions: []PartitionSpec{
				{Name: "compute", MinNodes: 1, MaxNodes: 72, CoresPerNode: 24},
				{Name: "shared", MinNodes: 1, MaxNodes: 1, CoresPerNode: 24},
				{Name: "gpu", MinNodes: 1, MaxNodes: 4, GPUOnly: true, CoresPerNode: 24},
			},
			SupportsBundling: true,
			MPILauncher:      "ibrun -v",
			Description:      "SDSC Comet (XSEDE)",
		},
		{
			Name:      EnvStampede2,
			Scheduler: SchedulerSLURM,
			Partitions: []PartitionSpec{
				{Name: "skx-normal", MinNodes: 1, MaxNodes: 128, CoresPerNode: 48},
				{Name: "skx-dev", MinNodes: 1, MaxNodes: 4, CoresPerNode: 48},
				{Name: "normal", MinNodes: 1, MaxNodes: 256, CoresPerNode: 68},
				{Name: "development", MinNodes: 1, MaxNodes: 16, CoresPerNode: 68},
			},
			SupportsBundling: true,
			MPILauncher:      "ibrun",
			Description:      "TACC Stampede2 (XSEDE)",
		},
		{
			Name:      EnvBridges,
			Scheduler: SchedulerSLURM,
			Partitions: []PartitionSpec{
				{Name: "RM", MinNodes: 1, MaxNodes: 168, CoresPerNode: 28},
				{Name: "RM-Shared", MinNodes: 1, MaxNodes: 1, CoresPerNode: 28},
				{Name: "GPU", MinNodes: 1, MaxNodes: 16, GPUOnly: true, CoresPerNode: 32},
			},
			SupportsBundling: true,
			MPILauncher:      "mpirun -n {np}",
			Description:      "PSC Bridges (XSEDE)",
		},
		{
			Name:             EnvTitan,
			Scheduler:        SchedulerPBS,
			SupportsBundling: true,
			CoresPerNode:     16,
			MPILauncher:      "aprun -n {np}",
			Description:      "OLCF Titan (INCITE)",
		},
		{
			Name:             EnvEos,
			Scheduler:        SchedulerPBS,
			SupportsBundling: true,
			CoresPerNode:     32,
			MPILauncher:      "aprun -n {np}",
			Description:      "OLCF Eos (INCITE)",
		},
		{
			Name:             EnvFlux,
			Scheduler:        SchedulerPBS,
			DefaultWalltime:  &fluxWalltime,
			SupportsBundling: true,
			MPILauncher:      "mpirun -np {np}",
			Description:      "University of Michigan Flux",
		},
	}
}
