package config

const VERSION = "0.1.0"

// Config holds global application settings
type Config struct {
	Debug   bool
	Quiet   bool
	Version string

	ProjectFile  string // Project file read by submit
	ScriptDir    string // Where live submissions store their scripts
	GoldenDir    string // Reference script directory
	Environment  string // Default environment name
	SchedulerBin string // Overrides sbatch/qsub lookup
	BundleSize   int    // Default bundle size (0 = one bundle)
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to built-in defaults.
func LoadDefaults() {
	Global = Config{
		Debug:       false,
		Version:     VERSION,
		ProjectFile: "flow.yaml",
		ScriptDir:   ".flow/scripts",
		GoldenDir:   "testdata/golden",
		Environment: "local",
	}
}
