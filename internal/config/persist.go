package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/vishav1771/signac-flow/internal/utils"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// EnvPrefix is the prefix of environment variable overrides (FLOW_ENVIRONMENT, ...)
const EnvPrefix = "FLOW"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (FLOW_*)
// 3. User config file (~/.config/flow/config.yaml)
// 4. System config file (/etc/flow/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	for _, dir := range SearchPaths() {
		viper.AddConfigPath(dir)
	}

	// Environment variables
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// SearchPaths returns the config directories in lookup order.
func SearchPaths() []string {
	var paths []string
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userConfigDir, "flow"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".flow"))
	}
	paths = append(paths, "/etc/flow", ".")
	return paths
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("project_file", "flow.yaml")
	viper.SetDefault("script_dir", ".flow/scripts")
	viper.SetDefault("golden_dir", "testdata/golden")
	viper.SetDefault("environment", "local")
	viper.SetDefault("scheduler_bin", "")
	viper.SetDefault("bundle_size", 0)
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".flow", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "flow", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), utils.PermDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	if v := viper.GetString("project_file"); v != "" {
		Global.ProjectFile = v
	}
	if v := viper.GetString("script_dir"); v != "" {
		Global.ScriptDir = v
	}
	if v := viper.GetString("golden_dir"); v != "" {
		Global.GoldenDir = v
	}
	if v := viper.GetString("environment"); v != "" {
		Global.Environment = v
	}
	if v := viper.GetString("scheduler_bin"); v != "" {
		Global.SchedulerBin = v
	}
	if v := viper.GetInt("bundle_size"); v > 0 {
		Global.BundleSize = v
	}
}
