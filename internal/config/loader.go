package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOrDefault behaves like Load but returns the defaults when configPath
// does not exist. The CLI works without a config file.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := substituteEnvVars(cfg); err != nil {
			return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
		}
		return cfg, nil
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Provider.Go.Dir = expandEnvVar(cfg.Provider.Go.Dir)
	cfg.Provider.Schema.Path = expandEnvVar(cfg.Provider.Schema.Path)

	cfg.Provider.MySQL.Host = expandEnvVar(cfg.Provider.MySQL.Host)
	cfg.Provider.MySQL.User = expandEnvVar(cfg.Provider.MySQL.User)
	cfg.Provider.MySQL.Password = expandEnvVar(cfg.Provider.MySQL.Password)
	cfg.Provider.MySQL.Database = expandEnvVar(cfg.Provider.MySQL.Database)

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied; seed names are appended.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Provider != "" {
		c.Provider.Kind = o.Provider
	}
	if o.GoDir != "" {
		c.Provider.Go.Dir = o.GoDir
	}
	if o.SchemaPath != "" {
		c.Provider.Schema.Path = o.SchemaPath
	}
	if o.Catalog != "" {
		c.Seeds.Catalog = o.Catalog
	}
	c.Seeds.Names = append(c.Seeds.Names, o.Seeds...)
	if o.ReportFormat != "" {
		c.Report.Format = o.ReportFormat
	}
	if o.NoColor {
		c.Report.Color = false
	}
	if o.Members {
		c.Report.Members = true
	}
	if o.Cycles {
		c.Report.Cycles = true
	}
	if o.Order {
		c.Report.Order = true
	}
}

// Overrides contains CLI flag values that override config file settings.
type Overrides struct {
	LogLevel     string
	LogFormat    string
	Provider     string
	GoDir        string
	SchemaPath   string
	Catalog      string
	Seeds        []string
	ReportFormat string
	NoColor      bool
	Members      bool
	Cycles       bool
	Order        bool
}
