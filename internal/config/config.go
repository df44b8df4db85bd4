// Package config provides configuration structures and loading for apideps.
package config

// Provider kinds.
const (
	ProviderGo     = "go"
	ProviderSchema = "schema"
	ProviderMySQL  = "mysql"
)

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Seeds    SeedsConfig    `yaml:"seeds" mapstructure:"seeds"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ProviderConfig selects and configures the source of type metadata.
type ProviderConfig struct {
	Kind   string         `yaml:"kind" mapstructure:"kind"` // go, schema, mysql
	Go     GoConfig       `yaml:"go" mapstructure:"go"`
	Schema SchemaConfig   `yaml:"schema" mapstructure:"schema"`
	MySQL  DatabaseConfig `yaml:"mysql" mapstructure:"mysql"`
}

// GoConfig configures loading of Go packages.
type GoConfig struct {
	Dir          string   `yaml:"dir" mapstructure:"dir"`
	BuildTags    []string `yaml:"build_tags" mapstructure:"build_tags"`
	IncludeTests bool     `yaml:"include_tests" mapstructure:"include_tests"`
}

// SchemaConfig points at a YAML file describing a type universe.
type SchemaConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DatabaseConfig represents a MySQL catalog connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
	TablePrefix        string `yaml:"table_prefix" mapstructure:"table_prefix"`
	CacheSize          int    `yaml:"cache_size" mapstructure:"cache_size"`
}

// SeedsConfig lists the seed types of a run.
type SeedsConfig struct {
	Catalog string   `yaml:"catalog" mapstructure:"catalog"`
	Names   []string `yaml:"names" mapstructure:"names"`
}

// ReportConfig controls result rendering.
type ReportConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text or json
	Color   bool   `yaml:"color" mapstructure:"color"`
	Members bool   `yaml:"members" mapstructure:"members"`
	Cycles  bool   `yaml:"cycles" mapstructure:"cycles"`
	Order   bool   `yaml:"order" mapstructure:"order"` // list types in dependency order
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Kind: ProviderGo,
			Go: GoConfig{
				Dir: ".",
			},
			MySQL: DatabaseConfig{
				Port:               3306,
				TLS:                "preferred",
				MaxConnections:     10,
				MaxIdleConnections: 5,
				TablePrefix:        "api_",
				CacheSize:          4096,
			},
		},
		Report: ReportConfig{
			Format: "text",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// SeedNames returns the names of the configured catalog, resolved through
// lookup, followed by the explicit seed names, without duplicates.
func (c *Config) SeedNames(lookup func(catalog string) ([]string, error)) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	if c.Seeds.Catalog != "" {
		catalogNames, err := lookup(c.Seeds.Catalog)
		if err != nil {
			return nil, err
		}
		for _, name := range catalogNames {
			add(name)
		}
	}
	for _, name := range c.Seeds.Names {
		add(name)
	}

	return names, nil
}
