package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	providerKind string
	goDir        string
	schemaPath   string
	catalogName  string
	seedNames    []string
	reportFormat string
	noColor      bool
	showMembers  bool
	showCycles   bool
	showOrder    bool
)

var rootCmd = &cobra.Command{
	Use:   "apideps",
	Short: "API dependency closure of program types",
	Long: `A CLI tool that computes every type a set of seed types needs in order
to be usable: the reflexive transitive closure under API dependency.

A type depends on the types in its exported surface: parameters, results,
thrown or error types, field types, supertypes, implemented contracts,
nested and enclosing types. Array types stand for their element type and
primitive types are ignored.

Type metadata comes from one of three providers:
  - go:     Go packages, loaded with the go command
  - schema: a YAML file describing a type universe
  - mysql:  a catalog of type metadata in MySQL`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "apideps.yaml",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Provider overrides
	rootCmd.PersistentFlags().StringVarP(&providerKind, "provider", "p", "",
		"Override type metadata provider (go, schema, mysql)")
	rootCmd.PersistentFlags().StringVar(&goDir, "dir", "",
		"Override directory the go provider loads packages from")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "",
		"Override schema file of the schema provider")

	// Seed overrides
	rootCmd.PersistentFlags().StringVar(&catalogName, "catalog", "",
		"Built-in seed catalog (see 'apideps catalogs')")
	rootCmd.PersistentFlags().StringSliceVarP(&seedNames, "seed", "s", nil,
		"Seed type name, repeatable")

	// Report overrides
	rootCmd.PersistentFlags().StringVarP(&reportFormat, "format", "f", "",
		"Override report format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		Provider:     providerKind,
		GoDir:        goDir,
		SchemaPath:   schemaPath,
		Catalog:      catalogName,
		Seeds:        seedNames,
		ReportFormat: reportFormat,
		NoColor:      noColor,
		Members:      showMembers,
		Cycles:       showCycles,
		Order:        showOrder,
	}
}
