package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/catalog"
	"github.com/dbsmedya/apideps/internal/logger"
	"github.com/dbsmedya/apideps/internal/typesys"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and seed types",
	Long: `Validate checks the configuration and makes sure every seed type can
be resolved, without computing the closure.

Checks performed:
  - Configuration syntax and required fields
  - Seed catalog existence
  - Provider availability (schema file, catalog database connectivity)
  - Seed type resolution

Example:
  apideps validate --config apideps.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(out, "Provider: %s\n\n", cfg.Provider.Kind)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "❌ Configuration invalid:\n%v\n", err)
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(out, "✅ Configuration valid\n")

	if cfg.Seeds.Catalog != "" {
		c, err := catalog.Lookup(cfg.Seeds.Catalog)
		if err != nil {
			fmt.Fprintf(out, "❌ %v\n", err)
			return fmt.Errorf("validation failed")
		}
		fmt.Fprintf(out, "✅ Catalog %s: %d type(s)\n", c.Name, len(c.Entries))
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	p, closer, err := newProvider(ctx, cfg, log.WithProvider(cfg.Provider.Kind))
	if err != nil {
		fmt.Fprintf(out, "❌ Provider unavailable: %v\n", err)
		return fmt.Errorf("validation failed")
	}
	defer closer()
	fmt.Fprintf(out, "✅ Provider %s available\n", cfg.Provider.Kind)

	names, err := cfg.SeedNames(catalog.SeedNames)
	if err != nil {
		return err
	}

	failed := 0
	for _, name := range names {
		if _, err := p.Resolve(ctx, name); err != nil {
			fmt.Fprintf(out, "❌ %v\n", &typesys.ResolutionError{Name: name, Err: err})
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(out, "\n%d of %d seed type(s) could not be resolved\n", failed, len(names))
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(out, "✅ All %d seed type(s) resolved\n", len(names))

	fmt.Fprintln(out, "\n=== Validation Complete ===")
	return nil
}
