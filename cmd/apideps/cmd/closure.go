package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/report"
)

var closureCmd = &cobra.Command{
	Use:   "closure",
	Short: "Compute the API closure of the seed types",
	Long: `Closure resolves the seed types, computes every type their APIs depend
on, directly or indirectly, and prints the result.

The report shows:
  - Number of seed types
  - Number of discovered types, namespaces, members and dependencies
  - Namespaces of the closure, sorted
  - Types of the closure, sorted, with seeds marked
  - Members of the closure (--members)
  - Dependency cycles (--cycles)
  - Types in dependency order, dependencies first (--order)

Example:
  apideps closure --provider schema --schema lang.yaml --catalog jls3
  apideps closure --seed net/http.Client --members`,
	RunE: runClosure,
}

func init() {
	closureCmd.Flags().BoolVar(&showMembers, "members", false,
		"Also list the members of the closure")
	closureCmd.Flags().BoolVar(&showCycles, "cycles", false,
		"Report cycles in the dependency graph")
	closureCmd.Flags().BoolVar(&showOrder, "order", false,
		"List the types in dependency order")

	rootCmd.AddCommand(closureCmd)
}

func runClosure(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	api, err := s.computeClosure(ctx)
	if err != nil {
		return fmt.Errorf("closure failed: %w", err)
	}

	r, err := report.New(cmd.OutOrStdout(), reportOptions(s))
	if err != nil {
		return err
	}
	return r.Closure(api)
}

func reportOptions(s *session) report.Options {
	return report.Options{
		Format:  s.cfg.Report.Format,
		Color:   s.cfg.Report.Color,
		Members: s.cfg.Report.Members,
		Cycles:  s.cfg.Report.Cycles,
		Order:   s.cfg.Report.Order,
	}
}
