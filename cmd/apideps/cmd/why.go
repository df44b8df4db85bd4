package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/report"
	"github.com/dbsmedya/apideps/internal/typesys"
)

var whyCmd = &cobra.Command{
	Use:   "why <type>",
	Short: "Explain why a type is part of the closure",
	Long: `Why computes the closure of the seed types and prints the chain of
discoveries that first led from a seed to the given type. Each hop names
the relation (param, result, throws, field, supertype, contract, nested,
enclosing) and the member that mentioned the next type. The types that
depend on the given type directly are listed after the chain. Array types
stand for their element type.

Example:
  apideps why java.lang.ClassLoader --provider schema --schema lang.yaml --catalog jls3`,
	Args: cobra.ExactArgs(1),
	RunE: runWhy,
}

func init() {
	rootCmd.AddCommand(whyCmd)
}

func runWhy(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	target, err := s.provider.Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", args[0], err)
	}
	target = typesys.UltimateElement(s.provider, target)

	api, err := s.computeClosure(ctx)
	if err != nil {
		return fmt.Errorf("closure failed: %w", err)
	}

	r, err := report.New(cmd.OutOrStdout(), reportOptions(s))
	if err != nil {
		return err
	}
	return r.Why(api, target)
}
