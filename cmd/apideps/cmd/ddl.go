package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/provider/sqlcatalog"
)

var ddlPrefix string

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Print the schema of the MySQL type catalog",
	Long: `DDL prints the CREATE TABLE statements of the tables the mysql
provider reads type metadata from. The table prefix defaults to the one
in the configuration.

Example:
  apideps ddl --prefix api_ | mysql api_catalog`,
	RunE: runDDL,
}

func init() {
	ddlCmd.Flags().StringVar(&ddlPrefix, "prefix", "",
		"Table name prefix (default from configuration)")

	rootCmd.AddCommand(ddlCmd)
}

func runDDL(cmd *cobra.Command, args []string) error {
	prefix := ddlPrefix
	if prefix == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		prefix = cfg.Provider.MySQL.TablePrefix
	}

	stmts, err := sqlcatalog.DDL(prefix)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		fmt.Fprintf(cmd.OutOrStdout(), "%s;\n\n", stmt)
	}
	return nil
}
