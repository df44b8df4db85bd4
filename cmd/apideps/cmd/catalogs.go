package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/apideps/internal/catalog"
)

var catalogsVerbose bool

var catalogsCmd = &cobra.Command{
	Use:   "catalogs [name]",
	Short: "List the built-in seed catalogs",
	Long: `Catalogs lists the built-in seed catalogs along with their provider
and size. Given a catalog name it lists the catalog's types and where the
specification requires each of them.

Example:
  apideps catalogs
  apideps catalogs jls3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogs,
}

func init() {
	catalogsCmd.Flags().BoolVarP(&catalogsVerbose, "verbose", "v", false,
		"Also show the note of each type")

	rootCmd.AddCommand(catalogsCmd)
}

func runCatalogs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		c, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}
		printCatalog(cmd, c)
		return nil
	}

	all := catalog.All()
	cmd.Printf("Built-in catalogs:\n\n")

	for i, c := range all {
		cmd.Printf("%d. %s\n", i+1, c.Name)
		cmd.Printf("   Title:       %s\n", c.Title)
		cmd.Printf("   Provider:    %s\n", c.Provider)
		cmd.Printf("   Types:       %d\n", len(c.Entries))
		if c.Description != "" {
			cmd.Printf("   Description: %s\n", c.Description)
		}

		if i < len(all)-1 {
			cmd.Println()
		}
	}

	cmd.Printf("\nTotal: %d catalog(s)\n", len(all))
	return nil
}

func printCatalog(cmd *cobra.Command, c *catalog.Catalog) {
	cmd.Printf("%s: %s\n", c.Name, c.Title)
	cmd.Printf("Provider: %s\n\n", c.Provider)

	width := 0
	for _, e := range c.Entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}

	for _, e := range c.Entries {
		line := fmt.Sprintf("  %-*s  %s", width, e.Name, e.Reference)
		if catalogsVerbose && e.Note != "" {
			line += "  (" + e.Note + ")"
		}
		cmd.Println(line)
	}

	cmd.Printf("\nTotal: %d type(s)\n", len(c.Entries))
}
