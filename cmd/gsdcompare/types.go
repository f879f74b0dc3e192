package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

var typesSchema string

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered record types",
	Long: `List every record type the delta command can compare, with its
section/subsection tuple and declared field count.

Examples:
  gsd-compare types
  gsd-compare types --schema TYPES.toml`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().StringVar(&typesSchema, "schema", "", "Schema overlay TOML registering additional record types")
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	reg := schema.NewRegistry()
	if typesSchema != "" {
		if err := schema.LoadOverlay(typesSchema, reg); err != nil {
			return err
		}
	}

	fmt.Printf("%-6s %-10s %-12s %s\n", "TYPE", "SECTION", "SUBSECTION", "FIELDS")
	for _, code := range reg.Codes() {
		spec, _ := reg.Lookup(code)
		sub := spec.Subsection
		if sub == " " {
			sub = "(blank)"
		}
		fmt.Printf("%-6s %-10s %-12s %d\n", spec.Code, spec.Section, sub, len(spec.Columns))
	}
	return nil
}
