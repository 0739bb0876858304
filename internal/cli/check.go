package cli

import (
	"fmt"
	"os"

	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/spf13/cobra"
)

var checkSchema string

var checkCmd = &cobra.Command{
	Use:   "check [bodies-file]",
	Short: "Validate generated request bodies against a schema",
	Long: `Parse every body of an NDJSON or JSON array file and validate its query
against the schema. Exits with status 1 when any body fails.

Examples:
  gqlpath check -s schema.json bodies.ndjson`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := introspection.LoadFile(checkSchema)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read bodies file: %w", err)
		}
		bodies, err := console.ReadBodies(data)
		if err != nil {
			return err
		}

		if err := checkBodies(cmd, schema, bodies); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d queries valid\n", len(bodies))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkSchema, "schema", "s", "", "Path to the introspection result (JSON)")
	checkCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(checkCmd)
}
