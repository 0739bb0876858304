package cli

import (
	"encoding/json"

	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
)

var (
	pathsSchema string
	pathsTarget string
	pathsJSON   bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the paths from the root to a target type",
	Long: `List every path from the root type to the target type, shortest first.

Examples:
  gqlpath paths -s schema.json -t User
  gqlpath paths -s schema.json -t Comment -D 4 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyGenerationFlags(cmd, cfg); err != nil {
			return err
		}

		schema, err := introspection.LoadFile(pathsSchema)
		if err != nil {
			return err
		}
		gen, err := querygen.New(schema, cfg.Options())
		if err != nil {
			return err
		}
		paths, err := gen.Paths(cfg.Root, pathsTarget)
		if err != nil {
			return err
		}

		if pathsJSON {
			if paths == nil {
				paths = []querygen.Path{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(paths)
		}

		styles := console.DefaultStyles()
		if !cfg.Output.Color {
			styles = console.PlainStyles()
		}
		printer := console.NewPrinter(cmd.OutOrStdout(), nil, styles, cfg.Output.ConsoleMode, cfg.Output.Separator)
		if len(paths) == 0 {
			printer.NoPaths(cfg.Root, pathsTarget)
			return printer.Err()
		}
		labels := make([]string, len(paths))
		for i, p := range paths {
			labels[i] = p.String()
		}
		printer.Found(len(paths), pathsTarget)
		printer.Paths(labels)
		return printer.Err()
	},
}

func init() {
	pathsCmd.Flags().StringVarP(&pathsSchema, "schema", "s", "", "Path to the introspection result (JSON)")
	pathsCmd.Flags().StringVarP(&pathsTarget, "target", "t", "", "Target type name")
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Print the paths as JSON steps")
	pathsCmd.MarkFlagRequired("schema")
	pathsCmd.MarkFlagRequired("target")
	addSearchFlags(pathsCmd)

	rootCmd.AddCommand(pathsCmd)
}
