package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/spf13/cobra"
)

var sdlOutput string

var sdlCmd = &cobra.Command{
	Use:   "sdl [schema.json]",
	Short: "Convert an introspection result to SDL",
	Long: `Convert an introspection result to GraphQL schema definition language.
Introspection meta-types and built-in scalars are left out.

Examples:
  gqlpath sdl schema.json
  gqlpath sdl schema.json -o schema.graphql`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := introspection.LoadFile(args[0])
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if sdlOutput != "" {
			f, err := os.Create(sdlOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if _, err := io.WriteString(w, schema.SDL()); err != nil {
			return fmt.Errorf("failed to write SDL: %w", err)
		}
		if sdlOutput != "" {
			application.Logger.Info("wrote SDL", "path", sdlOutput, "types", schema.Len())
		}
		return nil
	},
}

func init() {
	sdlCmd.Flags().StringVarP(&sdlOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(sdlCmd)
}
