package cli

import (
	"fmt"
	"os"

	"github.com/sanixdarker/gqlpath/internal/check"
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/internal/httpreq"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
)

var (
	genSchema      string
	genTarget      string
	genOut         string
	genFormat      string
	genPathsOnly   bool
	genRawRequests string
	genSave        bool
	genCheck       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a query for every path from the root to a target type",
	Long: `Find every path from the root type to the target type and build a
request body ({query, operationName, variables}) that reaches it.

Examples:
  gqlpath generate -s schema.json -t User
  gqlpath generate -s schema.json -t User -o bodies.ndjson -m burp
  gqlpath generate -s schema.json -t Post -a inline -b
  gqlpath generate -s schema.json -t User --raw-requests ./requests --save`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyGenerationFlags(cmd, cfg); err != nil {
			return err
		}
		applyConsoleFlags(cmd, cfg)
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = genFormat
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		schema, err := introspection.LoadFile(genSchema)
		if err != nil {
			return err
		}
		application.Logger.Debug("loaded schema", "path", genSchema, "types", schema.Len())

		gen, err := querygen.New(schema, cfg.Options())
		if err != nil {
			return err
		}

		printer, closeLog, err := newPrinter(cmd, cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		if genPathsOnly {
			paths, err := gen.Paths(cfg.Root, genTarget)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return noPaths(printer, cfg)
			}
			labels := make([]string, len(paths))
			for i, p := range paths {
				labels[i] = p.String()
			}
			printer.Found(len(paths), genTarget)
			printer.Paths(labels)
			return printer.Err()
		}

		res, err := gen.Generate(cfg.Root, genTarget)
		if err != nil {
			return err
		}
		if len(res.Paths) == 0 {
			return noPaths(printer, cfg)
		}

		if genOut != "" {
			if err := writeOutput(genOut, cfg.Output.Format, res.Bodies); err != nil {
				return err
			}
		}

		printer.Found(len(res.Paths), genTarget)
		printer.Bodies(res.Labels, res.Bodies)
		if genOut != "" {
			printer.Saved(genOut)
		}
		if err := printer.Err(); err != nil {
			return err
		}

		if genRawRequests != "" {
			files, err := httpreq.WriteFiles(genRawRequests, cfg.Target, res.Bodies)
			if err != nil {
				return err
			}
			application.Logger.Info("wrote raw requests", "dir", genRawRequests, "files", len(files), "url", httpreq.URL(cfg.Target))
		}

		if genSave {
			if err := saveRun(schema, res); err != nil {
				return err
			}
		}

		if genCheck {
			return checkBodies(cmd, schema, res.Bodies)
		}
		return nil
	},
}

// noPaths reports an unreachable target and leaves an empty output file
// behind when one was requested.
func noPaths(printer *console.Printer, c *config.Config) error {
	printer.NoPaths(c.Root, genTarget)
	if genOut != "" {
		if err := writeOutput(genOut, c.Output.Format, nil); err != nil {
			return err
		}
	}
	return printer.Err()
}

func saveRun(schema *introspection.Schema, res *querygen.Result) error {
	raw, err := os.ReadFile(genSchema)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	svc, err := application.Catalog()
	if err != nil {
		return err
	}
	run, err := svc.SaveResult(raw, schema.OperationFor(res.Root), cfg.Options(), res)
	if err != nil {
		return err
	}
	application.Logger.Info("saved run", "id", run.ID, "bodies", len(run.Bodies))
	return nil
}

func checkBodies(cmd *cobra.Command, schema *introspection.Schema, bodies []querygen.QueryBody) error {
	checker, err := check.New(schema)
	if err != nil {
		return err
	}
	results := checker.All(bodies)
	for _, r := range results {
		for _, e := range r.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%d] %s: %s\n", r.Index, r.OperationName, e)
		}
	}
	if n := check.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d queries failed validation", n, len(results))
	}
	application.Logger.Info("all queries valid", "count", len(results))
	return nil
}

func init() {
	d := config.Default()
	f := generateCmd.Flags()
	f.StringVarP(&genSchema, "schema", "s", "", "Path to the introspection result (JSON)")
	f.StringVarP(&genTarget, "target", "t", "", "Target type name (e.g. User)")
	f.StringVarP(&genOut, "out", "o", "", "Output file; nothing is written when empty")
	f.StringVarP(&genFormat, "format", "f", d.Output.Format, "Output file format: ndjson or json-array")
	f.BoolVarP(&genPathsOnly, "paths-only", "p", false, "Only print the paths")
	f.StringVar(&genRawRequests, "raw-requests", "", "Write one raw HTTP request per body into this directory")
	f.BoolVar(&genSave, "save", false, "Archive the run in the database")
	f.BoolVar(&genCheck, "check", false, "Validate every generated query against the schema")
	generateCmd.MarkFlagRequired("schema")
	generateCmd.MarkFlagRequired("target")

	addSearchFlags(generateCmd)
	addSynthesisFlags(generateCmd)
	addConsoleFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
}
