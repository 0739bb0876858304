package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/sanixdarker/gqlpath/internal/catalog"
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
)

var (
	runsPage     int
	runsPageSize int
	runsFormat   string
	runsOutput   string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived generation runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := application.Catalog()
		if err != nil {
			return err
		}
		page, err := svc.ListRuns(runsPage, runsPageSize)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(page.Runs) == 0 {
			fmt.Fprintln(out, "No runs archived.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tROOT\tTARGET\tPATHS")
		for _, r := range page.Runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Root, r.Target, r.PathCount)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "page %d, %d of %d runs\n", page.Page, len(page.Runs), page.Total)
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an archived run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := findRun(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

var runsExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Write the bodies of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := findRun(args[0])
		if err != nil {
			return err
		}
		bodies := make([]querygen.QueryBody, len(run.Bodies))
		for i, b := range run.Bodies {
			bodies[i] = b.Body
		}

		if runsOutput == "" {
			return console.WriteBodies(cmd.OutOrStdout(), bodies, runsFormat)
		}
		if err := writeOutput(runsOutput, runsFormat, bodies); err != nil {
			return err
		}
		application.Logger.Info("exported run", "id", run.ID, "path", runsOutput)
		return nil
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := application.Catalog()
		if err != nil {
			return err
		}
		found, err := svc.DeleteRun(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("run not found: %s", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
		return nil
	},
}

func findRun(id string) (*catalog.Run, error) {
	svc, err := application.Catalog()
	if err != nil {
		return nil, err
	}
	run, err := svc.GetRun(id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return run, nil
}

func init() {
	runsListCmd.Flags().IntVar(&runsPage, "page", 1, "Page number")
	runsListCmd.Flags().IntVar(&runsPageSize, "page-size", 20, "Runs per page (max 100)")
	runsExportCmd.Flags().StringVarP(&runsFormat, "format", "f", config.FormatNDJSON, "Output format: ndjson or json-array")
	runsExportCmd.Flags().StringVarP(&runsOutput, "out", "o", "", "Output file (default: stdout)")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsExportCmd, runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}
