// Package cli provides the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sanixdarker/gqlpath/internal/app"
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
)

var (
	configPath string
	debugMode  bool
	dbPath     string

	cfg         *config.Config
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "gqlpath",
	Short: "Find paths to a GraphQL type and build queries that reach it",
	Long: `gqlpath reads a GraphQL introspection result, finds every way to reach
a target type from a root operation type, and synthesizes a ready-to-send
request body for each path.

Features:
  - Breadth-first path search with depth and count budgets
  - Query synthesis with variables or inline placeholder arguments
  - NDJSON / JSON array output and raw HTTP requests for proxies
  - SDL export and validation of generated queries
  - Run archive, HTTP API and a terminal path browser`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if debugMode {
			loaded.Debug = true
		}
		if cmd.Flags().Changed("db") {
			loaded.DBPath = dbPath
		}
		cfg = loaded
		application = app.New(cfg)
		application.Logger.Debug("loaded configuration", "path", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gqlpath version %s (commit: %s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (or set "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.Default().DBPath, "Path to the SQLite run archive")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Schema and type lookup failures exit with
// status 2, every other failure with status 1.
func Execute() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(exitCode(err))
	}
}

// run executes the command tree and then closes the application. Cobra
// skips post-run hooks when a command fails, so the run archive is closed
// here instead.
func run() error {
	err := rootCmd.Execute()
	if application != nil {
		if cerr := application.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// errorLine formats err for stderr.
func errorLine(err error) string {
	var unknown *querygen.UnknownTypeError
	if errors.As(err, &unknown) {
		role := unknown.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		msg := fmt.Sprintf("[ERROR] %s type %q does not exist in the provided schema.", role, unknown.Name)
		if len(unknown.Suggestions) > 0 {
			msg += " Did you mean: " + strings.Join(unknown.Suggestions, ", ") + "?"
		}
		return msg
	}
	return "[ERROR] " + err.Error()
}

func exitCode(err error) int {
	var unknown *querygen.UnknownTypeError
	var load *introspection.SchemaLoadError
	if errors.As(err, &unknown) || errors.As(err, &load) {
		return 2
	}
	return 1
}
