package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanixdarker/gqlpath/internal/httpreq"
	"github.com/sanixdarker/gqlpath/internal/ssh"
	"github.com/sanixdarker/gqlpath/internal/tui"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
)

var (
	browseSchema string
	browseTarget string
	browseRun    string
	browseSSH    bool
	browsePort   int
	browseKey    string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse paths and their queries in the terminal",
	Long: `Open a terminal browser over the paths to a target type, or over an
archived run. Use up/down (or j/k) to move, enter to view a body, tab to
switch between the body and the raw HTTP request, esc to go back and q to
quit. With --ssh the same browser is served to SSH clients instead.

Examples:
  gqlpath browse -s schema.json -t User
  gqlpath browse --run 6f1c2a4e-...
  gqlpath browse -s schema.json -t User --ssh --ssh-port 2222`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			title   string
			entries []tui.Entry
			err     error
		)
		if browseRun != "" {
			title, entries, err = runEntries(browseRun)
		} else {
			title, entries, err = generatedEntries(cmd)
		}
		if err != nil {
			return err
		}
		if browseSSH {
			return serveSSH(title, entries)
		}
		return tui.Run(tui.NewModel(title, entries))
	},
}

func serveSSH(title string, entries []tui.Entry) error {
	srv, err := ssh.New(ssh.Config{
		Port:    browsePort,
		KeyPath: browseKey,
		Title:   title,
		Entries: entries,
		Logger:  application.Logger,
	})
	if err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		application.Logger.Info("shutting down SSH browser...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			application.Logger.Error("shutdown failed", "error", err)
		}
	}()

	return srv.ListenAndServe()
}

func generatedEntries(cmd *cobra.Command) (string, []tui.Entry, error) {
	if browseSchema == "" || browseTarget == "" {
		return "", nil, fmt.Errorf("--schema and --target are required unless --run is given")
	}
	if err := applyGenerationFlags(cmd, cfg); err != nil {
		return "", nil, err
	}

	schema, err := introspection.LoadFile(browseSchema)
	if err != nil {
		return "", nil, err
	}
	gen, err := querygen.New(schema, cfg.Options())
	if err != nil {
		return "", nil, err
	}
	res, err := gen.Generate(cfg.Root, browseTarget)
	if err != nil {
		return "", nil, err
	}

	entries, err := toEntries(res.Labels, res.Bodies)
	return fmt.Sprintf("Paths from %s to %s", res.Root, res.Target), entries, err
}

func runEntries(id string) (string, []tui.Entry, error) {
	run, err := findRun(id)
	if err != nil {
		return "", nil, err
	}
	labels := make([]string, len(run.Bodies))
	bodies := make([]querygen.QueryBody, len(run.Bodies))
	for i, b := range run.Bodies {
		labels[i] = b.Path
		bodies[i] = b.Body
	}
	entries, err := toEntries(labels, bodies)
	return fmt.Sprintf("Run %s: %s to %s", run.ID, run.Root, run.Target), entries, err
}

func toEntries(labels []string, bodies []querygen.QueryBody) ([]tui.Entry, error) {
	entries := make([]tui.Entry, len(bodies))
	for i, b := range bodies {
		raw, err := httpreq.Build(cfg.Target, b)
		if err != nil {
			return nil, err
		}
		entries[i] = tui.Entry{Body: b, Request: raw}
		if i < len(labels) {
			entries[i].Label = labels[i]
		}
	}
	return entries, nil
}

func init() {
	browseCmd.Flags().StringVarP(&browseSchema, "schema", "s", "", "Path to the introspection result (JSON)")
	browseCmd.Flags().StringVarP(&browseTarget, "target", "t", "", "Target type name")
	browseCmd.Flags().StringVar(&browseRun, "run", "", "Browse an archived run instead")
	browseCmd.Flags().BoolVar(&browseSSH, "ssh", false, "Serve the browser over SSH instead of the local terminal")
	browseCmd.Flags().IntVar(&browsePort, "ssh-port", ssh.DefaultPort, "SSH port to listen on")
	browseCmd.Flags().StringVar(&browseKey, "host-key", "", "SSH host key path (default ~/.ssh/gqlpath_ed25519)")
	addSearchFlags(browseCmd)
	addSynthesisFlags(browseCmd)

	rootCmd.AddCommand(browseCmd)
}
