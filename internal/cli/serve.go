package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveRateLimit float64
	serveBurst     int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON API for path search, query generation, SDL export,
query checks and the run archive.

Examples:
  gqlpath serve
  gqlpath serve --port 9090 --rate-limit 10 --burst 40`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("port") {
			cfg.Server.Port = servePort
		}
		if f.Changed("rate-limit") {
			cfg.Server.RateLimit = serveRateLimit
		}
		if f.Changed("burst") {
			cfg.Server.Burst = serveBurst
		}

		// Fail before listening when the archive cannot be opened.
		if _, err := application.Catalog(); err != nil {
			return err
		}

		srv := server.New(application)

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-done
			application.Logger.Info("shutting down server...")
			if err := srv.Shutdown(); err != nil {
				application.Logger.Error("shutdown failed", "error", err)
			}
		}()

		application.Logger.Info("starting server", "port", cfg.Server.Port, "db", cfg.DBPath)
		fmt.Fprintf(cmd.OutOrStdout(), "gqlpath API running at http://localhost:%d\n", cfg.Server.Port)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	d := config.Default()
	serveCmd.Flags().IntVar(&servePort, "port", d.Server.Port, "HTTP port to listen on")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate-limit", d.Server.RateLimit, "Requests per second per client IP (0 disables)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", d.Server.Burst, "Rate limit burst size")

	rootCmd.AddCommand(serveCmd)
}
