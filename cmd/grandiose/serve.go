package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/logging"
	"github.com/artyom-g-dv/grandiose/internal/mdns"
	"github.com/artyom-g-dv/grandiose/internal/server"
)

var (
	serveFlags    discoveryFlags
	serveHost     string
	servePort     int
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Publish discovered sources over HTTP and WebSocket",
	Long: `Keep discovering sources and publish them to other programs.

Endpoints:
  GET /sources   current list as JSON
  GET /ws        WebSocket receiving the list on connect and on every change`,
	Example: `  # Local-only feed on the default port
  grandiose serve

  # Listen on all interfaces, refresh twice a second
  grandiose serve --host 0.0.0.0 --port 9000 --interval 500ms`,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 8960, "Listen port")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", server.DefaultInterval, "Refresh interval")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := intervalFlag("interval", serveInterval); err != nil {
		return err
	}

	reg := loadRegistry()
	finder, err := discovery.NewFinder(mdns.New, serveFlags.options(cmd, reg))
	if err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}
	defer func() {
		if err := finder.Close(); err != nil {
			logging.Warn("Failed to close finder", zap.Error(err))
		}
	}()

	srv := server.New(server.Config{Host: serveHost, Port: servePort, Interval: serveInterval}, finder)
	if err := srv.Listen(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving sources on http://%s/sources (Ctrl+C to stop)\n", srv.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
