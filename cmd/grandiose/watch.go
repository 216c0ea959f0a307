package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/logging"
	"github.com/artyom-g-dv/grandiose/internal/mdns"
	"github.com/artyom-g-dv/grandiose/internal/ui"
)

var (
	watchFlags    discoveryFlags
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show sources live as they appear and disappear",
	Example: `  grandiose watch
  grandiose watch --group studio --interval 500ms`,
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "Refresh interval")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := intervalFlag("interval", watchInterval); err != nil {
		return err
	}

	reg := loadRegistry()
	finder, err := discovery.NewFinder(mdns.New, watchFlags.options(cmd, reg))
	if err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}
	defer func() {
		if err := finder.Close(); err != nil {
			logging.Warn("Failed to close finder", zap.Error(err))
		}
	}()

	return ui.RunWatch(finder, watchInterval, reg.DisplayName)
}
