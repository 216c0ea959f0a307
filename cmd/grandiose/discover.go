package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/config"
	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/logging"
)

// discoveryFlags are shared by find, watch and serve.
type discoveryFlags struct {
	groups   []string
	extraIPs []string
	noLocal  bool
}

func (f *discoveryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.groups, "group", nil, "Only find sources in this group (repeatable, or comma-separated)")
	cmd.Flags().StringSliceVar(&f.extraIPs, "extra-ip", nil, "Also query this address directly, as host or host:port (repeatable)")
	cmd.Flags().BoolVar(&f.noLocal, "no-local", false, "Hide sources running on this machine")
}

// options starts from the configured defaults and applies the flags the user
// actually set.
func (f *discoveryFlags) options(cmd *cobra.Command, reg *config.Registry) *discovery.Options {
	opts := reg.DiscoveryOptions()
	if cmd.Flags().Changed("group") {
		opts.Groups = discovery.FilterList(f.groups...)
	}
	if cmd.Flags().Changed("extra-ip") {
		opts.ExtraIPs = discovery.FilterList(f.extraIPs...)
	}
	if cmd.Flags().Changed("no-local") {
		opts.ShowLocalSources = discovery.Bool(!f.noLocal)
	}
	return opts
}

// loadRegistry returns the user configuration, or defaults when the file
// cannot be read.
func loadRegistry() *config.Registry {
	reg, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Ignoring unreadable config file", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.NewRegistry()
	}
	return reg
}

// intervalFlag validates a polling interval flag.
func intervalFlag(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("--%s must be positive, got %s", name, d)
	}
	return nil
}
