package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/config"
	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/logging"
	"github.com/artyom-g-dv/grandiose/internal/mdns"
	"github.com/artyom-g-dv/grandiose/internal/ui"
)

var (
	findFlags    discoveryFlags
	findTimeout  int
	findFormat   string
	findNoRecord bool
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find sources on the network",
	Long: `Search for sources until at least one is found or the timeout expires.

The search stops as soon as any source is reported, so a single fast source
may be returned before slower ones appear. Use 'grandiose watch' to see the
full list as it grows.`,
	Example: `  # Search with the configured timeout (10 seconds by default)
  grandiose find

  # Quick 2-second search in two groups
  grandiose find --timeout-ms 2000 --group public --group studio

  # Include a peer on another subnet, JSON output for scripting
  grandiose find --extra-ip 10.1.2.3 --format json`,
	RunE: runFind,
}

func init() {
	findFlags.register(findCmd)
	findCmd.Flags().IntVar(&findTimeout, "timeout-ms", 0, "Search timeout in milliseconds (0 = configured default)")
	findCmd.Flags().StringVar(&findFormat, "format", "table", "Output format (table, json)")
	findCmd.Flags().BoolVar(&findNoRecord, "no-record", false, "Do not remember found sources in the config file")

	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if findFormat != "table" && findFormat != "json" {
		return fmt.Errorf("unknown output format %q (expected table or json)", findFormat)
	}

	reg := loadRegistry()
	opts := findFlags.options(cmd, reg)
	wait := reg.Wait()
	if cmd.Flags().Changed("timeout-ms") {
		wait = discovery.WaitFromMillis(findTimeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if findFormat == "table" {
		fmt.Fprintf(out, "Searching for sources (timeout: %s)...\n\n", wait)
	}

	sources, err := discovery.Find(ctx, mdns.New, opts, wait)
	switch {
	case discovery.IsTimeout(err):
		return reportNoSources(out, findFormat, wait, opts)
	case err != nil:
		return fmt.Errorf("discovery failed: %w", err)
	}

	if !findNoRecord {
		recordSources(reg, sources)
	}

	if findFormat == "json" {
		return writeJSON(out, sources)
	}
	p := ui.NewPrinter(out)
	p.PrintSources(sources, reg.DisplayName)
	p.Println(fmt.Sprintf("\nFound %d source(s). Use 'grandiose watch' to keep listening.", len(sources)))
	return nil
}

func reportNoSources(out io.Writer, format string, wait time.Duration, opts *discovery.Options) error {
	if format == "json" {
		return writeJSON(out, []discovery.Source{})
	}

	result := ui.NewFailureResult("No sources found", fmt.Errorf("nothing was advertised within %s", wait), []string{
		"Check that the sender is running and on the same network",
		"Multicast (UDP 5353) must not be blocked by a firewall or VPN",
		"Try a longer --timeout-ms",
		"Use --extra-ip for senders on another subnet",
	})
	if groups, ok := opts.Groups.Normalize(); ok {
		result.AddDetail("Groups", groups)
	}
	if extra, ok := opts.ExtraIPs.Normalize(); ok {
		result.AddDetail("Extra IPs", extra)
	}
	ui.NewPrinter(out).PrintResult(result)
	return nil
}

func recordSources(reg *config.Registry, sources []discovery.Source) {
	reg.RecordSources(sources, time.Now())
	if err := reg.Save(); err != nil {
		logging.Warn("Failed to record sources", zap.Error(err))
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
