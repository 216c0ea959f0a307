// Grandiose finds network audio/video sources on the local network.
//
// It browses multicast DNS-SD for advertised senders, optionally probes
// explicit peer addresses, and reports what it finds as a table or JSON.
// It can also keep watching the network in a live view, or publish the
// source list over HTTP and WebSocket.
//
// Usage:
//
//	grandiose [command] [flags]
//
// See 'grandiose --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artyom-g-dv/grandiose/internal/logging"
	"github.com/artyom-g-dv/grandiose/internal/version"
)

var logLevel string

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "grandiose",
	Short: "Network A/V source discovery",
	Long: `Discover network audio/video sources advertised on the local network.

Sources are found with multicast DNS-SD. Peers that multicast cannot reach
can be queried directly with --extra-ip. Defaults for every discovery flag
are read from the configuration file (see 'grandiose config path').`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error, off); defaults to $"+logging.LogLevelEnvVar+", silent when unset")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "grandiose %s\n", version.Full())
	},
}
