package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/artyom-g-dv/grandiose/internal/format"
	"github.com/artyom-g-dv/grandiose/internal/ui"
)

var formatsOutput string

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List color formats, bandwidths, frame formats and audio formats",
	Long: `List every configuration enumeration with its name and numeric value.

Names are accepted case-insensitively in the config file, with '-' or '_'.`,
	RunE: runFormats,
}

func init() {
	formatsCmd.Flags().StringVar(&formatsOutput, "format", "table", "Output format (table, json)")
	rootCmd.AddCommand(formatsCmd)
}

type formatEntry struct {
	Family string `json:"family"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
}

func formatEntries() []formatEntry {
	var entries []formatEntry
	for _, v := range format.AllColorFormats() {
		entries = append(entries, formatEntry{"color_format", v.String(), int(v)})
	}
	for _, v := range format.AllBandwidths() {
		entries = append(entries, formatEntry{"bandwidth", v.String(), int(v)})
	}
	for _, v := range format.AllFrameFormatTypes() {
		entries = append(entries, formatEntry{"frame_format", v.String(), int(v)})
	}
	for _, v := range format.AllAudioFormats() {
		entries = append(entries, formatEntry{"audio_format", v.String(), int(v)})
	}
	return entries
}

func runFormats(cmd *cobra.Command, args []string) error {
	entries := formatEntries()

	switch formatsOutput {
	case "json":
		return writeJSON(cmd.OutOrStdout(), entries)
	case "table":
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{e.Family, e.Name, strconv.Itoa(e.Value)}
		}
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.Println(ui.RenderTable([]string{"FAMILY", "NAME", "VALUE"}, rows, p.Width()))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", formatsOutput)
	}
}
