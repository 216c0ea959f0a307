package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
)

// NameFunc maps a source name to the label shown for it, e.g. a nickname.
type NameFunc func(name string) string

// RenderSources renders sources as a table in the order given.
func RenderSources(sources []discovery.Source, names NameFunc, width int) string {
	if len(sources) == 0 {
		return MutedStyle.Render("No sources found.")
	}

	rows := make([][]string, 0, len(sources))
	for i, src := range sources {
		label := src.Name
		if names != nil {
			if n := names(src.Name); n != "" && n != src.Name {
				label = fmt.Sprintf("%s (%s)", n, src.Name)
			}
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), label, src.URLAddress, metadataSummary(src.Metadata)})
	}

	return RenderTable([]string{"#", "NAME", "URL", "METADATA"}, rows, width)
}

// RenderTable renders rows under headers with the package table styles.
func RenderTable(headers []string, rows [][]string, width int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		Width(clampWidth(width)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Render()
}

// metadataSummary renders TXT metadata as sorted key=value pairs.
func metadataSummary(md map[string]string) string {
	if len(md) == 0 {
		return ""
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		if md[k] == "" {
			parts[i] = k
		} else {
			parts[i] = k + "=" + md[k]
		}
	}
	return strings.Join(parts, " ")
}
