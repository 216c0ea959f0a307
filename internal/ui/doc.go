// Package ui renders grandiose terminal output with Lipgloss and Bubble Tea.
//
// One-shot commands print a source table (RenderSources) and a result box
// (Result) through a Printer. The watch command runs WatchModel, which polls
// a SourceLister on an interval and redraws the table until the user quits.
//
// Logging is controlled separately via GRANDIOSE_LOG_LEVEL. When it is unset
// zap is silent so the styled output stays clean.
package ui
