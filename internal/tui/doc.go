// Package tui implements the interactive dealerdesk dashboard with Bubble Tea.
//
// Every list screen wraps a listview.ListView. Fetches run as tea.Cmds fenced
// by request id; a result whose id is not the latest one is discarded. Logs
// from this package go to the log file only.
package tui
