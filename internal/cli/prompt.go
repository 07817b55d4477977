package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/tui"
)

// interactive reports whether prompts can be answered. Tests replace it.
var interactive = tui.IsTTY //nolint:gochecknoglobals // Overridden in tests.

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// Confirm asks a yes/no question and defaults to "No".
// It returns immediately with Accepted=false in non-interactive (non-TTY) environments.
//
// Valid inputs: "y", "Y", "yes", "Yes", "YES" for acceptance; anything else declines.
func Confirm(writer io.Writer, reader io.Reader, message string) PromptResult {
	if !interactive() {
		return PromptResult{Accepted: false}
	}

	fmt.Fprintf(writer, "? %s [y/N] ", message)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error (Ctrl+D) declines.
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

// confirmDestructive asks before a destructive command unless --yes was given.
func confirmDestructive(cmd *cobra.Command, yes bool, message string) error {
	if yes {
		return nil
	}
	result := Confirm(cmd.ErrOrStderr(), cmd.InOrStdin(), message)
	if !result.Accepted {
		logger.Info().Ctx(cmd.Context()).
			Str("command", cmd.CommandPath()).
			Bool("cancelled", result.Cancelled).
			Msg("confirmation declined")
		return ErrAborted
	}
	return nil
}

// addYesFlag registers --yes on a destructive command.
func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "skip the confirmation prompt")
}
