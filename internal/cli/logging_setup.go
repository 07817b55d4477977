package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
// Commands annotated with annotationLogToFile always log to a file so the
// terminal stays clean for the interactive UI.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	ownsTerminal := cmd.Annotations[annotationLogToFile] != ""
	if ownsTerminal && loggingCfg.File == "" {
		loggingCfg.File = config.DefaultLogFile()
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	result := logging.NewLoggerWithPath(logCfg)
	if ownsTerminal && result.FallbackUsed {
		// Never write to the terminal the dashboard draws on.
		logCfg.Output = logging.OutputDiscard
		reason := result.FallbackReason
		result = logging.NewLoggerWithPath(logCfg)
		result.FallbackUsed = true
		result.FallbackReason = reason
	}
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !ownsTerminal {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Int("pid", os.Getpid()).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.CommandPath()).Msg("command finished")
	return logResult.Close()
}
