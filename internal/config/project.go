package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/dealerdesk/internal/logging"
)

// EnvProjectDir points at a project-local .dealerdesk directory.
const EnvProjectDir = "DEALERDESK_PROJECT_DIR"

var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once per command from the root PersistentPreRunE.
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir.
)

// SetResolvedProjectDir stores the project directory resolved for this process.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .dealerdesk directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. DEALERDESK_PROJECT_DIR env var
//  3. a walk up from startDir looking for a .dealerdesk/config.yaml
//
// Returns the absolute directory path or "" when none is found.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}

	globalDir, _ := GetConfigDir()
	dir := toAbsProjectDir(ctx, startDir)
	for {
		if dir != globalDir {
			if _, err := os.Stat(filepath.Join(dir, configFileName)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(filepath.Dir(dir))
		next := filepath.Join(parent, configDirName)
		if next == dir {
			return ""
		}
		dir = next
	}
}

// NewWithProjectDir creates a Config by loading the global config then
// shallow-merging the project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}
	// Environment variables still win over the overlay.
	merged.ApplyEnvOverrides()

	return merged
}

// toAbsProjectDir converts dir to an absolute path ending in ".dealerdesk".
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}

	return filepath.Join(abs, configDirName)
}
