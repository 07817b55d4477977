package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/cache"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/export"
)

const cacheDisabledMsg = "Cache is disabled (cache.enabled=false)"

// openCache opens the reference-data cache described by cfg.
func openCache(cfg *config.Config) (*cache.Store, error) {
	return cache.New(cache.Options{
		Directory:  cfg.Cache.Directory,
		Enabled:    cfg.Cache.Enabled,
		TTLSeconds: cfg.Cache.TTLSeconds,
		MaxSizeMB:  cfg.Cache.MaxSizeMB,
	})
}

// NewCacheClearCmd removes every cached catalog entry.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.Enabled() {
				cmd.Println(cacheDisabledMsg)
				return nil
			}
			n, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logger.Info().Ctx(cmd.Context()).Str("operation", "cache_clear").Int("removed", n).Msg("cache cleared")
			cmd.Printf("Removed %d cache entries from %s\n", n, store.Dir())
			return nil
		},
	}
}

// NewCacheCleanupCmd removes expired entries only.
func NewCacheCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.Enabled() {
				cmd.Println(cacheDisabledMsg)
				return nil
			}
			n, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("cleaning cache: %w", err)
			}
			logger.Info().Ctx(cmd.Context()).Str("operation", "cache_cleanup").Int("removed", n).Msg("expired entries removed")
			cmd.Printf("Removed %d expired cache entries\n", n)
			return nil
		},
	}
}

type cacheStatsView struct {
	Directory string `json:"directory"`
	Enabled   bool   `json:"enabled"`
	TTL       string `json:"ttl"`
	Entries   int    `json:"entries"`
	Expired   int    `json:"expired"`
	SizeBytes int64  `json:"size_bytes"`
}

// NewCacheStatsCmd reports entry counts and disk usage.
func NewCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			var stats cache.Stats
			if store.Enabled() {
				if stats, err = store.Stats(); err != nil {
					return fmt.Errorf("reading cache: %w", err)
				}
			}
			view := cacheStatsView{
				Directory: store.Dir(),
				Enabled:   store.Enabled(),
				TTL:       cache.FormatDuration(store.TTL()),
				Entries:   stats.Entries,
				Expired:   stats.Expired,
				SizeBytes: stats.Bytes,
			}

			w := cmd.OutOrStdout()
			if outputFormat(cmd) == config.FormatJSON {
				return export.WriteJSON(w, view, true)
			}
			return renderTable(w, export.Table{
				Columns: []string{"Setting", "Value"},
				Rows: [][]string{
					{"Directory", view.Directory},
					{"Enabled", fmt.Sprint(view.Enabled)},
					{"TTL", view.TTL},
					{"Entries", fmt.Sprint(view.Entries)},
					{"Expired", fmt.Sprint(view.Expired)},
					{"Size", fmt.Sprintf("%.1f KB", float64(view.SizeBytes)/1024)},
				},
			})
		},
	}
}
