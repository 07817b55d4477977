package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/api"
	"github.com/rshade/dealerdesk/internal/cache"
	"github.com/rshade/dealerdesk/internal/catalog"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/model"
	"github.com/rshade/dealerdesk/internal/session"
)

// Output formats accepted by --output.
//
//nolint:gochecknoglobals // Static list of formats.
var outputFormats = []string{config.FormatTable, config.FormatJSON, config.FormatCSV}

// CLI errors.
var (
	ErrInvalidOutput = errors.New("invalid output format")
	ErrAborted       = errors.New("aborted: confirmation declined (use --yes to skip)")
	ErrNotFound      = errors.New("not found")
)

// appDeps bundles the collaborators a backend command talks to.
type appDeps struct {
	cfg     *config.Config
	session *session.AppContext
	client  *api.Client
	cache   *cache.Store
	catalog *catalog.Loader
}

// newAppDeps builds the session, API client, cache and catalog loader from
// the global config and the root flags. A corrupt session file or an unusable
// cache directory degrades to a signed-out session and no caching.
func newAppDeps(cmd *cobra.Command) (*appDeps, error) {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	baseURL := cfg.API.BaseURL
	if flagURL, _ := cmd.Flags().GetString("api-url"); flagURL != "" {
		baseURL = flagURL
	}

	if err := config.EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}

	sess, err := session.New(session.NewStore(dir))
	if err != nil {
		logger.Warn().Ctx(ctx).
			Str("operation", "load_session").
			Err(err).
			Msg("ignoring unreadable session file")
	}

	client := api.NewClient(baseURL, sess,
		api.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second))

	store, err := openCache(cfg)
	if err != nil {
		logger.Warn().Ctx(ctx).
			Str("operation", "open_cache").
			Str("directory", cfg.Cache.Directory).
			Err(err).
			Msg("catalog cache disabled")
		store = nil
	}

	logger.Debug().Ctx(ctx).
		Str("base_url", baseURL).
		Bool("authenticated", sess.IsAuthenticated()).
		Bool("cache_enabled", store != nil && store.Enabled()).
		Msg("dependencies ready")

	return &appDeps{
		cfg:     cfg,
		session: sess,
		client:  client,
		cache:   store,
		catalog: catalog.NewLoader(client, store, baseURL),
	}, nil
}

// newAuthedDeps is newAppDeps for commands that need a signed-in session.
func newAuthedDeps(cmd *cobra.Command) (*appDeps, error) {
	deps, err := newAppDeps(cmd)
	if err != nil {
		return nil, err
	}
	if err := deps.session.RequireAuth(); err != nil {
		return nil, err
	}
	return deps, nil
}

// invalidateCatalog drops cached reference data after a catalog mutation.
func (d *appDeps) invalidateCatalog(ctx context.Context) {
	if err := d.catalog.Invalidate(ctx); err != nil {
		logger.Warn().Ctx(ctx).
			Str("operation", "invalidate_catalog").
			Err(err).
			Msg("failed to invalidate catalog cache")
	}
}

// dashboardSource adapts the client and catalog loader to the dashboard's
// data source. Catalog screens read through the cache.
type dashboardSource struct {
	client  *api.Client
	catalog *catalog.Loader
}

func (s dashboardSource) Manufacturers(ctx context.Context) ([]model.Manufacturer, error) {
	return s.catalog.Manufacturers(ctx)
}

func (s dashboardSource) VehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	return s.catalog.VehicleTypes(ctx)
}

func (s dashboardSource) Trims(ctx context.Context) ([]model.Trim, error) {
	return s.catalog.Trims(ctx)
}

func (s dashboardSource) Cars(ctx context.Context) ([]model.Car, error) {
	return s.client.ListCars(ctx)
}

func (s dashboardSource) Blogs(ctx context.Context) ([]model.Blog, error) {
	return s.client.ListBlogs(ctx)
}

func (s dashboardSource) Leads(ctx context.Context, kind model.LeadKind) ([]model.Lead, error) {
	return s.client.ListLeads(ctx, kind)
}

// InvalidateCatalog lets the dashboard's refresh key bypass the cache.
func (s dashboardSource) InvalidateCatalog(ctx context.Context) error {
	return s.catalog.Invalidate(ctx)
}
