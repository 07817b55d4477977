// Package catalog loads the manufacturer, vehicle type and trim reference data
// that car forms cascade through, reading it through the file cache.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/dealerdesk/internal/cache"
	"github.com/rshade/dealerdesk/internal/logging"
	"github.com/rshade/dealerdesk/internal/model"
)

// Cache operation names, also used in log fields.
const (
	OpManufacturers = "manufacturers"
	OpVehicleTypes  = "vehicle-types"
	OpTrims         = "trims"
)

// Source is the subset of the API client the catalog reads from.
type Source interface {
	ListManufacturers(ctx context.Context) ([]model.Manufacturer, error)
	ListVehicleTypes(ctx context.Context) ([]model.VehicleType, error)
	ListTrims(ctx context.Context) ([]model.Trim, error)
}

// Catalog is a snapshot of the reference data.
type Catalog struct {
	Manufacturers []model.Manufacturer `json:"manufacturers"`
	VehicleTypes  []model.VehicleType  `json:"vehicleTypes"`
	Trims         []model.Trim         `json:"trims"`
}

// Loader fetches catalog collections, caching each under its own key.
type Loader struct {
	src     Source
	store   *cache.Store
	baseURL string
}

// NewLoader creates a Loader. store may be nil to disable caching.
func NewLoader(src Source, store *cache.Store, baseURL string) *Loader {
	return &Loader{src: src, store: store, baseURL: baseURL}
}

func (l *Loader) key(op string) string { return cache.Key(op, l.baseURL) }

// Manufacturers returns every manufacturer.
func (l *Loader) Manufacturers(ctx context.Context) ([]model.Manufacturer, error) {
	return cache.Fetch(ctx, l.store, l.key(OpManufacturers), OpManufacturers, l.src.ListManufacturers)
}

// VehicleTypes returns every vehicle type.
func (l *Loader) VehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	return cache.Fetch(ctx, l.store, l.key(OpVehicleTypes), OpVehicleTypes, l.src.ListVehicleTypes)
}

// Trims returns every trim.
func (l *Loader) Trims(ctx context.Context) ([]model.Trim, error) {
	return cache.Fetch(ctx, l.store, l.key(OpTrims), OpTrims, l.src.ListTrims)
}

// Load fetches all three collections concurrently.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var c Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Manufacturers, err = l.Manufacturers(gctx)
		return wrap(OpManufacturers, err)
	})
	g.Go(func() (err error) {
		c.VehicleTypes, err = l.VehicleTypes(gctx)
		return wrap(OpVehicleTypes, err)
	})
	g.Go(func() (err error) {
		c.Trims, err = l.Trims(gctx)
		return wrap(OpTrims, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Invalidate drops the cached collections so the next read hits the backend.
// Mutations of manufacturers, vehicle types or trims call it.
func (l *Loader) Invalidate(ctx context.Context) error {
	if l.store == nil || !l.store.Enabled() {
		return nil
	}
	var errs []error
	for _, op := range []string{OpManufacturers, OpVehicleTypes, OpTrims} {
		if err := l.store.Delete(l.key(op)); err != nil {
			errs = append(errs, fmt.Errorf("invalidating %s: %w", op, err))
		}
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "catalog").
		Msg("catalog cache invalidated")
	return errors.Join(errs...)
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("loading %s: %w", op, err)
	}
	return nil
}

// Manufacturer returns the manufacturer with id.
func (c *Catalog) Manufacturer(id string) (model.Manufacturer, bool) {
	for _, m := range c.Manufacturers {
		if m.ID == id {
			return m, true
		}
	}
	return model.Manufacturer{}, false
}

// VehicleType returns the vehicle type with id.
func (c *Catalog) VehicleType(id string) (model.VehicleType, bool) {
	for _, vt := range c.VehicleTypes {
		if vt.ID == id {
			return vt, true
		}
	}
	return model.VehicleType{}, false
}

// Trim returns the trim with id.
func (c *Catalog) Trim(id string) (model.Trim, bool) {
	for _, t := range c.Trims {
		if t.ID == id {
			return t, true
		}
	}
	return model.Trim{}, false
}

// VehicleTypesFor returns the vehicle types of manufacturer id, in catalog order.
func (c *Catalog) VehicleTypesFor(manufacturerID string) []model.VehicleType {
	var out []model.VehicleType
	for _, vt := range c.VehicleTypes {
		if model.RefID(vt.Manufacturer) == manufacturerID {
			out = append(out, vt)
		}
	}
	return out
}

// TrimsFor returns the trims of vehicle type id, in catalog order.
func (c *Catalog) TrimsFor(vehicleTypeID string) []model.Trim {
	var out []model.Trim
	for _, t := range c.Trims {
		if model.RefID(t.VehicleType) == vehicleTypeID {
			out = append(out, t)
		}
	}
	return out
}
