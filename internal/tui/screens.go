package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/listview"
	"github.com/rshade/dealerdesk/internal/model"
)

// Screen keys.
const (
	ScreenManufacturers = "manufacturers"
	ScreenVehicleTypes  = "vehicle-types"
	ScreenTrims         = "trims"
	ScreenCars          = "cars"
	ScreenLeads         = "leads"
	ScreenBlogs         = "blogs"
)

// DataSource supplies the records of every dashboard screen.
type DataSource interface {
	Manufacturers(ctx context.Context) ([]model.Manufacturer, error)
	VehicleTypes(ctx context.Context) ([]model.VehicleType, error)
	Trims(ctx context.Context) ([]model.Trim, error)
	Cars(ctx context.Context) ([]model.Car, error)
	Blogs(ctx context.Context) ([]model.Blog, error)
	Leads(ctx context.Context, kind model.LeadKind) ([]model.Lead, error)
}

// catalogInvalidator is implemented by sources that cache reference data.
type catalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// ScreenOptions sizes the screens and wires shared state.
type ScreenOptions struct {
	CarsPageSize    int
	LeadsPageSize   int
	BlogsPageSize   int
	CatalogPageSize int
	Window          int
	Loading         LoadingTracker
	// ExportDir receives lead exports; "" means the working directory.
	ExportDir string
}

func (o ScreenOptions) list(pageSize int) listview.Options {
	return listview.Options{PageSize: pageSize, Window: o.Window}
}

// NewScreens builds the dashboard screens in sidebar order.
func NewScreens(ctx context.Context, src DataSource, opts ScreenOptions) ([]Screen, error) {
	manufacturers, err := NewManufacturersScreen(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	vehicleTypes, err := NewVehicleTypesScreen(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	trims, err := NewTrimsScreen(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	cars, err := NewCarsScreen(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	leads, err := NewLeadsScreen(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	blogs, err := NewBlogsScreen(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	return []Screen{manufacturers, vehicleTypes, trims, cars, leads, blogs}, nil
}

// reloadCatalog drops cached reference data before loading again.
func reloadCatalog[T any](src DataSource, load LoadFunc[T]) LoadFunc[T] {
	inv, ok := src.(catalogInvalidator)
	if !ok {
		return load
	}
	return func(ctx context.Context) ([]T, error) {
		if err := inv.InvalidateCatalog(ctx); err != nil {
			return nil, fmt.Errorf("invalidating catalog: %w", err)
		}
		return load(ctx)
	}
}

// NewManufacturersScreen lists brands in display order.
func NewManufacturersScreen(
	ctx context.Context, src DataSource, opts ScreenOptions,
) (ListScreen[model.Manufacturer], error) {
	return NewListScreen(ctx, ListConfig[model.Manufacturer]{
		Key:     ScreenManufacturers,
		Title:   "Manufacturers",
		Schema:  listschema.Manufacturers(),
		Options: opts.list(opts.CatalogPageSize),
		Columns: []Column[model.Manufacturer]{
			{Title: "Order", Width: 6, Cell: func(m model.Manufacturer) string { return strconv.Itoa(m.Order) }}, //nolint:mnd // Column width.
			{Title: "Brand", Width: 30, Cell: func(m model.Manufacturer) string { return model.Display(m.BrandName) }}, //nolint:mnd // Column width.
			{Title: "Logo", Width: 40, Cell: func(m model.Manufacturer) string { return logoName(m.Logo) }}, //nolint:mnd // Column width.
		},
		Load:   src.Manufacturers,
		Reload: reloadCatalog(src, src.Manufacturers),
		Detail: func(m model.Manufacturer) []Field {
			return []Field{
				{Label: "ID", Value: m.ID},
				{Label: "Brand", Value: model.Display(m.BrandName)},
				{Label: "Order", Value: strconv.Itoa(m.Order)},
				{Label: "Logo", Value: logoName(m.Logo)},
			}
		},
		Loading: opts.Loading,
	})
}

func logoName(img *model.Image) string {
	if img == nil {
		return model.NA
	}
	return model.Display(img.Filename)
}

// NewVehicleTypesScreen lists models filterable by manufacturer.
func NewVehicleTypesScreen(
	ctx context.Context, src DataSource, opts ScreenOptions,
) (ListScreen[model.VehicleType], error) {
	return NewListScreen(ctx, ListConfig[model.VehicleType]{
		Key:     ScreenVehicleTypes,
		Title:   "Vehicle Types",
		Schema:  listschema.VehicleTypes(),
		Options: opts.list(opts.CatalogPageSize),
		Columns: []Column[model.VehicleType]{
			{Title: "Model", Width: 30, Cell: func(v model.VehicleType) string { return model.Display(v.ModelName) }}, //nolint:mnd // Column width.
			{Title: "Manufacturer", Width: 30, Cell: func(v model.VehicleType) string { //nolint:mnd // Column width.
				return v.Manufacturer.BrandNameOr(listschema.UnknownBrand)
			}},
		},
		Load:   src.VehicleTypes,
		Reload: reloadCatalog(src, src.VehicleTypes),
		Detail: func(v model.VehicleType) []Field {
			return []Field{
				{Label: "ID", Value: v.ID},
				{Label: "Model", Value: model.Display(v.ModelName)},
				{Label: "Manufacturer", Value: v.Manufacturer.BrandNameOr(listschema.UnknownBrand)},
			}
		},
		Loading: opts.Loading,
	})
}

// NewTrimsScreen lists trims filterable by vehicle type.
func NewTrimsScreen(ctx context.Context, src DataSource, opts ScreenOptions) (ListScreen[model.Trim], error) {
	return NewListScreen(ctx, ListConfig[model.Trim]{
		Key:     ScreenTrims,
		Title:   "Trims",
		Schema:  listschema.Trims(),
		Options: opts.list(opts.CatalogPageSize),
		Columns: []Column[model.Trim]{
			{Title: "Trim", Width: 24, Cell: func(t model.Trim) string { return model.Display(t.TrimName) }}, //nolint:mnd // Column width.
			{Title: "Vehicle Type", Width: 24, Cell: func(t model.Trim) string { //nolint:mnd // Column width.
				return t.VehicleType.ModelNameOr(listschema.UnknownModel)
			}},
			{Title: "Specs", Width: 6, Cell: func(t model.Trim) string { return strconv.Itoa(len(t.Specifications)) }}, //nolint:mnd // Column width.
		},
		Load:   src.Trims,
		Reload: reloadCatalog(src, src.Trims),
		Detail: func(t model.Trim) []Field {
			return []Field{
				{Label: "ID", Value: t.ID},
				{Label: "Trim", Value: model.Display(t.TrimName)},
				{Label: "Vehicle Type", Value: t.VehicleType.ModelNameOr(listschema.UnknownModel)},
				{Label: "Specifications", Value: model.Display(strings.Join(t.Specifications, ", "))},
			}
		},
		Loading: opts.Loading,
	})
}

// NewCarsScreen is the "Manage Cars" inventory list.
func NewCarsScreen(ctx context.Context, src DataSource, opts ScreenOptions) (ListScreen[model.Car], error) {
	return NewListScreen(ctx, ListConfig[model.Car]{
		Key:     ScreenCars,
		Title:   "Manage Cars",
		Schema:  listschema.Cars(),
		Options: opts.list(opts.CarsPageSize),
		Columns: []Column[model.Car]{
			{Title: "Title", Width: 28, Cell: func(c model.Car) string { return model.Display(c.Title) }}, //nolint:mnd // Column width.
			{Title: "Brand", Width: 14, Cell: func(c model.Car) string { //nolint:mnd // Column width.
				return c.Manufacturer.BrandNameOr(listschema.UnknownBrand)
			}},
			{Title: "Model", Width: 14, Cell: func(c model.Car) string { //nolint:mnd // Column width.
				return c.VehicleType.ModelNameOr(listschema.UnknownModel)
			}},
			{Title: "Year", Width: 6, Cell: func(c model.Car) string { return model.Display(c.Year.String()) }}, //nolint:mnd // Column width.
			{Title: "Price", Width: 12, Cell: func(c model.Car) string { return carPrice(c) }}, //nolint:mnd // Column width.
			{Title: "Status", Width: 9, Cell: func(c model.Car) string { return model.Display(c.SaleStatus) }}, //nolint:mnd // Column width.
		},
		Load:    src.Cars,
		Detail:  carDetail,
		Loading: opts.Loading,
	})
}

// carPrice prefers the discounted price when one is set.
func carPrice(c model.Car) string {
	if p := strings.TrimSpace(c.DiscountedPrice.String()); p != "" {
		return FormatAmount(p)
	}
	return FormatAmount(c.OriginalPrice.String())
}

func carDetail(c model.Car) []Field {
	fields := []Field{
		{Label: "ID", Value: c.ID},
		{Label: "Title", Value: model.Display(c.Title)},
		{Label: "Manufacturer", Value: c.Manufacturer.BrandNameOr(listschema.UnknownBrand)},
		{Label: "Vehicle Type", Value: c.VehicleType.ModelNameOr(listschema.UnknownModel)},
		{Label: "Trim", Value: c.Trim.TrimNameOr(model.NA)},
		{Label: "Year", Value: model.Display(c.Year.String())},
		{Label: "Original Price", Value: FormatAmount(c.OriginalPrice.String())},
		{Label: "Discounted Price", Value: FormatAmount(c.DiscountedPrice.String())},
		{Label: "Mileage", Value: FormatAmount(c.Mileage.String())},
		{Label: "Fuel Type", Value: model.Display(c.FuelType)},
		{Label: "Transmission", Value: model.Display(c.Transmission)},
		{Label: "Body Type", Value: model.Display(c.BodyType)},
		{Label: "Exterior Color", Value: model.Display(c.ExteriorColor)},
		{Label: "Doors", Value: model.Display(c.Door.String())},
		{Label: "Origin", Value: model.Display(c.Origin)},
		{Label: "Engine", Value: model.Display(c.Engine)},
		{Label: "Warranty", Value: model.Display(c.Warranty)},
		{Label: "Test Drive", Value: model.Display(c.TestDrive)},
		{Label: "Featured", Value: model.Display(c.Featured)},
		{Label: "Sale Status", Value: model.Display(c.SaleStatus)},
		{Label: "Images", Value: strconv.Itoa(len(c.Images))},
	}
	var specs []string
	for name, on := range c.Specifications {
		if on {
			specs = append(specs, name)
		}
	}
	if len(specs) > 0 {
		slices.Sort(specs)
		fields = append(fields, Field{Label: "Specifications", Value: strings.Join(specs, ", ")})
	}
	return fields
}

// NewBlogsScreen lists blog posts.
func NewBlogsScreen(ctx context.Context, src DataSource, opts ScreenOptions) (ListScreen[model.Blog], error) {
	return NewListScreen(ctx, ListConfig[model.Blog]{
		Key:     ScreenBlogs,
		Title:   "Blogs",
		Schema:  listschema.Blogs(),
		Options: opts.list(opts.BlogsPageSize),
		Columns: []Column[model.Blog]{
			{Title: "Title", Width: 36, Cell: func(b model.Blog) string { return model.Display(b.Title) }}, //nolint:mnd // Column width.
			{Title: "Author", Width: 20, Cell: func(b model.Blog) string { return b.AuthorName() }}, //nolint:mnd // Column width.
			{Title: "Posted", Width: 12, Cell: func(b model.Blog) string { return blogDate(b) }}, //nolint:mnd // Column width.
		},
		Load: src.Blogs,
		Detail: func(b model.Blog) []Field {
			return []Field{
				{Label: "ID", Value: b.ID},
				{Label: "Title", Value: model.Display(b.Title)},
				{Label: "Author", Value: b.AuthorName()},
				{Label: "Posted", Value: blogDate(b)},
				{Label: "Description", Value: model.Display(b.Description)},
			}
		},
		Loading: opts.Loading,
	})
}

func blogDate(b model.Blog) string {
	if b.CreatedAt == nil {
		return model.NA
	}
	return b.CreatedAt.Format("2006-01-02")
}
