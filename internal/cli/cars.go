package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/api"
	"github.com/rshade/dealerdesk/internal/carform"
	"github.com/rshade/dealerdesk/internal/catalog"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/model"
)

// Gallery flag errors.
var (
	ErrInvalidMove  = errors.New("invalid --move-image: use from:to with 1-based positions")
	ErrNoSuchImage  = errors.New("no image at that position")
	ErrMissingImage = errors.New("image file not found")
)

// carFieldFlag binds a scalar draft field to its flag.
type carFieldFlag struct {
	field string
	flag  string
	usage string
}

// carFieldFlags lists every scalar field settable from the command line. The
// manufacturer, vehicle type and trim cascade has its own flags.
//
//nolint:gochecknoglobals // Static flag table.
var carFieldFlags = []carFieldFlag{
	{carform.FieldTitle, "title", "listing title"},
	{carform.FieldOriginalPrice, "original-price", "original price"},
	{carform.FieldDiscountedPrice, "discounted-price", "discounted price"},
	{carform.FieldFuelType, "fuel-type", "fuel type: " + strings.Join(model.FuelTypes, ", ")},
	{carform.FieldMileage, "mileage", "mileage"},
	{carform.FieldYear, "year", "model year"},
	{carform.FieldExteriorColor, "exterior-color", "exterior color"},
	{carform.FieldWarranty, "warranty", "warranty: " + strings.Join(model.Availability, ", ")},
	{carform.FieldDoor, "door", "number of doors"},
	{carform.FieldOrigin, "origin", "market origin: " + strings.Join(model.Origins, ", ")},
	{carform.FieldTransmission, "transmission", "transmission: " + strings.Join(model.Transmissions, ", ")},
	{carform.FieldBodyType, "body-type", "body type: " + strings.Join(model.BodyTypes, ", ")},
	{carform.FieldEngine, "engine", "engine description"},
	{carform.FieldTestDrive, "test-drive", "test drive offered: yes, no"},
	{carform.FieldFeatured, "featured", "featured listing: yes, no"},
	{carform.FieldSaleStatus, "sale-status", "sale status: " + strings.Join(model.SaleStatuses, ", ")},
	{carform.FieldServicePackage, "service-package", "service package: " + strings.Join(model.Availability, ", ")},
	{carform.FieldDescription, "description", "free-text description"},
}

func newCarsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cars", Short: "Manage car listings"}
	cmd.AddCommand(newCarsListCmd(), newCarsCreateCmd(), newCarsUpdateCmd(), newCarsDeleteCmd())
	return cmd
}

func newCarsListCmd() *cobra.Command {
	return newListCmd(listSpec[model.Car]{
		Use:   "list",
		Short: "List car listings",
		Example: `  # Every Toyota, second page
  dealerdesk cars list --filter manufacturer=Toyota --page 2

  # Search brand, model, trim and title
  dealerdesk cars list --search "land cruiser"

  # Filter names: manufacturer, vehicleType, fuelType, bodyType, transmission
  dealerdesk cars list --filter fuelType=diesel --filter bodyType=suv -o json`,
		Schema:   listschema.Cars(),
		Columns:  carColumns(),
		PageSize: func(lc config.ListConfig) int { return lc.CarsPageSize },
		Load: func(ctx context.Context, deps *appDeps, _ []string) ([]model.Car, error) {
			return deps.client.ListCars(ctx)
		},
	})
}

// carFlags holds the draft flags of create and update.
type carFlags struct {
	values       map[string]*string
	manufacturer string
	vehicleType  string
	trim         string
	specs        []string
	images       []string
	moves        []string
	removes      []int
}

func (f *carFlags) register(cmd *cobra.Command, create bool) {
	f.values = make(map[string]*string, len(carFieldFlags))
	for _, ff := range carFieldFlags {
		v := new(string)
		def := ""
		if create {
			def = carform.Default(ff.field)
		}
		cmd.Flags().StringVar(v, ff.flag, def, ff.usage)
		f.values[ff.field] = v
	}
	cmd.Flags().StringVar(&f.manufacturer, "manufacturer", "", "manufacturer id or brand name")
	cmd.Flags().StringVar(&f.vehicleType, "vehicle-type", "", "vehicle type id or model name")
	cmd.Flags().StringVar(&f.trim, "trim", "", "trim id or name; enables the trim's specifications")
	cmd.Flags().StringArrayVar(&f.specs, "spec", nil, "specification to enable, or name=false to disable (repeatable)")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "image file to upload (repeatable)")
	if !create {
		cmd.Flags().StringArrayVar(&f.moves, "move-image", nil, "move an image as from:to, 1-based (repeatable)")
		cmd.Flags().IntSliceVar(&f.removes, "remove-image", nil, "remove the image at a 1-based position (repeatable)")
	}
}

// apply copies the changed flags into d. The cascade is applied first so
// that a new manufacturer clears the vehicle type and trim before they are set.
func (f *carFlags) apply(cmd *cobra.Command, deps *appDeps, d *carform.Draft) error {
	changed := cmd.Flags().Changed

	if changed("manufacturer") || changed("vehicle-type") || changed("trim") {
		cat, err := deps.catalog.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		if err := f.applyCascade(changed, cat, d); err != nil {
			return err
		}
	}

	for _, ff := range carFieldFlags {
		if changed(ff.flag) {
			if err := d.Set(ff.field, *f.values[ff.field]); err != nil {
				return err
			}
		}
	}

	for _, spec := range f.specs {
		name, value, hasValue := strings.Cut(spec, "=")
		on := true
		if hasValue {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid --spec %q: %w", spec, err)
			}
			on = b
		}
		d.SetSpecification(strings.TrimSpace(name), on)
	}

	return f.applyGallery(d)
}

func (f *carFlags) applyCascade(changed func(string) bool, cat *catalog.Catalog, d *carform.Draft) error {
	if changed("manufacturer") {
		m, err := resolveManufacturer(cat, f.manufacturer)
		if err != nil {
			return err
		}
		d.SetManufacturer(m.ID)
	}
	if changed("vehicle-type") {
		v, err := resolveVehicleType(cat, d.Get(carform.FieldManufacturer), f.vehicleType)
		if err != nil {
			return err
		}
		d.SetVehicleType(v.ID)
	}
	if changed("trim") {
		if f.trim == "" {
			d.SetTrim(nil)
			return nil
		}
		t, err := resolveTrim(cat, d.Get(carform.FieldVehicleType), f.trim)
		if err != nil {
			return err
		}
		d.SetTrim(&t)
	}
	return nil
}

// applyGallery removes, then adds, then moves images. Removal positions refer
// to the gallery before the command; move positions to the gallery after the
// new images were appended.
func (f *carFlags) applyGallery(d *carform.Draft) error {
	removes := slices.Clone(f.removes)
	slices.Sort(removes)
	removes = slices.Compact(removes)
	slices.Reverse(removes)
	for _, pos := range removes {
		if !d.Gallery.Remove(pos - 1) {
			return fmt.Errorf("--remove-image %d: %w", pos, ErrNoSuchImage)
		}
	}

	for _, path := range f.images {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingImage, path)
		}
	}
	d.Gallery.Add(f.images...)

	for _, move := range f.moves {
		from, to, err := parseMove(move)
		if err != nil {
			return err
		}
		if from == to {
			if from > d.Gallery.Len() {
				return fmt.Errorf("--move-image %s: %w", move, ErrNoSuchImage)
			}
			continue
		}
		if !d.Gallery.Move(from-1, to-1) {
			return fmt.Errorf("--move-image %s: %w", move, ErrNoSuchImage)
		}
	}
	return nil
}

func parseMove(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, errFrom := strconv.Atoi(strings.TrimSpace(a))
	to, errTo := strconv.Atoi(strings.TrimSpace(b))
	if errFrom != nil || errTo != nil || from < 1 || to < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	return from, to, nil
}

func newCarsCreateCmd() *cobra.Command {
	var flags carFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a car listing",
		Example: `  dealerdesk cars create --title "2024 Camry SE" --manufacturer Toyota --vehicle-type Camry \
    --trim SE --year 2024 --original-price 98000 --image front.jpg --image rear.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			d := carform.New()
			if err := flags.apply(cmd, deps, d); err != nil {
				return err
			}
			return saveCar(cmd, deps, d)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newCarsUpdateCmd() *cobra.Command {
	var flags carFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a car listing",
		Example: `  # Mark sold and drop the second image
  dealerdesk cars update 65f0c2 --sale-status sold --remove-image 2

  # Make the third image the cover
  dealerdesk cars update 65f0c2 --move-image 3:1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			cars, err := deps.client.ListCars(cmd.Context())
			if err != nil {
				return err
			}
			car, err := findRecord(cars, args[0], func(c model.Car) string { return c.ID }, "car")
			if err != nil {
				return err
			}
			d := carform.FromCar(car)
			if err := flags.apply(cmd, deps, d); err != nil {
				return err
			}
			return saveCar(cmd, deps, d)
		},
	}
	flags.register(cmd, false)
	return cmd
}

// saveCar validates d and sends it as a create or an update.
func saveCar(cmd *cobra.Command, deps *appDeps, d *carform.Draft) error {
	ctx := cmd.Context()
	if err := d.Validate(); err != nil {
		return err
	}
	form, err := d.Form()
	if err != nil {
		return err
	}

	var (
		msg api.Message
		op  = "update_car"
	)
	if d.IsNew() {
		op = "create_car"
		msg, err = deps.client.CreateCar(ctx, form)
	} else {
		msg, err = deps.client.UpdateCar(ctx, d.ID, form)
	}
	if err != nil {
		return err
	}

	logger.Info().Ctx(ctx).
		Str("operation", op).
		Str("car_id", d.ID).
		Int("images", d.Gallery.Len()).
		Int("deleted_images", len(d.Gallery.Deleted())).
		Msg("car saved")
	printMessage(cmd, msg.Text())
	return nil
}

func newCarsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a car listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			if err := confirmDestructive(cmd, yes, fmt.Sprintf("Delete car %s?", args[0])); err != nil {
				return err
			}
			msg, err := deps.client.DeleteCar(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Str("operation", "delete_car").Str("car_id", args[0]).Msg("car deleted")
			printMessage(cmd, msg.Text())
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}
