package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/api"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/model"
)

// ErrNoLogo is returned by delete-logo when the manufacturer has no logo.
var ErrNoLogo = errors.New("manufacturer has no logo")

func catalogPageSize(lc config.ListConfig) int { return lc.CatalogPageSize }

// --- manufacturers ---

func newManufacturersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "manufacturers", Aliases: []string{"brands"}, Short: "Manage manufacturers and their logos"}
	cmd.AddCommand(
		newListCmd(listSpec[model.Manufacturer]{
			Use:      "list",
			Short:    "List manufacturers in display order",
			Schema:   listschema.Manufacturers(),
			Columns:  manufacturerColumns(),
			PageSize: catalogPageSize,
			Load: func(ctx context.Context, deps *appDeps, _ []string) ([]model.Manufacturer, error) {
				return deps.catalog.Manufacturers(ctx)
			},
		}),
		newManufacturerCreateCmd(), newManufacturerUpdateCmd(),
		newDeleteLogoCmd(), newReorderCmd(),
	)
	return cmd
}

func newManufacturerCreateCmd() *cobra.Command {
	var brand, logo string
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a manufacturer",
		Example: `  dealerdesk manufacturers create --brand Toyota --logo toyota.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return catalogMutation(cmd, "create_manufacturer", func(ctx context.Context, deps *appDeps) (api.Message, error) {
				return deps.client.CreateManufacturer(ctx, strings.TrimSpace(brand), logo)
			})
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "brand name (required)")
	cmd.Flags().StringVar(&logo, "logo", "", "logo image file")
	_ = cmd.MarkFlagRequired("brand")
	return cmd
}

func newManufacturerUpdateCmd() *cobra.Command {
	var brand, logo string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a manufacturer or replace its logo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogMutation(cmd, "update_manufacturer", func(ctx context.Context, deps *appDeps) (api.Message, error) {
				current, err := deps.catalog.Manufacturers(ctx)
				if err != nil {
					return api.Message{}, err
				}
				m, err := findRecord(current, args[0], func(m model.Manufacturer) string { return m.ID }, "manufacturer")
				if err != nil {
					return api.Message{}, err
				}
				name := m.BrandName
				if cmd.Flags().Changed("brand") {
					name = strings.TrimSpace(brand)
				}
				return deps.client.UpdateManufacturer(ctx, m.ID, name, logo)
			})
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "new brand name")
	cmd.Flags().StringVar(&logo, "logo", "", "replacement logo image file")
	return cmd
}

func newDeleteLogoCmd() *cobra.Command {
	var (
		file string
		yes  bool
	)
	cmd := &cobra.Command{
		Use:   "delete-logo ID",
		Short: "Delete a manufacturer's logo file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogMutation(cmd, "delete_logo", func(ctx context.Context, deps *appDeps) (api.Message, error) {
				filename := file
				if filename == "" {
					current, err := deps.catalog.Manufacturers(ctx)
					if err != nil {
						return api.Message{}, err
					}
					m, err := findRecord(current, args[0], func(m model.Manufacturer) string { return m.ID }, "manufacturer")
					if err != nil {
						return api.Message{}, err
					}
					if m.Logo == nil || m.Logo.Filename == "" {
						return api.Message{}, fmt.Errorf("%s: %w", m.BrandName, ErrNoLogo)
					}
					filename = m.Logo.Filename
				}
				if err := confirmDestructive(cmd, yes, fmt.Sprintf("Delete logo %s?", filename)); err != nil {
					return api.Message{}, err
				}
				return deps.client.DeleteLogo(ctx, args[0], filename)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "logo filename (default: the manufacturer's current logo)")
	addYesFlag(cmd, &yes)
	return cmd
}

func newReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder ID...",
		Short: "Change the display order of manufacturers",
		Long: `Moves the given manufacturers to the front in the order listed. Every
other manufacturer keeps its relative order after them.`,
		Example: `  dealerdesk manufacturers reorder 65a1 65a7 65a3`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogMutation(cmd, "reorder_manufacturers", func(ctx context.Context, deps *appDeps) (api.Message, error) {
				current, err := deps.catalog.Manufacturers(ctx)
				if err != nil {
					return api.Message{}, err
				}
				order, err := reorderManufacturers(current, args)
				if err != nil {
					return api.Message{}, err
				}
				if err := deps.client.ReorderManufacturers(ctx, order); err != nil {
					return api.Message{}, err
				}
				return api.Message{Success: fmt.Sprintf("Reordered %d manufacturers", len(order))}, nil
			})
		},
	}
	return cmd
}

// reorderManufacturers puts ids first, in the given order, followed by the
// remaining manufacturers. Order fields are renumbered from 1.
func reorderManufacturers(current []model.Manufacturer, ids []string) ([]model.Manufacturer, error) {
	byID := make(map[string]model.Manufacturer, len(current))
	for _, m := range current {
		byID[m.ID] = m
	}

	order := make([]model.Manufacturer, 0, len(current))
	placed := make(map[string]bool, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("manufacturer %q: %w", id, ErrNotFound)
		}
		if placed[id] {
			continue
		}
		placed[id] = true
		order = append(order, m)
	}
	for _, m := range current {
		if !placed[m.ID] {
			order = append(order, m)
		}
	}
	for i := range order {
		order[i].Order = i + 1
	}
	return order, nil
}

// --- vehicle types ---

func newVehicleTypesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vehicle-types", Aliases: []string{"models"}, Short: "Manage vehicle types"}
	cmd.AddCommand(
		newListCmd(listSpec[model.VehicleType]{
			Use:      "list",
			Short:    "List vehicle types",
			Example:  `  dealerdesk vehicle-types list --filter manufacturer=Nissan`,
			Schema:   listschema.VehicleTypes(),
			Columns:  vehicleTypeColumns(),
			PageSize: catalogPageSize,
			Load: func(ctx context.Context, deps *appDeps, _ []string) ([]model.VehicleType, error) {
				return deps.catalog.VehicleTypes(ctx)
			},
		}),
		newVehicleTypeSaveCmd(true), newVehicleTypeSaveCmd(false),
		newCatalogDeleteCmd("vehicle type", "delete_vehicle_type", func(ctx context.Context, deps *appDeps, id string) (api.Message, error) {
			return deps.client.DeleteVehicleType(ctx, id)
		}),
	)
	return cmd
}

// newVehicleTypeSaveCmd builds "create" or "update ID".
func newVehicleTypeSaveCmd(create bool) *cobra.Command {
	var manufacturer, modelName string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a vehicle type",
		Args:  cobra.ExactArgs(1),
	}
	op := "update_vehicle_type"
	if create {
		cmd.Use, cmd.Short, cmd.Args = "create", "Create a vehicle type", cobra.NoArgs
		cmd.Example = `  dealerdesk vehicle-types create --manufacturer Toyota --model "Land Cruiser"`
		op = "create_vehicle_type"
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return catalogMutation(cmd, op, func(ctx context.Context, deps *appDeps) (api.Message, error) {
			cat, err := deps.catalog.Load(ctx)
			if err != nil {
				return api.Message{}, err
			}
			in := api.VehicleTypeInput{ModelName: strings.TrimSpace(modelName)}
			if !create {
				current, findErr := findRecord(cat.VehicleTypes, args[0], func(v model.VehicleType) string { return v.ID }, "vehicle type")
				if findErr != nil {
					return api.Message{}, findErr
				}
				in.Manufacturer = model.RefID(current.Manufacturer)
				if !cmd.Flags().Changed("model") {
					in.ModelName = current.ModelName
				}
			}
			if create || cmd.Flags().Changed("manufacturer") {
				m, resolveErr := resolveManufacturer(cat, manufacturer)
				if resolveErr != nil {
					return api.Message{}, resolveErr
				}
				in.Manufacturer = m.ID
			}
			if create {
				return deps.client.CreateVehicleType(ctx, in)
			}
			return deps.client.UpdateVehicleType(ctx, args[0], in)
		})
	}

	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "manufacturer id or brand name")
	cmd.Flags().StringVar(&modelName, "model", "", "model name")
	if create {
		_ = cmd.MarkFlagRequired("manufacturer")
		_ = cmd.MarkFlagRequired("model")
	}
	return cmd
}

// --- trims ---

func newTrimsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "trims", Short: "Manage trims and their specifications"}
	cmd.AddCommand(
		newListCmd(listSpec[model.Trim]{
			Use:      "list",
			Short:    "List trims",
			Example:  `  dealerdesk trims list --filter vehicleType=Camry`,
			Schema:   listschema.Trims(),
			Columns:  trimColumns(),
			PageSize: catalogPageSize,
			Load: func(ctx context.Context, deps *appDeps, _ []string) ([]model.Trim, error) {
				return deps.catalog.Trims(ctx)
			},
		}),
		newTrimSaveCmd(true), newTrimSaveCmd(false),
		newCatalogDeleteCmd("trim", "delete_trim", func(ctx context.Context, deps *appDeps, id string) (api.Message, error) {
			return deps.client.DeleteTrim(ctx, id)
		}),
	)
	return cmd
}

// newTrimSaveCmd builds "create" or "update ID".
func newTrimSaveCmd(create bool) *cobra.Command {
	var (
		vehicleType string
		name        string
		specs       []string
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a trim",
		Args:  cobra.ExactArgs(1),
	}
	op := "update_trim"
	if create {
		cmd.Use, cmd.Short, cmd.Args = "create", "Create a trim", cobra.NoArgs
		cmd.Example = `  dealerdesk trims create --vehicle-type Camry --name SE --spec "Sunroof" --spec "Heated Seats"`
		op = "create_trim"
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return catalogMutation(cmd, op, func(ctx context.Context, deps *appDeps) (api.Message, error) {
			cat, err := deps.catalog.Load(ctx)
			if err != nil {
				return api.Message{}, err
			}
			in := api.TrimInput{TrimName: strings.TrimSpace(name), Specifications: cleanSpecs(specs)}
			if !create {
				current, findErr := findRecord(cat.Trims, args[0], func(t model.Trim) string { return t.ID }, "trim")
				if findErr != nil {
					return api.Message{}, findErr
				}
				in.VehicleType = model.RefID(current.VehicleType)
				if !cmd.Flags().Changed("name") {
					in.TrimName = current.TrimName
				}
				if !cmd.Flags().Changed("spec") {
					in.Specifications = current.Specifications
				}
			}
			if create || cmd.Flags().Changed("vehicle-type") {
				v, resolveErr := resolveVehicleType(cat, "", vehicleType)
				if resolveErr != nil {
					return api.Message{}, resolveErr
				}
				in.VehicleType = v.ID
			}
			if create {
				return deps.client.CreateTrim(ctx, in)
			}
			return deps.client.UpdateTrim(ctx, args[0], in)
		})
	}

	cmd.Flags().StringVar(&vehicleType, "vehicle-type", "", "vehicle type id or model name")
	cmd.Flags().StringVar(&name, "name", "", "trim name")
	cmd.Flags().StringArrayVar(&specs, "spec", nil, "specification name (repeatable; replaces the list on update)")
	if create {
		_ = cmd.MarkFlagRequired("vehicle-type")
		_ = cmd.MarkFlagRequired("name")
	}
	return cmd
}

// cleanSpecs trims names and drops blanks and duplicates, keeping order.
func cleanSpecs(specs []string) []string {
	seen := make(map[string]bool, len(specs))
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// --- shared ---

func newCatalogDeleteCmd(
	kind, op string,
	del func(ctx context.Context, deps *appDeps, id string) (api.Message, error),
) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmDestructive(cmd, yes, fmt.Sprintf("Delete %s %s?", kind, args[0])); err != nil {
				return err
			}
			return catalogMutation(cmd, op, func(ctx context.Context, deps *appDeps) (api.Message, error) {
				return del(ctx, deps, args[0])
			})
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}

// catalogMutation runs a signed-in catalog change, drops the cached catalog
// on success and prints the backend's message.
func catalogMutation(
	cmd *cobra.Command,
	op string,
	mutate func(ctx context.Context, deps *appDeps) (api.Message, error),
) error {
	ctx := cmd.Context()
	deps, err := newAuthedDeps(cmd)
	if err != nil {
		return err
	}
	msg, err := mutate(ctx, deps)
	if err != nil {
		logger.Warn().Ctx(ctx).Str("operation", op).Err(err).Msg("catalog change failed")
		return err
	}
	deps.invalidateCatalog(ctx)
	logger.Info().Ctx(ctx).Str("operation", op).Msg("catalog changed")
	printMessage(cmd, msg.Text())
	return nil
}
