package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/cli/pagination"
	"github.com/rshade/dealerdesk/internal/listview"
	"github.com/rshade/dealerdesk/internal/logging"
)

// Filter errors.
var (
	ErrInvalidFilter   = errors.New("invalid filter expression: use key=value")
	ErrPageOutOfRange  = errors.New("page out of range")
	errFilterKeyAbsent = errors.New("filter key cannot be empty")
)

// ParseFilter splits a "key=value" expression. Only the key is trimmed; the
// value is kept verbatim since filters match exactly. The value may itself
// contain '=' and may be empty, which clears the constraint.
func ParseFilter(expr string) (string, string, error) {
	key, value, ok := strings.Cut(expr, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFilter, expr)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidFilter, expr, errFilterKeyAbsent)
	}
	return key, value, nil
}

// ApplyFilters validates and applies a slice of filter strings to lv.
// It logs validation failures and filter application results for debugging.
//
// The function performs two passes:
//  1. Validation: every filter is parsed and its key checked against the
//     view's schema. If any filter is invalid, an error is returned
//     immediately without applying any filters.
//  2. Application: valid filters are set on the view in order.
//
// Empty strings in filters are ignored. A warning is logged if no record
// matches.
func ApplyFilters[T any](ctx context.Context, lv *listview.ListView[T], filters []string) error {
	log := logging.FromContext(ctx)

	if len(filters) == 0 {
		return nil
	}

	type parsed struct{ key, value string }
	valid := make([]parsed, 0, len(filters))
	for _, f := range filters {
		if f == "" {
			continue
		}
		key, value, err := ParseFilter(f)
		if err == nil {
			if _, ok := lv.Schema().Filter(key); !ok {
				err = fmt.Errorf("%w %q: known filters are %s", listview.ErrUnknownFilter, key,
					knownFilters(lv.Schema().FilterNames()))
			}
		}
		if err != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", f).
				Err(err).
				Msg("invalid filter expression")
			return err
		}
		valid = append(valid, parsed{key: key, value: value})
	}

	for _, p := range valid {
		before := lv.FilteredCount()
		if err := lv.SetFilter(p.key, p.value); err != nil {
			return err
		}
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("filter", p.key).
			Str("value", p.value).
			Int("before", before).
			Int("after", lv.FilteredCount()).
			Msg("applied filter")
	}

	if lv.FilteredCount() == 0 && lv.SourceCount() > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", lv.SourceCount()).
			Msg("no records match filter criteria")
	}

	return nil
}

func knownFilters(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

// listFlags are the flags shared by every list command.
type listFlags struct {
	filters []string
	search  string
	page    *pagination.PaginationParams
}

func newListFlags() *listFlags {
	return &listFlags{page: pagination.NewPaginationParams()}
}

// register adds --filter, --search, --page and --page-size to cmd.
func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "exact-match filter as key=value (repeatable)")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive search; every word must match")
	f.page.AddFlags(cmd)
}

// buildView loads records into a ListView and applies the filter, search and
// page flags. fallbackPageSize is used when --page-size is not given.
func buildView[T any](
	ctx context.Context,
	schema listview.Schema[T],
	records []T,
	flags *listFlags,
	fallbackPageSize, window int,
) (*listview.ListView[T], error) {
	if err := flags.page.Validate(); err != nil {
		return nil, err
	}
	lv, err := listview.New(schema, listview.Options{
		PageSize: flags.page.EffectivePageSize(fallbackPageSize),
		Window:   window,
	})
	if err != nil {
		return nil, err
	}
	lv.Refresh(records)

	if err := ApplyFilters(ctx, lv, flags.filters); err != nil {
		return nil, err
	}
	lv.SetSearchTerm(flags.search)

	if flags.page.Page > lv.TotalPages() {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, flags.page.Page, lv.TotalPages())
	}
	lv.GoToPage(flags.page.Page)
	return lv, nil
}
