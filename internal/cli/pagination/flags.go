package pagination

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Validation limits.
const (
	DefaultPage = 1
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 1000
)

// Common validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
)

// PaginationParams holds the CLI pagination flags.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of records per page; 0 means the configured default.
	PageSize int
}

// NewPaginationParams creates a PaginationParams for the first page.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{Page: DefaultPage}
}

// AddFlags registers --page and --page-size on cmd.
func (p *PaginationParams) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Page, "page", DefaultPage, "page number to show (1-based); a page past the last one is an error")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "records per page (0 = configured default)")
}

// Validate checks the flag bounds (value receiver).
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize != 0 && (p.PageSize < MinPageSize || p.PageSize > MaxPageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// EffectivePageSize returns PageSize, or fallback when the flag was left at 0.
func (p PaginationParams) EffectivePageSize(fallback int) int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	return fallback
}
