package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/dealerdesk/internal/model"
)

// maxConcurrentFetches bounds parallel requests issued by one call.
const maxConcurrentFetches = 4

// FetchLeads fetches several lead kinds concurrently. The first failure
// cancels the remaining requests.
func (c *Client) FetchLeads(ctx context.Context, kinds ...model.LeadKind) (map[model.LeadKind][]model.Lead, error) {
	if len(kinds) == 0 {
		kinds = model.LeadKinds()
	}

	results := make([][]model.Lead, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, kind := range kinds {
		g.Go(func() error {
			leads, err := c.ListLeads(gctx, kind)
			if err != nil {
				return fmt.Errorf("fetching %s leads: %w", kind, err)
			}
			results[i] = leads
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[model.LeadKind][]model.Lead, len(kinds))
	for i, kind := range kinds {
		out[kind] = results[i]
	}
	return out, nil
}
