// Package stats computes the dashboard summary over the order and product
// collections.
package stats

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summary is the dashboard aggregate returned by /api/admin/stats.
type Summary struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// Source supplies the four independent read-only aggregates. TotalUsers is
// the count of distinct non-null customer emails across orders, not the size
// of the users collection.
type Source interface {
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	SumOrderTotals(ctx context.Context) (float64, error)
	CountDistinctCustomers(ctx context.Context) (int64, error)
}

// Report issues the four queries in parallel and joins them before returning.
// Any single failure aborts the whole report; partial summaries are never
// returned. Empty collections yield zeroes.
func Report(ctx context.Context, src Source) (*Summary, error) {
	var summary Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := src.CountProducts(ctx)
		summary.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := src.CountOrders(ctx)
		summary.TotalOrders = n
		return err
	})
	g.Go(func() error {
		total, err := src.SumOrderTotals(ctx)
		summary.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		n, err := src.CountDistinctCustomers(ctx)
		summary.TotalUsers = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
