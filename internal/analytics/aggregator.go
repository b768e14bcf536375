package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"pressline/internal/release"
	"pressline/internal/services"
	"pressline/internal/store"
)

// Summary holds per-owner distribution totals for dashboard display.
type Summary struct {
	TotalReleases  int
	PublishedCount int
	PendingCount   int
	TotalStreams   int64
	TotalRevenue   float64
}

// Aggregator folds reported performance figures into per-owner totals.
type Aggregator struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAggregator constructs an aggregator over the given store.
func NewAggregator(st *store.Store, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{store: st, logger: logger}
}

// Aggregate computes totals over all of an owner's pipeline releases. An
// owner with no releases yields the zero Summary.
func (a *Aggregator) Aggregate(ctx context.Context, ownerID string) (Summary, error) {
	counts, err := a.store.StatusCounts(ctx, ownerID)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrStore, "analytics", "status counts", "", err)
	}

	var summary Summary
	for status, count := range counts {
		summary.TotalReleases += count
		if status == release.StatusPublished {
			summary.PublishedCount += count
		}
		if release.IsPending(status) {
			summary.PendingCount += count
		}
	}

	streams, revenue, err := a.store.MetricTotals(ctx, ownerID)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrStore, "analytics", "metric totals", "", err)
	}
	summary.TotalStreams = streams
	summary.TotalRevenue = revenue
	return summary, nil
}

// UpdateMetrics overwrites the reported stream count and revenue for a
// published release. The write is an idempotent overwrite, not an
// increment; negative figures are rejected.
func (a *Aggregator) UpdateMetrics(ctx context.Context, ownerID, pipelineID string, streams int64, revenue float64) error {
	if streams < 0 {
		return services.Wrap(services.ErrValidation, "analytics", "update metrics",
			fmt.Sprintf("streams must be non-negative, got %d", streams), nil)
	}
	if revenue < 0 {
		return services.Wrap(services.ErrValidation, "analytics", "update metrics",
			fmt.Sprintf("revenue must be non-negative, got %v", revenue), nil)
	}

	ok, err := a.store.SetMetrics(ctx, ownerID, pipelineID, streams, revenue)
	if err != nil {
		return services.Wrap(services.ErrStore, "analytics", "update metrics", "", err)
	}
	if ok {
		a.logger.Info("metrics recorded",
			"owner_id", ownerID,
			"pipeline_id", pipelineID,
			"streams", streams,
			"revenue", revenue,
		)
		return nil
	}

	// Distinguish a missing release from one that is not yet published.
	p, getErr := a.store.GetPipeline(ctx, ownerID, pipelineID)
	if getErr != nil {
		return services.Wrap(services.ErrStore, "analytics", "update metrics", "", getErr)
	}
	if p == nil {
		return services.Wrap(services.ErrNotFound, "analytics", "update metrics",
			"pipeline release "+pipelineID+" does not exist for owner", nil)
	}
	return services.Wrap(services.ErrInvalidTransition, "analytics", "update metrics",
		fmt.Sprintf("wrong state: metrics are only recorded for published releases, status is %s", p.Status), nil)
}
