package gateway

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/normalize"
)

// Health probes backend liveness.
func (g *Gateway) Health(ctx context.Context) (model.Health, error) {
	obj, err := g.object(ctx, "health check", "/health")
	if err != nil {
		return model.Health{}, err
	}
	return normalize.Health(obj)
}

// SystemStats fetches the aggregate counters snapshot.
func (g *Gateway) SystemStats(ctx context.Context) (model.SystemStats, error) {
	obj, err := g.object(ctx, "fetch system stats", "/system/stats")
	if err != nil {
		return model.SystemStats{}, err
	}
	stats, err := normalize.SystemStats(obj)
	if err != nil {
		return model.SystemStats{}, err
	}
	return stats, nil
}

// Snapshot fetches the dashboard's resources concurrently. Slots are
// independent: a failed fetch leaves its slot nil while the others keep
// their data, and the first error is returned so the caller can flag
// degraded mode.
func (g *Gateway) Snapshot(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	var eg errgroup.Group

	eg.Go(func() error {
		stats, err := g.SystemStats(ctx)
		if err != nil {
			return err
		}
		snap.Stats = &stats
		return nil
	})
	eg.Go(func() error {
		cams, err := g.Cameras(ctx)
		if err != nil {
			return err
		}
		snap.Cameras = cams
		return nil
	})
	eg.Go(func() error {
		logs, err := g.AccessLogs(ctx, model.LogQuery{Limit: model.DefaultLogLimit})
		if err != nil {
			return err
		}
		snap.Logs = logs
		return nil
	})

	err := eg.Wait()
	return snap, err
}
