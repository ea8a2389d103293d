package retention

import (
	"context"
	"log/slog"
	"time"

	"verity-hq/scrivener/pkg/audit"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is how many days to keep bundles. Zero keeps bundles
	// forever (no age-based pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduled pruning, e.g.
	// "0 3 * * *" for daily at 3 AM. Empty disables the scheduler.
	PruneSchedule string

	// MaxBundles caps the total stored bundle count. Zero means unlimited.
	MaxBundles int64
}

// DefaultConfig returns the default retention configuration. Regulated
// firms typically need policy evidence for six years.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 2190,
		PruneSchedule: "0 3 * * *",
		MaxBundles:    0,
	}
}

// Pruner enforces retention on stored audit bundles.
type Pruner struct {
	storage audit.Storage
	config  *Config
	logger  *slog.Logger
}

// NewPruner creates a retention pruner.
func NewPruner(storage audit.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "audit.retention"),
	}
}

// Prune deletes bundles older than the retention period, then trims the
// store down to MaxBundles by deleting the oldest. It returns the total
// number of bundles deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var deleted int64

	if p.config.RetentionDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -p.config.RetentionDays)
		n, err := p.storage.Delete(ctx, &audit.Query{End: &cutoff})
		if err != nil {
			return deleted, err
		}
		deleted += n
		if n > 0 {
			p.logger.Info("pruned expired audit bundles",
				"deleted", n,
				"cutoff", cutoff,
			)
		}
	}

	if p.config.MaxBundles > 0 {
		n, err := p.pruneExcess(ctx)
		if err != nil {
			return deleted, err
		}
		deleted += n
	}

	return deleted, nil
}

// pruneExcess deletes the oldest bundles beyond the MaxBundles cap.
func (p *Pruner) pruneExcess(ctx context.Context) (int64, error) {
	total, err := p.storage.Count(ctx, nil)
	if err != nil {
		return 0, err
	}

	excess := total - p.config.MaxBundles
	if excess <= 0 {
		return 0, nil
	}

	// Query newest-first; everything past the cap is the oldest excess.
	bundles, err := p.storage.Query(ctx, &audit.Query{
		Limit:  int(excess),
		Offset: int(p.config.MaxBundles),
	})
	if err != nil {
		return 0, err
	}

	var deleted int64
	for _, b := range bundles {
		n, err := p.storage.Delete(ctx, &audit.Query{ID: b.ID})
		if err != nil {
			return deleted, err
		}
		deleted += n
	}

	if deleted > 0 {
		p.logger.Info("pruned excess audit bundles",
			"deleted", deleted,
			"max_bundles", p.config.MaxBundles,
		)
	}
	return deleted, nil
}
