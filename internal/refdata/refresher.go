package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads the catalog on a fixed interval so transition
// validation picks up reference-data edits without a restart.
type Refresher struct {
	catalog  *Catalog
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewRefresher(catalog *Catalog, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		catalog:  catalog,
		interval: interval,
		logger:   logger,
		cron:     cron.New(),
	}
}

func (r *Refresher) Start() error {
	spec := fmt.Sprintf("@every %s", r.interval)
	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.catalog.Reload(ctx); err != nil {
			r.logger.Error("reference data refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling reference data refresh: %w", err)
	}

	r.cron.Start()
	r.logger.Info("reference data refresher started", zap.Duration("interval", r.interval))
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}
