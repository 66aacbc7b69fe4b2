package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/sources/places"
)

// CatalogReloader handles periodic reloading of the places catalog
type CatalogReloader struct {
	loader        *places.Loader
	catalog       *places.Catalog
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	placesFile string,
	catalog *places.Catalog,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        places.NewLoader(placesFile),
		catalog:       catalog,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload places catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload places catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the catalog file and swaps the in-memory catalog
func (cr *CatalogReloader) Reload(_ context.Context) error {
	loaded, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load places: %w", err)
	}

	cr.catalog.Replace(loaded)
	cr.logger.Info("places catalog loaded",
		logger.Int("count", len(loaded)))
	return nil
}
