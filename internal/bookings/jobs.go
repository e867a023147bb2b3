package bookings

import (
	"context"
	"time"

	"courtly/pkg/logger"
)

// SweepProcessor runs the expiry sweep on a fixed interval.
type SweepProcessor struct {
	service Service
	config  *SweepConfig
	log     *logger.Logger
	done    chan struct{}
}

// SweepConfig contains configuration for the background sweep
type SweepConfig struct {
	Interval time.Duration
}

// DefaultSweepConfig returns default sweep configuration
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Interval: 45 * time.Second,
	}
}

// NewSweepProcessor creates a new sweep processor
func NewSweepProcessor(service Service, config *SweepConfig, log *logger.Logger) *SweepProcessor {
	if config == nil {
		config = DefaultSweepConfig()
	}
	if config.Interval <= 0 {
		config.Interval = DefaultSweepConfig().Interval
	}

	return &SweepProcessor{
		service: service,
		config:  config,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (sp *SweepProcessor) Start(ctx context.Context) {
	go sp.run(ctx)
	sp.log.Info("expiry sweep started", "interval", sp.config.Interval.String())
}

// Stop stops the background sweep loop
func (sp *SweepProcessor) Stop() {
	close(sp.done)
	sp.log.Info("expiry sweep stopped")
}

func (sp *SweepProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(sp.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sp.sweep(ctx)
		case <-sp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (sp *SweepProcessor) sweep(ctx context.Context) {
	// A failed pass is retried on the next tick; the error is already
	// logged with intent correlation inside ExpireSweep.
	if _, err := sp.service.ExpireSweep(ctx, time.Now().UTC()); err != nil {
		sp.log.ErrorWithContext(ctx, "expiry sweep pass failed", err, nil)
	}
}
