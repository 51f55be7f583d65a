package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArtifactCleaner deletes artifacts older than the given age and reports how
// many deletions succeeded and failed.
type ArtifactCleaner interface {
	CleanupOlderThan(ctx context.Context, age time.Duration) (deleted, failed int, err error)
}

// RetentionSweeperConfig holds configuration for the retention sweeper
type RetentionSweeperConfig struct {
	// Retention is the age past which artifacts are deleted
	Retention time.Duration
	// Interval is how often the sweep runs
	Interval time.Duration
}

// DefaultRetentionSweeperConfig returns the default sweep settings: files
// older than 7 days, checked once a day.
func DefaultRetentionSweeperConfig() RetentionSweeperConfig {
	return RetentionSweeperConfig{
		Retention: 7 * 24 * time.Hour,
		Interval:  24 * time.Hour,
	}
}

// RetentionSweeper periodically deletes artifacts past the retention window.
// It runs on its own goroutine with an explicit start/stop lifecycle; sweeps
// can also be triggered deterministically with RunOnce.
type RetentionSweeper struct {
	config  RetentionSweeperConfig
	cleaner ArtifactCleaner
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewRetentionSweeper creates a new retention sweeper
func NewRetentionSweeper(config RetentionSweeperConfig, cleaner ArtifactCleaner, logger *zap.Logger) *RetentionSweeper {
	if config.Retention == 0 {
		config.Retention = DefaultRetentionSweeperConfig().Retention
	}
	if config.Interval == 0 {
		config.Interval = DefaultRetentionSweeperConfig().Interval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionSweeper{
		config:  config,
		cleaner: cleaner,
		logger:  logger,
	}
}

// Start starts the periodic sweep loop
func (s *RetentionSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Retention sweeper started",
		zap.Duration("retention", s.config.Retention),
		zap.Duration("interval", s.config.Interval),
	)

	return nil
}

// Stop stops the sweep loop and waits for it to finish
func (s *RetentionSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Retention sweeper stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Retention sweeper stop timed out")
		return ctx.Err()
	}
}

// runLoop sweeps on every tick until the context is cancelled
func (s *RetentionSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Failures are logged and never propagate;
// a broken sweep must not take the loop down with it.
func (s *RetentionSweeper) RunOnce(ctx context.Context) {
	runID := uuid.New().String()[:8]
	start := time.Now()

	deleted, failed, err := s.cleaner.CleanupOlderThan(ctx, s.config.Retention)
	if err != nil {
		s.logger.Error("Retention sweep failed",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Retention sweep completed",
		zap.String("run_id", runID),
		zap.Int("deleted", deleted),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
}
