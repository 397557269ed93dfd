// Package scheduler corre tareas periódicas: auditoría del stock y limpieza del rate limiter.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"medistock/internal/domain/ledger"
	"medistock/internal/platform/logger"

	"github.com/go-co-op/gocron"
)

const pruneEvery = 5 * time.Minute

type Auditor interface {
	Audit(ctx context.Context, lowStock int) (ledger.AuditReport, error)
}

// AuditSink recibe el resultado de cada auditoría (métricas).
type AuditSink interface {
	AuditFinished(r ledger.AuditReport)
}

// Pruner descarta buckets inactivos y devuelve cuántos quedan.
type Pruner interface {
	Prune() int
}

type Options struct {
	Every    time.Duration // 0 = auditoría desactivada
	LowStock int
	Sink     AuditSink
	Pruner   Pruner
	OnPrune  func(remaining int)
	Logger   logger.Logger
}

type Scheduler struct {
	auditor   Auditor
	opts      Options
	log       logger.Logger
	scheduler *gocron.Scheduler
}

func New(auditor Auditor, opts Options) *Scheduler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		auditor:   auditor,
		opts:      opts,
		log:       log.With(map[string]any{"component": "scheduler"}),
		scheduler: s,
	}
}

// Start agenda los jobs y arranca en background. La primera auditoría corre al iniciar.
func (s *Scheduler) Start() error {
	if s.opts.Every > 0 {
		if _, err := s.scheduler.Every(s.opts.Every).Do(s.runAudit); err != nil {
			return fmt.Errorf("schedule audit: %w", err)
		}
	}
	if s.opts.Pruner != nil {
		if _, err := s.scheduler.Every(pruneEvery).WaitForSchedule().Do(s.runPrune); err != nil {
			return fmt.Errorf("schedule prune: %w", err)
		}
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runAudit() {
	start := time.Now()
	report, err := s.auditor.Audit(context.Background(), s.opts.LowStock)
	if err != nil {
		s.log.Error("stock audit failed", map[string]any{"err": err})
		return
	}

	for _, c := range report.Cycles {
		if len(c.LowStock) == 0 {
			continue
		}
		low := make(map[string]int, len(c.LowStock))
		for _, e := range c.LowStock {
			low[e.ProductID] = e.Quantity
		}
		s.log.Warn("low stock", map[string]any{
			"cycle_id":   c.CycleID,
			"cycle_name": c.CycleName,
			"products":   low,
		})
	}
	if s.opts.Sink != nil {
		s.opts.Sink.AuditFinished(report)
	}

	s.log.Info("stock audit completed", map[string]any{
		"cycles":      len(report.Cycles),
		"repaired":    report.RepairedCycles(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func (s *Scheduler) runPrune() {
	n := s.opts.Pruner.Prune()
	if s.opts.OnPrune != nil {
		s.opts.OnPrune(n)
	}
}
