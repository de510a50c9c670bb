// Package scheduler runs the periodic maintenance jobs of the portal.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule reports whether schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// AuditCleanupScheduler enqueues the audit retention task on a cron schedule.
// Without a task client the cleanup runs inside the cron goroutine.
type AuditCleanupScheduler struct {
	cfg     config.Audit
	queue   *tasks.Client
	cleaner tasks.AuditEventCleaner
	log     *logging.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance. queue may be nil.
func NewAuditCleanupScheduler(cfg config.Audit, queue *tasks.Client, cleaner tasks.AuditEventCleaner, log *logging.Logger) *AuditCleanupScheduler {
	if log == nil {
		log = logging.Nop()
	}
	return &AuditCleanupScheduler{
		cfg:     cfg,
		queue:   queue,
		cleaner: cleaner,
		log:     log.With("scheduler"),
		cron:    cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the job and starts the cron loop. An empty schedule
// disables the job.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.cfg.CleanupSchedule == "" {
		s.log.Info("audit cleanup scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.cfg.CleanupSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.CleanupSchedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.cfg.CleanupSchedule, func() {
		if err := s.RunNow(cancelCtx); err != nil {
			s.log.Error(err, "audit cleanup failed")
		}
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Infof("audit cleanup scheduler: started with schedule '%s'. Next run: %v",
		s.cfg.CleanupSchedule, s.nextRunLocked())

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron loop and waits for a running job to return.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.log.Info("audit cleanup scheduler: stopped")
}

// RunNow performs one cleanup: enqueued when a task client is present,
// inline otherwise.
func (s *AuditCleanupScheduler) RunNow(ctx context.Context) error {
	if s.queue != nil {
		_, err := s.queue.Add(tasks.CleanupAuditEventsTask{RetentionDays: s.cfg.RetentionDays}).Ctx(ctx).Save()
		if err != nil {
			return fmt.Errorf("enqueue audit cleanup: %w", err)
		}
		return nil
	}
	_, err := tasks.CleanupAuditEvents(ctx, s.cleaner, s.cfg.RetentionDays, s.log)
	return err
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the job fires next, nil when stopped.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextRunLocked()
}

func (s *AuditCleanupScheduler) nextRunLocked() *time.Time {
	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}
