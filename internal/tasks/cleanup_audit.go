package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/fullsco/portal/internal/logging"
)

// DefaultAuditRetentionDays applies when a task carries no retention.
const DefaultAuditRetentionDays = 30

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask removes audit events older than the configured retention period.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit cleanup tasks.
func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention:   retention(),
	}
}

// CleanupAuditEvents runs one cleanup pass outside the queue. The scheduler
// calls it directly when the queue is disabled.
func CleanupAuditEvents(ctx context.Context, cleaner AuditEventCleaner, retentionDays int, log *logging.Logger) (int64, error) {
	if cleaner == nil {
		return 0, fmt.Errorf("audit event cleaner not configured")
	}
	if retentionDays <= 0 {
		retentionDays = DefaultAuditRetentionDays
	}

	deleted, err := cleaner.DeleteOldEvents(ctx, time.Duration(retentionDays)*24*time.Hour)
	if err != nil {
		return 0, fmt.Errorf("cleanup audit events: %w", err)
	}
	if log != nil {
		log.Infof("cleaned up %d audit events older than %d days", deleted, retentionDays)
	}
	return deleted, nil
}

// CleanupAuditEventsProcessor creates a processor function for CleanupAuditEventsTask.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, log *logging.Logger) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		_, err := CleanupAuditEvents(ctx, cleaner, task.RetentionDays, log)
		return err
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, log *logging.Logger) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, log))
}
