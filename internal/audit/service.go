// Package audit records who changed what. Events are written in the
// background so a failing audit insert never fails the request that caused it.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fullsco/portal/internal/database/audit"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/logging"
)

// Actor identifies the caller of a request. The HTTP layer stores it in the
// request context; services read it back when recording changes.
type Actor struct {
	UserID    uint
	IPAddress string
	UserAgent string
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, or the zero Actor.
func ActorFrom(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	log     *logging.Logger
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log *logging.Logger) *Service {
	return &Service{repo: repo, log: log.With("audit")}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(ctx context.Context, event *entities.AuditEvent) {
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			s.log.Error(err, "Failed to log audit event")
		}
	}()
}

// Wait blocks until every event queued with LogAsync has been written.
// Called on shutdown and by tests.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogChange records a create, update or delete of a CMS or course entity.
func (s *Service) LogChange(ctx context.Context, eventType entities.AuditEventType, entityType string, entityID uint, description string) {
	actor := ActorFrom(ctx)
	event := &entities.AuditEvent{
		UserID:      actor.UserID,
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		IPAddress:   actor.IPAddress,
		UserAgent:   truncate(actor.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(ctx, event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(ctx context.Context, userID uint, action string, success bool) {
	actor := ActorFrom(ctx)
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: actor.IPAddress,
		UserAgent: truncate(actor.UserAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(ctx, event)
}

// LogSettings records a site settings change event.
func (s *Service) LogSettings(ctx context.Context, action, description string) {
	actor := ActorFrom(ctx)
	event := &entities.AuditEvent{
		UserID:      actor.UserID,
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		IPAddress:   actor.IPAddress,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(ctx, event)
}

// LogEnrollment records enrollment lifecycle events: enrollment, completion
// and certificate issuance.
func (s *Service) LogEnrollment(ctx context.Context, action string, enrollmentID uint, metadata map[string]any) {
	actor := ActorFrom(ctx)
	event := &entities.AuditEvent{
		UserID:     actor.UserID,
		EventType:  entities.AuditEventEnrollment,
		Action:     action,
		EntityType: "enrollment",
		EntityID:   &enrollmentID,
		Status:     entities.AuditStatusSuccess,
	}

	if len(metadata) > 0 {
		if mdBytes, err := json.Marshal(metadata); err == nil {
			event.Metadata = string(mdBytes)
		}
	}

	s.LogAsync(ctx, event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, filter audit.Filter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, filter, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens s to at most maxLen bytes, cutting on a rune boundary
// so the result stays valid UTF-8.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
