package services

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/database"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/logging"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := "./test_services_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     dbPath,
		LogLevel: "silent",
	}, logging.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db.DB
}

// spyStore counts calls to the mutating methods of the wrapped store.
type spyStore[T any] struct {
	Store[T]
	mu      sync.Mutex
	creates int
	updates int
	deletes int
}

func (s *spyStore[T]) Create(ctx context.Context, entity *T) error {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()
	return s.Store.Create(ctx, entity)
}

func (s *spyStore[T]) Update(ctx context.Context, id uint, columns map[string]any) (*T, error) {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	return s.Store.Update(ctx, id, columns)
}

func (s *spyStore[T]) Delete(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	s.deletes++
	s.mu.Unlock()
	return s.Store.Delete(ctx, id)
}

type recordedChange struct {
	eventType  entities.AuditEventType
	entityType string
	entityID   uint
}

// fakeRecorder collects audit calls in memory.
type fakeRecorder struct {
	mu          sync.Mutex
	changes     []recordedChange
	settings    []string
	enrollments []string
}

func (r *fakeRecorder) LogChange(_ context.Context, eventType entities.AuditEventType, entityType string, entityID uint, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, recordedChange{eventType, entityType, entityID})
}

func (r *fakeRecorder) LogSettings(_ context.Context, action, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = append(r.settings, action)
}

func (r *fakeRecorder) LogEnrollment(_ context.Context, action string, _ uint, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrollments = append(r.enrollments, action)
}

func (r *fakeRecorder) enrollmentActions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.enrollments...)
}

func ptr[T any](v T) *T {
	return &v
}
