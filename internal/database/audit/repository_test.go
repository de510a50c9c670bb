package audit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fullsco/portal/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventCreate,
		Action:      "category_create",
		Description: "Created category: Graduate Studies",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			UserID:     1,
			EventType:  entities.AuditEventCreate,
			Action:     "scholarship_create",
			EntityType: "scholarship",
			Status:     entities.AuditStatusSuccess,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.LogEvent(ctx, event))
	}
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		UserID:    2,
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
	}))

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, Filter{UserID: 1}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 10)
		assert.True(t, events[0].CreatedAt.After(events[9].CreatedAt))

		rest, _, err := repo.GetEvents(ctx, Filter{UserID: 1}, 10, 10)
		require.NoError(t, err)
		assert.Len(t, rest, 5)
	})

	t.Run("all users", func(t *testing.T) {
		_, total, err := repo.GetEvents(ctx, Filter{}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(16), total)
	})

	t.Run("by type", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, Filter{EventType: entities.AuditEventAuth}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "login", events[0].Action)
	})

	t.Run("by entity type", func(t *testing.T) {
		_, total, err := repo.GetEvents(ctx, Filter{EntityType: "scholarship"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	old := &entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}
	recent := &entities.AuditEvent{Action: "recent"}
	require.NoError(t, repo.LogEvent(ctx, old))
	require.NoError(t, repo.LogEvent(ctx, recent))

	deleted, err := repo.DeleteOldEvents(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	gone, err := repo.GetEventByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.GetEventByID(ctx, recent.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "recent", kept.Action)
}
