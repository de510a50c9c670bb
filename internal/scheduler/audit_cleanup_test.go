package scheduler

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/tasks"
)

type fakeCleaner struct {
	mu        sync.Mutex
	calls     int
	retention time.Duration
}

func (f *fakeCleaner) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.retention = retention
	return 1, nil
}

func (f *fakeCleaner) snapshot() (int, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.retention
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("every day"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"))
}

func TestAuditCleanupScheduler_RunNowInline(t *testing.T) {
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler(config.Audit{RetentionDays: 10}, nil, cleaner, logging.Nop())

	require.NoError(t, s.RunNow(context.Background()))

	calls, retention := cleaner.snapshot()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 10*24*time.Hour, retention)
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(config.Audit{CleanupSchedule: "0 3 * * *"}, nil, &fakeCleaner{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	next := s.NextRun()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, s.NextRun())
}

func TestAuditCleanupScheduler_Disabled(t *testing.T) {
	s := NewAuditCleanupScheduler(config.Audit{}, nil, &fakeCleaner{}, nil)
	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(config.Audit{CleanupSchedule: "nonsense"}, nil, &fakeCleaner{}, nil)
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_RunNowEnqueues(t *testing.T) {
	cfg := tasks.DefaultConfig()
	cfg.Workers = 1
	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "test.db"), cfg, logging.Nop())
	require.NoError(t, err)
	defer client.Close()

	cleaner := &fakeCleaner{}
	client.Register(tasks.NewCleanupAuditEventsQueue(cleaner, logging.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	s := NewAuditCleanupScheduler(config.Audit{RetentionDays: 3}, client, cleaner, logging.Nop())
	require.NoError(t, s.RunNow(context.Background()))

	assert.Eventually(t, func() bool {
		calls, _ := cleaner.snapshot()
		return calls == 1
	}, 5*time.Second, 20*time.Millisecond)
	_, retention := cleaner.snapshot()
	assert.Equal(t, 3*24*time.Hour, retention)
}
