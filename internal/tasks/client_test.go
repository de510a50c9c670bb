package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/logging"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, tmpDir
}

func TestNewClient(t *testing.T) {
	_, tmpDir := newTestClient(t)

	_, err := os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "fullsco-tasks.db"), TasksDBPath(filepath.Join("data", "fullsco.db")))
	assert.Equal(t, filepath.Join("data", "portal-tasks.db"), TasksDBPath(filepath.Join("data", "portal")))
}

func TestClientStartStop(t *testing.T) {
	client, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client, _ := newTestClient(t)
	assert.True(t, client.Stop(context.Background()))
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	client, _ := newTestClient(t)

	executed := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(TestTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

type fakeRecalculator struct {
	mu      sync.Mutex
	courses []uint
	err     error
	done    chan uint
}

func (f *fakeRecalculator) RecalculateCourse(ctx context.Context, courseID uint) (int, error) {
	f.mu.Lock()
	f.courses = append(f.courses, courseID)
	f.mu.Unlock()
	if f.done != nil {
		f.done <- courseID
	}
	return 2, f.err
}

func TestQueueRecalculator_RunsThroughQueue(t *testing.T) {
	client, _ := newTestClient(t)

	recalc := &fakeRecalculator{done: make(chan uint, 1)}
	client.Register(NewRecalculateCourseProgressQueue(recalc, logging.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	require.NoError(t, QueueRecalculator{Client: client}.ScheduleCourseRecalculation(context.Background(), 7))

	select {
	case id := <-recalc.done:
		assert.Equal(t, uint(7), id)
	case <-time.After(5 * time.Second):
		t.Fatal("recalculation was not executed within timeout")
	}
}

func TestRecalculateCourseProgressProcessor(t *testing.T) {
	t.Run("calls recalculator", func(t *testing.T) {
		recalc := &fakeRecalculator{}
		err := RecalculateCourseProgressProcessor(recalc, nil)(context.Background(), RecalculateCourseProgressTask{CourseID: 3})
		require.NoError(t, err)
		assert.Equal(t, []uint{3}, recalc.courses)
	})

	t.Run("zero course", func(t *testing.T) {
		recalc := &fakeRecalculator{}
		err := RecalculateCourseProgressProcessor(recalc, nil)(context.Background(), RecalculateCourseProgressTask{})
		assert.Error(t, err)
		assert.Empty(t, recalc.courses)
	})

	t.Run("wraps failure", func(t *testing.T) {
		boom := errors.New("boom")
		err := RecalculateCourseProgressProcessor(&fakeRecalculator{err: boom}, nil)(context.Background(), RecalculateCourseProgressTask{CourseID: 1})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("not configured", func(t *testing.T) {
		err := RecalculateCourseProgressProcessor(nil, nil)(context.Background(), RecalculateCourseProgressTask{CourseID: 1})
		assert.Error(t, err)
	})
}

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
}

func (f *fakeCleaner) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, nil
}

func TestCleanupAuditEvents(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 4}

	n, err := CleanupAuditEvents(context.Background(), cleaner, 0, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, 30*24*time.Hour, cleaner.retention)

	err = CleanupAuditEventsProcessor(cleaner, nil)(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)

	_, err = CleanupAuditEvents(context.Background(), nil, 7, nil)
	assert.Error(t, err)
}

func TestTaskConfigs(t *testing.T) {
	recalc := RecalculateCourseProgressTask{CourseID: 1}.Config()
	assert.Equal(t, "recalculate_course_progress", recalc.Name)
	assert.Equal(t, 3, recalc.MaxAttempts)
	assert.NotNil(t, recalc.Retention)

	cleanup := CleanupAuditEventsTask{}.Config()
	assert.Equal(t, "cleanup_audit_events", cleanup.Name)
	assert.Equal(t, 2*time.Minute, cleanup.Timeout)
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)

	cfg = FromConfig(config.Tasks{Workers: 4})
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
}
