package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/fullsco/portal/internal/logging"
)

// ProgressRecalculator recomputes every enrollment of one course.
type ProgressRecalculator interface {
	RecalculateCourse(ctx context.Context, courseID uint) (int, error)
}

// RecalculateCourseProgressTask refreshes enrollment progress after the
// lesson set of a course changed.
type RecalculateCourseProgressTask struct {
	CourseID uint `json:"course_id"`
}

// Config returns the queue configuration for progress recalculation tasks.
func (t RecalculateCourseProgressTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "recalculate_course_progress",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention:   retention(),
	}
}

// RecalculateCourseProgressProcessor creates a processor function for RecalculateCourseProgressTask.
func RecalculateCourseProgressProcessor(recalc ProgressRecalculator, log *logging.Logger) backlite.QueueProcessor[RecalculateCourseProgressTask] {
	return func(ctx context.Context, task RecalculateCourseProgressTask) error {
		if recalc == nil {
			return fmt.Errorf("progress recalculator not configured")
		}
		if task.CourseID == 0 {
			return fmt.Errorf("course id is required")
		}

		n, err := recalc.RecalculateCourse(ctx, task.CourseID)
		if err != nil {
			return fmt.Errorf("recalculate course %d: %w", task.CourseID, err)
		}
		if log != nil {
			log.Infof("recalculated %d enrollments of course %d", n, task.CourseID)
		}
		return nil
	}
}

// NewRecalculateCourseProgressQueue creates a backlite queue for progress recalculation.
func NewRecalculateCourseProgressQueue(recalc ProgressRecalculator, log *logging.Logger) backlite.Queue {
	return backlite.NewQueue(RecalculateCourseProgressProcessor(recalc, log))
}

// QueueRecalculator schedules recalculations on the task queue instead of
// running them in the request.
type QueueRecalculator struct {
	Client *Client
}

func (q QueueRecalculator) ScheduleCourseRecalculation(ctx context.Context, courseID uint) error {
	_, err := q.Client.Add(RecalculateCourseProgressTask{CourseID: courseID}).Ctx(ctx).Save()
	if err != nil {
		return fmt.Errorf("enqueue progress recalculation: %w", err)
	}
	return nil
}
