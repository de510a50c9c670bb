package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyEnrolled    = errors.New("user is already enrolled in this course")
	ErrCourseNotPublished = errors.New("course is not published")
	ErrLessonNotInCourse  = errors.New("lesson does not belong to the enrolled course")
)

// NotFoundError names the entity that was missing. It matches ErrNotFound
// with errors.Is.
type NotFoundError struct {
	Entity string
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
