package repository

import (
	"context"
	"strings"
	"sync"

	"ezytutors/internal/model"
)

// CourseRepository is the course registry. Implementations serialize
// creations per tutor so that course ids stay gapless and unique, and
// return copies that callers may modify freely.
type CourseRepository interface {
	// RecordVisit increments the health-check counter and returns the new value.
	RecordVisit(ctx context.Context) (int64, error)
	// AddCourse stores a new course with the next id for tutorID.
	AddCourse(ctx context.Context, tutorID int, name string) (model.Course, error)
	// ListCourses returns the tutor's courses in creation order.
	ListCourses(ctx context.Context, tutorID int) ([]model.Course, error)
	// GetCourse returns one course or ErrCourseNotFound.
	GetCourse(ctx context.Context, tutorID, courseID int) (model.Course, error)
}

func validateCourseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "course_name", Reason: "must not be empty"}
	}
	return nil
}

// visitCounter is process-local for every backend.
type visitCounter struct {
	mu sync.Mutex
	n  int64
}

func (v *visitCounter) increment() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.n++
	return v.n
}
