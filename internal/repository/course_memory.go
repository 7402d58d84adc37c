package repository

import (
	"context"
	"sync"
	"time"

	"ezytutors/internal/model"
)

// MemoryCourseRepository keeps the registry in process memory. Creations
// take the write lock for the whole count-then-append sequence; lookups
// share the read lock.
type MemoryCourseRepository struct {
	mu      sync.RWMutex
	courses []model.Course
	// byTutor holds indexes into courses, in insertion order.
	byTutor map[int][]int
	visits  visitCounter
	now     func() time.Time
}

// MemoryOption configures a MemoryCourseRepository.
type MemoryOption func(*MemoryCourseRepository)

// WithClock replaces time.Now as the source of posted times.
func WithClock(now func() time.Time) MemoryOption {
	return func(r *MemoryCourseRepository) {
		r.now = now
	}
}

// NewMemoryCourseRepository creates an empty registry.
func NewMemoryCourseRepository(opts ...MemoryOption) *MemoryCourseRepository {
	r := &MemoryCourseRepository{
		byTutor: make(map[int][]int),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MemoryCourseRepository) RecordVisit(_ context.Context) (int64, error) {
	return r.visits.increment(), nil
}

func (r *MemoryCourseRepository) AddCourse(_ context.Context, tutorID int, name string) (model.Course, error) {
	if err := validateCourseName(name); err != nil {
		return model.Course{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := model.Course{
		TutorID:    tutorID,
		CourseID:   len(r.byTutor[tutorID]) + 1,
		CourseName: name,
		PostedTime: r.now().UTC(),
	}
	r.courses = append(r.courses, c)
	r.byTutor[tutorID] = append(r.byTutor[tutorID], len(r.courses)-1)
	return c, nil
}

func (r *MemoryCourseRepository) ListCourses(_ context.Context, tutorID int) ([]model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.byTutor[tutorID]
	out := make([]model.Course, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.courses[i])
	}
	return out, nil
}

func (r *MemoryCourseRepository) GetCourse(_ context.Context, tutorID, courseID int) (model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Ids are assigned 1..n in insertion order, so the id is a position.
	idx := r.byTutor[tutorID]
	if courseID < 1 || courseID > len(idx) {
		return model.Course{}, ErrCourseNotFound
	}
	c := r.courses[idx[courseID-1]]
	if c.CourseID != courseID {
		return model.Course{}, ErrConcurrencyFault
	}
	return c, nil
}
