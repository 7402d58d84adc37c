package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"ezytutors/internal/model"
	"ezytutors/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return "msg-1", nil
}

func TestCreateCoursePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewCourseService(repository.NewMemoryCourseRepository(), pub, "course-events", zerolog.Nop())

	created, err := svc.CreateCourse(context.Background(), 1, "Rust 101")
	require.NoError(t, err)
	assert.Equal(t, 1, created.CourseID)

	require.Len(t, pub.payloads, 1)
	assert.Equal(t, "course-events", pub.topics[0])

	var event model.CourseCreatedEvent
	require.NoError(t, json.Unmarshal(pub.payloads[0], &event))
	assert.Equal(t, model.CourseCreatedEventType, event.Type)
	assert.Equal(t, 1, event.TutorID)
	assert.Equal(t, 1, event.CourseID)
	assert.Equal(t, "Rust 101", event.CourseName)
}

func TestCreateCourseSurvivesPublishFailure(t *testing.T) {
	var logs bytes.Buffer
	pub := &recordingPublisher{err: errors.New("topic not found")}
	svc := NewCourseService(repository.NewMemoryCourseRepository(), pub, "course-events", zerolog.New(&logs))

	created, err := svc.CreateCourse(context.Background(), 1, "Rust 101")
	require.NoError(t, err)
	assert.Equal(t, 1, created.CourseID)
	assert.Contains(t, logs.String(), "Failed to publish course event")
	assert.Contains(t, logs.String(), "topic not found")
}

func TestCreateCourseWithoutPublisher(t *testing.T) {
	svc := NewCourseService(repository.NewMemoryCourseRepository(), nil, "", zerolog.Nop())

	_, err := svc.CreateCourse(context.Background(), 1, "Rust 101")
	require.NoError(t, err)
}

func TestCreateCourseValidationSkipsPublish(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewCourseService(repository.NewMemoryCourseRepository(), pub, "course-events", zerolog.Nop())

	_, err := svc.CreateCourse(context.Background(), 1, "")
	assert.True(t, repository.IsValidationError(err))
	assert.Empty(t, pub.payloads)
}

func TestServiceDelegatesReads(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(repository.NewMemoryCourseRepository(), nil, "", zerolog.Nop())

	_, err := svc.CreateCourse(ctx, 4, "Go 101")
	require.NoError(t, err)

	courses, err := svc.ListCourses(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	_, err = svc.GetCourse(ctx, 4, 2)
	assert.ErrorIs(t, err, repository.ErrCourseNotFound)

	n, err := svc.RecordVisit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCreateCourseTrimsName(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewCourseService(repository.NewMemoryCourseRepository(), pub, "course-events", zerolog.Nop())

	created, err := svc.CreateCourse(ctx, 1, "  Rust 101  ")
	require.NoError(t, err)
	assert.Equal(t, "Rust 101", created.CourseName)

	stored, err := svc.GetCourse(ctx, 1, created.CourseID)
	require.NoError(t, err)
	assert.Equal(t, "Rust 101", stored.CourseName)

	require.Len(t, pub.payloads, 1)
	var event model.CourseCreatedEvent
	require.NoError(t, json.Unmarshal(pub.payloads[0], &event))
	assert.Equal(t, "Rust 101", event.CourseName)
}
