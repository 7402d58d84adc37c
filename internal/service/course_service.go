package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ezytutors/internal/model"
	"ezytutors/internal/pubsub"
	"ezytutors/internal/repository"

	"github.com/rs/zerolog"
)

// CourseService defines the interface for course operations
type CourseService interface {
	// RecordVisit counts a health check and returns the new total
	RecordVisit(ctx context.Context) (int64, error)
	CreateCourse(ctx context.Context, tutorID int, name string) (model.Course, error)
	ListCourses(ctx context.Context, tutorID int) ([]model.Course, error)
	GetCourse(ctx context.Context, tutorID, courseID int) (model.Course, error)
}

// courseService is the implementation of CourseService
type courseService struct {
	repo      repository.CourseRepository
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// NewCourseService creates a new CourseService. A nil publisher disables
// course events.
func NewCourseService(repo repository.CourseRepository, publisher pubsub.Publisher, topic string, logger zerolog.Logger) CourseService {
	return &courseService{repo: repo, publisher: publisher, topic: topic, logger: logger}
}

func (s *courseService) RecordVisit(ctx context.Context) (int64, error) {
	return s.repo.RecordVisit(ctx)
}

// CreateCourse stores the course under its trimmed name and then announces
// it. The store call has returned before publishing starts, so no store lock
// is held during I/O.
func (s *courseService) CreateCourse(ctx context.Context, tutorID int, name string) (model.Course, error) {
	created, err := s.repo.AddCourse(ctx, tutorID, strings.TrimSpace(name))
	if err != nil {
		return model.Course{}, err
	}
	s.logger.Info().Int("tutor_id", created.TutorID).Int("course_id", created.CourseID).Msg("Course created")

	if s.publisher != nil {
		if err := s.publishCreated(ctx, created); err != nil {
			// The course is already stored; a lost event must not fail the request.
			s.logger.Error().Err(err).
				Int("tutor_id", created.TutorID).
				Int("course_id", created.CourseID).
				Msg("Failed to publish course event")
		}
	}
	return created, nil
}

func (s *courseService) ListCourses(ctx context.Context, tutorID int) ([]model.Course, error) {
	return s.repo.ListCourses(ctx, tutorID)
}

func (s *courseService) GetCourse(ctx context.Context, tutorID, courseID int) (model.Course, error) {
	return s.repo.GetCourse(ctx, tutorID, courseID)
}

func (s *courseService) publishCreated(ctx context.Context, c model.Course) error {
	payload, err := json.Marshal(model.NewCourseCreatedEvent(c))
	if err != nil {
		return fmt.Errorf("marshal course event: %w", err)
	}
	msgID, err := s.publisher.Publish(ctx, s.topic, payload)
	if err != nil {
		return err
	}
	s.logger.Debug().Str("message_id", msgID).Str("topic", s.topic).Msg("Course event published")
	return nil
}
