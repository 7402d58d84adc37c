package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ezytutors/internal/model"
	"ezytutors/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCourseService returns canned results.
type stubCourseService struct {
	visits int64
	course model.Course
	list   []model.Course
	err    error
}

func (s *stubCourseService) RecordVisit(context.Context) (int64, error) {
	s.visits++
	return s.visits, s.err
}

func (s *stubCourseService) CreateCourse(_ context.Context, tutorID int, name string) (model.Course, error) {
	if s.err != nil {
		return model.Course{}, s.err
	}
	return model.Course{TutorID: tutorID, CourseID: 1, CourseName: name, PostedTime: s.course.PostedTime}, nil
}

func (s *stubCourseService) ListCourses(context.Context, int) ([]model.Course, error) {
	return s.list, s.err
}

func (s *stubCourseService) GetCourse(context.Context, int, int) (model.Course, error) {
	return s.course, s.err
}

func newMux(svc *stubCourseService, strict bool, logs *bytes.Buffer) *http.ServeMux {
	logger := zerolog.New(logs)
	mux := http.NewServeMux()
	NewHealthHandler(svc, "Still here, asked", logger).RegisterRoutes(mux)
	NewCourseHandler(svc, NewValidator(), strict, logger).RegisterRoutes(mux)
	return mux
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func bodyString(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestHealthCheckMessage(t *testing.T) {
	var logs bytes.Buffer
	mux := newMux(&stubCourseService{visits: 4}, false, &logs)

	rec := serve(mux, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Still here, asked 5 times", bodyString(t, rec))
}

func TestCreateCourseResponseShape(t *testing.T) {
	var logs bytes.Buffer
	posted := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	mux := newMux(&stubCourseService{course: model.Course{PostedTime: posted}}, false, &logs)

	rec := serve(mux, http.MethodPost, "/courses/", `{"tutor_id":2,"course_name":"Go 101"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"tutor_id":2,"course_id":1,"course_name":"Go 101","posted_time":"2024-05-01T08:30:00Z"}`,
		rec.Body.String())
}

func TestErrorKindsMapToDistinctResponses(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		strict     bool
		wantStatus int
		wantBody   string
	}{
		{"validation", &repository.ValidationError{Field: "course_name", Reason: "must not be empty"}, false,
			http.StatusOK, "Validation failed: course_name: must not be empty"},
		{"validation strict", &repository.ValidationError{Field: "course_name", Reason: "must not be empty"}, true,
			http.StatusBadRequest, "Validation failed: course_name: must not be empty"},
		{"not found", repository.ErrCourseNotFound, false, http.StatusOK, "Course not found"},
		{"not found strict", repository.ErrCourseNotFound, true, http.StatusNotFound, "Course not found"},
		{"concurrency fault", fmt.Errorf("insert: %w", repository.ErrConcurrencyFault), false,
			http.StatusInternalServerError, "Concurrency fault"},
		{"store failure", errors.New("connection refused"), true,
			http.StatusInternalServerError, "Failed to access course registry"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			mux := newMux(&stubCourseService{err: tc.err}, tc.strict, &logs)

			rec := serve(mux, http.MethodGet, "/courses/1/1", "")
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantBody, bodyString(t, rec))
		})
	}
}

func TestInternalFailuresAreLogged(t *testing.T) {
	var logs bytes.Buffer
	mux := newMux(&stubCourseService{err: repository.ErrConcurrencyFault}, false, &logs)

	serve(mux, http.MethodPost, "/courses/", `{"tutor_id":1,"course_name":"Go 101"}`)
	assert.Contains(t, logs.String(), "Concurrency fault in POST /courses/")
}

func TestListCoursesNilBecomesEmptyArray(t *testing.T) {
	var logs bytes.Buffer
	mux := newMux(&stubCourseService{list: nil}, false, &logs)

	rec := serve(mux, http.MethodGet, "/courses/9", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
