package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"ezytutors/internal/api/v1/dto"
	"ezytutors/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	errors        errorResponder
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, strict bool, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validate:      validate,
		errors:        errorResponder{strict: strict, logger: logger},
	}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /courses/{$}", h.createCourse)
	mux.HandleFunc("GET /courses/{tutor_id}", h.listCoursesForTutor)
	mux.HandleFunc("GET /courses/{tutor_id}/{course_id}", h.getCourseDetail)
}

// createCourse godoc
// @Summary Create a new course
// @Description Adds a course for a tutor and assigns the tutor's next course id.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 200 {string} string "Validation failed: <field>: <reason> (default mode)"
// @Failure 400 {string} string "Validation failed: <field>: <reason> (STRICT_STATUS_CODES)"
// @Failure 500 {string} string "Failed to access course registry"
// @Router /courses/ [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseCreateDTO
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		h.errors.write(w, r, toValidationError(err, "body"))
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.errors.write(w, r, toValidationError(errTrailingData, "body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errors.write(w, r, toValidationError(err, "body"))
		return
	}

	created, err := h.courseService.CreateCourse(r.Context(), *req.TutorID, req.CourseName)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCourseResponseDTO(created))
}

// listCoursesForTutor godoc
// @Summary List a tutor's courses
// @Description Returns the tutor's courses in creation order; an unknown tutor yields an empty array.
// @Tags courses
// @Produce json
// @Param tutorId path int true "Tutor ID"
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 200 {string} string "Validation failed: tutor_id: must be an integer (default mode)"
// @Failure 400 {string} string "Validation failed: tutor_id: must be an integer (STRICT_STATUS_CODES)"
// @Router /courses/{tutorId} [get]
func (h *CourseHandler) listCoursesForTutor(w http.ResponseWriter, r *http.Request) {
	tutorID, err := pathInt(r, "tutor_id")
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	courses, err := h.courseService.ListCourses(r.Context(), tutorID)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	resp := make([]dto.CourseResponseDTO, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, dto.NewCourseResponseDTO(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getCourseDetail godoc
// @Summary Get a course
// @Description Retrieves one course of a tutor.
// @Tags courses
// @Produce json
// @Param tutorId path int true "Tutor ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 200 {string} string "Course not found (default mode)"
// @Failure 400 {string} string "Validation failed: course_id: must be an integer (STRICT_STATUS_CODES)"
// @Failure 404 {string} string "Course not found (STRICT_STATUS_CODES)"
// @Router /courses/{tutorId}/{courseId} [get]
func (h *CourseHandler) getCourseDetail(w http.ResponseWriter, r *http.Request) {
	tutorID, err := pathInt(r, "tutor_id")
	if err != nil {
		h.errors.write(w, r, err)
		return
	}
	courseID, err := pathInt(r, "course_id")
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), tutorID, courseID)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCourseResponseDTO(course))
}

var (
	errNotInteger   = errors.New("must be an integer")
	errOutOfRange   = errors.New("must fit in a 32-bit integer")
	errTrailingData = errors.New("unexpected data after JSON object")
)

// pathInt parses an id path segment. Ids are int4 columns in Postgres, so
// anything outside int32 is rejected here for every backend.
func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, toValidationError(errOutOfRange, name)
		}
		return 0, toValidationError(errNotInteger, name)
	}
	return int(v), nil
}
