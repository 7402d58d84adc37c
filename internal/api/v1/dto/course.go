package dto

import (
	"time"

	"ezytutors/internal/model"
)

// CourseCreateDTO is used for incoming course creation requests.
// course_id and posted_time are accepted but ignored; the registry assigns them.
type CourseCreateDTO struct {
	TutorID    *int       `json:"tutor_id" validate:"required,gte=1,lte=2147483647"`
	CourseID   *int       `json:"course_id,omitempty"`
	CourseName string     `json:"course_name" validate:"required"`
	PostedTime *time.Time `json:"posted_time,omitempty"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	TutorID    int       `json:"tutor_id"`
	CourseID   int       `json:"course_id"`
	CourseName string    `json:"course_name"`
	PostedTime time.Time `json:"posted_time"`
}

// NewCourseResponseDTO maps a stored course to its response shape.
func NewCourseResponseDTO(c model.Course) CourseResponseDTO {
	return CourseResponseDTO{
		TutorID:    c.TutorID,
		CourseID:   c.CourseID,
		CourseName: c.CourseName,
		PostedTime: c.PostedTime,
	}
}
