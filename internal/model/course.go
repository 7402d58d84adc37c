package model

import "time"

// Course is a single course offered by a tutor. CourseID is unique only
// within the owning tutor's courses.
type Course struct {
	TutorID    int       `db:"tutor_id" json:"tutor_id"`
	CourseID   int       `db:"course_id" json:"course_id"`
	CourseName string    `db:"course_name" json:"course_name"`
	PostedTime time.Time `db:"posted_time" json:"posted_time"`
}

// CourseCreatedEvent is published after a course has been stored.
type CourseCreatedEvent struct {
	Type       string    `json:"type"`
	TutorID    int       `json:"tutor_id"`
	CourseID   int       `json:"course_id"`
	CourseName string    `json:"course_name"`
	PostedTime time.Time `json:"posted_time"`
}

// CourseCreatedEventType identifies CourseCreatedEvent payloads.
const CourseCreatedEventType = "course.created"

// NewCourseCreatedEvent builds the event for a stored course.
func NewCourseCreatedEvent(c Course) CourseCreatedEvent {
	return CourseCreatedEvent{
		Type:       CourseCreatedEventType,
		TutorID:    c.TutorID,
		CourseID:   c.CourseID,
		CourseName: c.CourseName,
		PostedTime: c.PostedTime,
	}
}
