package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ezytutors/internal/model"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const (
	dialectPostgres = "postgres"
	courseTable     = "ezy_course"

	colTutorID    = "tutor_id"
	colCourseID   = "course_id"
	colCourseName = "course_name"
	colPostedTime = "posted_time"

	pgUniqueViolation = "23505"
)

// PostgresCourseRepository stores courses in the ezy_course table, whose
// primary key is (tutor_id, course_id). Creations for one tutor are
// serialized with a transaction-scoped advisory lock keyed by the tutor id,
// so no in-process lock is held while talking to the database.
type PostgresCourseRepository struct {
	db     *sql.DB
	logger zerolog.Logger
	visits visitCounter
}

// NewPostgresCourseRepository creates a CourseRepository backed by db.
func NewPostgresCourseRepository(db *sql.DB, logger zerolog.Logger) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db, logger: logger}
}

func (r *PostgresCourseRepository) RecordVisit(_ context.Context) (int64, error) {
	return r.visits.increment(), nil
}

// AddCourse counts the tutor's courses and inserts the next one inside a
// single transaction holding pg_advisory_xact_lock(tutor_id).
func (r *PostgresCourseRepository) AddCourse(ctx context.Context, tutorID int, name string) (model.Course, error) {
	if err := validateCourseName(name); err != nil {
		return model.Course{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Course{}, fmt.Errorf("begin add course: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.Error().Err(rbErr).Int("tutor_id", tutorID).Msg("Failed to roll back add course")
		}
	}()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", int64(tutorID)); err != nil {
		return model.Course{}, fmt.Errorf("lock tutor %d: %w", tutorID, err)
	}

	countQuery, countArgs, err := buildCountQuery(tutorID)
	if err != nil {
		return model.Course{}, err
	}
	var count int
	if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return model.Course{}, fmt.Errorf("count courses for tutor %d: %w", tutorID, err)
	}

	insertQuery, insertArgs, err := buildInsertQuery(tutorID, count+1, name, time.Now().UTC())
	if err != nil {
		return model.Course{}, err
	}
	var c model.Course
	err = tx.QueryRowContext(ctx, insertQuery, insertArgs...).
		Scan(&c.TutorID, &c.CourseID, &c.CourseName, &c.PostedTime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Error().Int("tutor_id", tutorID).Int("course_id", count+1).
				Msg("Duplicate course id under advisory lock")
			return model.Course{}, fmt.Errorf("insert course for tutor %d: %w", tutorID, ErrConcurrencyFault)
		}
		return model.Course{}, fmt.Errorf("insert course for tutor %d: %w", tutorID, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Course{}, fmt.Errorf("commit add course: %w", err)
	}
	c.PostedTime = c.PostedTime.UTC()
	return c, nil
}

func (r *PostgresCourseRepository) ListCourses(ctx context.Context, tutorID int) ([]model.Course, error) {
	query, args, err := buildSelectQuery(goqu.Ex{colTutorID: tutorID})
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses for tutor %d: %w", tutorID, err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.TutorID, &c.CourseID, &c.CourseName, &c.PostedTime); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		c.PostedTime = c.PostedTime.UTC()
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses for tutor %d: %w", tutorID, err)
	}
	return courses, nil
}

func (r *PostgresCourseRepository) GetCourse(ctx context.Context, tutorID, courseID int) (model.Course, error) {
	query, args, err := buildSelectQuery(goqu.Ex{colTutorID: tutorID, colCourseID: courseID})
	if err != nil {
		return model.Course{}, err
	}

	var c model.Course
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&c.TutorID, &c.CourseID, &c.CourseName, &c.PostedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Course{}, ErrCourseNotFound
		}
		return model.Course{}, fmt.Errorf("get course %d for tutor %d: %w", courseID, tutorID, err)
	}
	c.PostedTime = c.PostedTime.UTC()
	return c, nil
}

func buildSelectQuery(where goqu.Ex) (string, []interface{}, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(courseTable).
		Select(colTutorID, colCourseID, colCourseName, colPostedTime).
		Where(where).
		Order(goqu.I(colCourseID).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select query: %w", err)
	}
	return query, args, nil
}

func buildCountQuery(tutorID int) (string, []interface{}, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(courseTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colTutorID).Eq(tutorID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build count query: %w", err)
	}
	return query, args, nil
}

func buildInsertQuery(tutorID, courseID int, name string, postedTime time.Time) (string, []interface{}, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		Insert(courseTable).
		Rows(goqu.Record{
			colTutorID:    tutorID,
			colCourseID:   courseID,
			colCourseName: name,
			colPostedTime: postedTime,
		}).
		Returning(colTutorID, colCourseID, colCourseName, colPostedTime).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert query: %w", err)
	}
	return query, args, nil
}
