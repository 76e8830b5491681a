// Package sqlite provides a SQLite-backed course registry store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/registrar/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/registrar/internal/services/course/storage"
	"github.com/louisbranch/registrar/internal/services/course/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

const courseColumns = `id, code, title, seats, capacity, open, created_at, updated_at`

// Store persists course state in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite course store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	sqlDB, err := sql.Open("sqlite", filepath.Clean(path)+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; the seat updates rely on statement atomicity,
	// not on connection parallelism.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) now() int64 {
	if s.clock == nil {
		return toMillis(time.Now())
	}
	return toMillis(s.clock())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (storage.Course, error) {
	var course storage.Course
	var open int
	var createdAt, updatedAt int64
	if err := row.Scan(
		&course.ID,
		&course.Code,
		&course.Title,
		&course.Seats,
		&course.Capacity,
		&open,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Course{}, err
	}
	course.Open = open != 0
	course.CreatedAt = fromMillis(createdAt)
	course.UpdatedAt = fromMillis(updatedAt)
	return course, nil
}

// ListOpenCourses returns every open course ordered by id.
func (s *Store) ListOpenCourses(ctx context.Context) ([]storage.Course, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+courseColumns+`
		   FROM courses
		  WHERE open = 1
		  ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]storage.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetCourse returns one course by id, open or not.
func (s *Store) GetCourse(ctx context.Context, id int64) (storage.Course, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Course{}, err
	}
	return getCourse(ctx, s.sqlDB, id)
}

func getCourse(ctx context.Context, q queryer, id int64) (storage.Course, error) {
	course, err := scanCourse(q.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Course{}, storage.ErrNotFound
		}
		return storage.Course{}, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

// CreateCourse inserts an open course whose capacity equals its seats.
func (s *Store) CreateCourse(ctx context.Context, course storage.Course) (storage.Course, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Course{}, err
	}
	code := strings.TrimSpace(course.Code)
	title := strings.TrimSpace(course.Title)
	if code == "" {
		return storage.Course{}, fmt.Errorf("course code is required")
	}
	if title == "" {
		return storage.Course{}, fmt.Errorf("course title is required")
	}
	if course.Seats < 0 {
		return storage.Course{}, fmt.Errorf("seats must not be negative")
	}

	now := s.now()
	created, err := scanCourse(s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO courses (code, title, seats, capacity, open, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?)
		 RETURNING `+courseColumns,
		code, title, course.Seats, course.Seats, now, now,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Course{}, storage.ErrAlreadyExists
		}
		return storage.Course{}, fmt.Errorf("create course: %w", err)
	}
	return created, nil
}

// CloseCourse marks a course closed. Closing a closed course is a no-op.
func (s *Store) CloseCourse(ctx context.Context, id int64) (storage.Course, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Course{}, err
	}
	course, err := scanCourse(s.sqlDB.QueryRowContext(ctx,
		`UPDATE courses SET open = 0, updated_at = ?
		  WHERE id = ?
		 RETURNING `+courseColumns,
		s.now(), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Course{}, storage.ErrNotFound
		}
		return storage.Course{}, fmt.Errorf("close course: %w", err)
	}
	return course, nil
}

// SetSeats overwrites the remaining seat count. Raising seats above capacity
// raises capacity with it.
func (s *Store) SetSeats(ctx context.Context, id int64, seats int) (storage.Course, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Course{}, err
	}
	if seats < 0 {
		return storage.Course{}, fmt.Errorf("seats must not be negative")
	}
	course, err := scanCourse(s.sqlDB.QueryRowContext(ctx,
		`UPDATE courses SET seats = ?, capacity = MAX(capacity, ?), updated_at = ?
		  WHERE id = ?
		 RETURNING `+courseColumns,
		seats, seats, s.now(), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Course{}, storage.ErrNotFound
		}
		return storage.Course{}, fmt.Errorf("set seats: %w", err)
	}
	return course, nil
}

// ReserveSeat claims one seat in a single conditional UPDATE, so concurrent
// reservations can never drive seats below zero. With a reservation id the
// claim and its record commit together.
func (s *Store) ReserveSeat(ctx context.Context, id int64, reservationID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return claimSeat(ctx, s.sqlDB, id, s.now())
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing, found, err := getReservation(ctx, tx, reservationID)
	if err != nil {
		return 0, err
	}
	if found {
		switch {
		case existing.courseID != id:
			return 0, storage.ErrReservationMismatch
		case existing.released:
			return 0, storage.ErrReservationReleased
		}
		return existing.seatsRemaining, nil
	}

	now := s.now()
	remaining, err := claimSeat(ctx, tx, id, now)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO seat_reservations (reservation_id, course_id, seats_remaining, created_at)
		 VALUES (?, ?, ?, ?)`,
		reservationID, id, remaining, now,
	); err != nil {
		return 0, fmt.Errorf("record reservation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reservation: %w", err)
	}
	return remaining, nil
}

// ReleaseSeat returns one seat to the course, never exceeding capacity. A
// reservation id is released at most once; an unknown one is recorded as
// released without touching seats.
func (s *Store) ReleaseSeat(ctx context.Context, id int64, reservationID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return returnSeat(ctx, s.sqlDB, id, s.now())
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	course, err := getCourse(ctx, tx, id)
	if err != nil {
		return 0, err
	}
	existing, found, err := getReservation(ctx, tx, reservationID)
	if err != nil {
		return 0, err
	}
	now := s.now()
	remaining := course.Seats
	switch {
	case !found:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO seat_reservations (reservation_id, course_id, seats_remaining, released_at, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			reservationID, id, course.Seats, now, now,
		); err != nil {
			return 0, fmt.Errorf("record released reservation: %w", err)
		}
	case existing.courseID != id:
		return 0, storage.ErrReservationMismatch
	case existing.released:
		return course.Seats, nil
	default:
		remaining, err = returnSeat(ctx, tx, id, now)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE seat_reservations SET released_at = ? WHERE reservation_id = ?`,
			now, reservationID,
		); err != nil {
			return 0, fmt.Errorf("mark reservation released: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit release: %w", err)
	}
	return remaining, nil
}

type reservation struct {
	courseID       int64
	seatsRemaining int
	released       bool
}

func getReservation(ctx context.Context, q queryer, reservationID string) (reservation, bool, error) {
	var r reservation
	var releasedAt sql.NullInt64
	err := q.QueryRowContext(ctx,
		`SELECT course_id, seats_remaining, released_at
		   FROM seat_reservations
		  WHERE reservation_id = ?`,
		reservationID,
	).Scan(&r.courseID, &r.seatsRemaining, &releasedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reservation{}, false, nil
		}
		return reservation{}, false, fmt.Errorf("get reservation: %w", err)
	}
	r.released = releasedAt.Valid
	return r, true, nil
}

func claimSeat(ctx context.Context, q queryer, id int64, now int64) (int, error) {
	var remaining int
	err := q.QueryRowContext(ctx,
		`UPDATE courses SET seats = seats - 1, updated_at = ?
		  WHERE id = ? AND open = 1 AND seats > 0
		 RETURNING seats`,
		now, id,
	).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("reserve seat: %w", err)
	}

	// Nothing matched; report why.
	course, err := getCourse(ctx, q, id)
	if err != nil {
		return 0, err
	}
	if !course.Open {
		return 0, storage.ErrCourseClosed
	}
	return 0, storage.ErrNoSeats
}

func returnSeat(ctx context.Context, q queryer, id int64, now int64) (int, error) {
	var remaining int
	err := q.QueryRowContext(ctx,
		`UPDATE courses SET seats = MIN(seats + 1, capacity), updated_at = ?
		  WHERE id = ?
		 RETURNING seats`,
		now, id,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("release seat: %w", err)
	}
	return remaining, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "courses.code")
}

var _ storage.CourseStore = (*Store)(nil)
