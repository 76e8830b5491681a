// Package storage defines persistence contracts for course registry state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested course is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a course with the same code already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrCourseClosed indicates the course no longer accepts enrollments.
	ErrCourseClosed = errors.New("course is closed")
	// ErrNoSeats indicates the course has no seats left to reserve.
	ErrNoSeats = errors.New("no seats remaining")
	// ErrReservationReleased indicates a reservation id was already released
	// and cannot claim a seat again.
	ErrReservationReleased = errors.New("reservation already released")
	// ErrReservationMismatch indicates a reservation id is bound to a
	// different course.
	ErrReservationMismatch = errors.New("reservation belongs to another course")
)

// Course is one catalog entry with its live seat count.
type Course struct {
	ID    int64
	Code  string
	Title string
	// Seats is the number of seats still available.
	Seats int
	// Capacity is the largest seat count the course has been offered with;
	// releases never raise Seats above it.
	Capacity  int
	Open      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourseStore persists courses and their seat inventory.
type CourseStore interface {
	ListOpenCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id int64) (Course, error)
	CreateCourse(ctx context.Context, course Course) (Course, error)
	CloseCourse(ctx context.Context, id int64) (Course, error)
	// SetSeats overwrites the remaining seat count.
	SetSeats(ctx context.Context, id int64, seats int) (Course, error)
	// ReserveSeat decrements the seat count if the course is open and has a
	// seat left, returning the seats remaining afterwards. A non-empty
	// reservationID makes the call idempotent: a repeat returns the first
	// result without claiming another seat.
	ReserveSeat(ctx context.Context, id int64, reservationID string) (int, error)
	// ReleaseSeat returns one seat, capped at capacity. With a reservationID
	// the seat is returned only if that reservation holds one; releasing an
	// unknown id records it so a late reserve with it is refused.
	ReleaseSeat(ctx context.Context, id int64, reservationID string) (int, error)
}
