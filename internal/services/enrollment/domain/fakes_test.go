package domain

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/louisbranch/registrar/internal/services/enrollment/registry"
	"github.com/louisbranch/registrar/internal/services/enrollment/storage"
)

type fakeEnrollmentStore struct {
	mu          sync.Mutex
	nextID      int64
	enrollments map[int64]storage.Enrollment

	findErr   error
	createErr error
	listErr   error
	gradeErr  error
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: make(map[int64]storage.Enrollment)}
}

func (s *fakeEnrollmentStore) put(enrollment storage.Enrollment) storage.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enrollment.ID == 0 {
		s.nextID++
		enrollment.ID = s.nextID
	} else if enrollment.ID > s.nextID {
		s.nextID = enrollment.ID
	}
	s.enrollments[enrollment.ID] = enrollment
	return enrollment
}

func (s *fakeEnrollmentStore) CreateEnrollment(_ context.Context, enrollment storage.Enrollment) (storage.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return storage.Enrollment{}, s.createErr
	}
	for _, existing := range s.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID && existing.Status == storage.StatusEnrolled {
			return storage.Enrollment{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	enrollment.ID = s.nextID
	s.enrollments[enrollment.ID] = enrollment
	return enrollment, nil
}

func (s *fakeEnrollmentStore) GetEnrollment(_ context.Context, id int64) (storage.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrollment, ok := s.enrollments[id]
	if !ok {
		return storage.Enrollment{}, storage.ErrNotFound
	}
	return enrollment, nil
}

func (s *fakeEnrollmentStore) FindActiveEnrollment(_ context.Context, studentID string, courseID int64) (storage.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return storage.Enrollment{}, s.findErr
	}
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID && enrollment.Status == storage.StatusEnrolled {
			return enrollment, nil
		}
	}
	return storage.Enrollment{}, storage.ErrNotFound
}

func (s *fakeEnrollmentStore) ListStudentEnrollments(_ context.Context, studentID string) ([]storage.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var enrollments []storage.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID {
			enrollments = append(enrollments, enrollment)
		}
	}
	slices.SortFunc(enrollments, func(a, b storage.Enrollment) int { return int(a.ID - b.ID) })
	return enrollments, nil
}

func (s *fakeEnrollmentStore) RecordGrade(_ context.Context, update storage.GradeUpdate) (storage.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gradeErr != nil {
		return storage.Enrollment{}, s.gradeErr
	}
	enrollment, ok := s.enrollments[update.EnrollmentID]
	if !ok {
		return storage.Enrollment{}, storage.ErrNotFound
	}
	grade := update.Grade
	enrollment.Grade = &grade
	enrollment.Status = storage.StatusCompleted
	enrollment.GradedBy = update.GradedBy
	s.enrollments[enrollment.ID] = enrollment
	return enrollment, nil
}

func (s *fakeEnrollmentStore) CountActiveEnrollments(_ context.Context, courseID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID && enrollment.Status == storage.StatusEnrolled {
			count++
		}
	}
	return count, nil
}

type fakeCourse struct {
	registry.CourseSnapshot
	capacity int
}

type fakeRegistry struct {
	mu      sync.Mutex
	courses map[int64]*fakeCourse

	listErr    error
	setErr     error
	reserveErr error
	releaseErr error
	// commitThenFail makes ReserveSeat claim the seat and still report an
	// outage, as when the reply is lost after the registry committed.
	commitThenFail bool

	// reservations maps a reservation id to whether it still holds a seat.
	reservations map[string]bool
	reservedIDs  []string
	releasedIDs  []string

	listCalls    int
	setCalls     int
	reserveCalls int
	releaseCalls int

	// listBarrier, when set, holds every ListCourses caller until enough
	// callers have read the seat count.
	listBarrier *barrier
}

func newFakeRegistry(courses ...registry.CourseSnapshot) *fakeRegistry {
	r := &fakeRegistry{courses: make(map[int64]*fakeCourse), reservations: make(map[string]bool)}
	for _, course := range courses {
		r.courses[course.ID] = &fakeCourse{CourseSnapshot: course, capacity: course.Seats}
	}
	return r
}

func (r *fakeRegistry) seats(courseID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.courses[courseID].Seats
}

func (r *fakeRegistry) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls + r.setCalls + r.reserveCalls + r.releaseCalls
}

func (r *fakeRegistry) ListCourses(context.Context) ([]registry.CourseSnapshot, error) {
	r.mu.Lock()
	r.listCalls++
	if r.listErr != nil {
		r.mu.Unlock()
		return nil, r.listErr
	}
	var snapshots []registry.CourseSnapshot
	for _, course := range r.courses {
		if course.Open {
			snapshots = append(snapshots, course.CourseSnapshot)
		}
	}
	gate := r.listBarrier
	r.mu.Unlock()

	if gate != nil {
		gate.arrive()
	}
	return snapshots, nil
}

func (r *fakeRegistry) SetSeats(_ context.Context, courseID int64, seats int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setCalls++
	if r.setErr != nil {
		return r.setErr
	}
	course, ok := r.courses[courseID]
	if !ok {
		return registry.ErrCourseNotFound
	}
	if seats < 0 {
		return registry.ErrInvalidSeatCount
	}
	course.Seats = seats
	return nil
}

func (r *fakeRegistry) ReserveSeat(_ context.Context, courseID int64, reservationID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reserveCalls++
	r.reservedIDs = append(r.reservedIDs, reservationID)
	if r.reserveErr != nil {
		return 0, r.reserveErr
	}
	if held, seen := r.reservations[reservationID]; seen && reservationID != "" {
		if !held {
			return 0, registry.ErrWriteConflict
		}
		return r.courses[courseID].Seats, nil
	}
	course, ok := r.courses[courseID]
	switch {
	case !ok:
		return 0, registry.ErrCourseNotFound
	case !course.Open:
		return 0, registry.ErrCourseClosed
	case course.Seats <= 0:
		return 0, registry.ErrNoSeats
	}
	course.Seats--
	if reservationID != "" {
		r.reservations[reservationID] = true
	}
	if r.commitThenFail {
		return 0, unavailable
	}
	return course.Seats, nil
}

func (r *fakeRegistry) ReleaseSeat(_ context.Context, courseID int64, reservationID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseCalls++
	r.releasedIDs = append(r.releasedIDs, reservationID)
	if r.releaseErr != nil {
		return 0, r.releaseErr
	}
	course, ok := r.courses[courseID]
	if !ok {
		return 0, registry.ErrCourseNotFound
	}
	if reservationID != "" {
		held := r.reservations[reservationID]
		r.reservations[reservationID] = false
		if !held {
			return course.Seats, nil
		}
	}
	course.Seats = min(course.Seats+1, course.capacity)
	return course.Seats, nil
}

// barrier releases its callers once n of them have arrived, or after a
// timeout so a broken test fails instead of hanging.
type barrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	done    chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, done: make(chan struct{})}
}

func (b *barrier) arrive() {
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.n {
		close(b.done)
	}
	b.mu.Unlock()

	select {
	case <-b.done:
	case <-time.After(2 * time.Second):
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}
