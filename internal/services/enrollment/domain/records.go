package domain

import (
	"github.com/louisbranch/registrar/internal/services/enrollment/registry"
	"github.com/louisbranch/registrar/internal/services/enrollment/storage"
)

const (
	// UnknownCourseCode stands in for a course the registry did not return.
	UnknownCourseCode = "UNKNOWN"
	// UnknownCourseTitle stands in for a course the registry did not return.
	UnknownCourseTitle = "UNKNOWN COURSE"
)

// GradeRecord is an enrollment joined with its course details.
type GradeRecord struct {
	EnrollmentID int64
	CourseID     int64
	CourseCode   string
	CourseTitle  string
	StudentID    string
	// Grade is nil until graded.
	Grade  *float64
	Status storage.Status
}

func newGradeRecord(enrollment storage.Enrollment, course registry.CourseSnapshot, found bool) GradeRecord {
	record := GradeRecord{
		EnrollmentID: enrollment.ID,
		CourseID:     enrollment.CourseID,
		CourseCode:   UnknownCourseCode,
		CourseTitle:  UnknownCourseTitle,
		StudentID:    enrollment.StudentID,
		Grade:        enrollment.Grade,
		Status:       enrollment.Status,
	}
	if found {
		record.CourseCode = course.Code
		record.CourseTitle = course.Title
	}
	return record
}

func indexCourses(courses []registry.CourseSnapshot) map[int64]registry.CourseSnapshot {
	byID := make(map[int64]registry.CourseSnapshot, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}
	return byID
}
