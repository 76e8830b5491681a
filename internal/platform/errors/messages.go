package errors

import (
	"bytes"
	"text/template"
)

// DefaultLocale is the only locale messages are written in.
const DefaultLocale = "en-US"

var messages = map[Code]string{
	CodeStudentIDRequired:      "A student ID is required.",
	CodeCourseIDInvalid:        "Course ID must be a positive number.",
	CodeEnrollmentIDInvalid:    "Enrollment ID must be a positive number.",
	CodeGradeOutOfRange:        "Grade must be between 0.0 and 4.0.",
	CodeSeatCountNegative:      "Seat count cannot be negative.",
	CodeCourseCodeRequired:     "A course code is required.",
	CodeCourseTitleRequired:    "A course title is required.",
	CodeSeatStrategyInvalid:    "Unknown seat strategy {{.Strategy}}.",
	CodeNoEnrollments:          "No enrollments found for student {{.StudentID}}.",
	CodeEnrollmentDuplicate:    "Student {{.StudentID}} is already enrolled in course {{.CourseID}}.",
	CodeEnrollmentNotFound:     "Enrollment {{.EnrollmentID}} was not found.",
	CodeCourseNotFound:         "Course {{.CourseID}} was not found.",
	CodeCourseClosed:           "Course {{.CourseID}} is not open for enrollment.",
	CodeCourseCodeTaken:        "Course code {{.Code}} is already in use.",
	CodeCourseSeatsExhausted:   "Course {{.CourseID}} has no seats remaining.",
	CodeSeatReservationAborted: "The seat reservation for course {{.CourseID}} was rejected. Please try again.",
	CodeRegistryUnavailable:    "The course registry is currently unavailable. Please try again later.",
	CodeStorageFailure:         "An internal error occurred.",
}

var templates = func() map[Code]*template.Template {
	parsed := make(map[Code]*template.Template, len(messages))
	for code, text := range messages {
		parsed[code] = template.Must(template.New(string(code)).Option("missingkey=zero").Parse(text))
	}
	return parsed
}()

// FormatMessage renders the user-facing message for code. Unknown codes
// render as the code itself.
func FormatMessage(code Code, metadata map[string]string) string {
	tmpl, ok := templates[code]
	if !ok {
		return string(code)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return messages[code]
	}
	return buf.String()
}
