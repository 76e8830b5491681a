// Package enrollmentv1 defines the enrollment.v1 wire messages and service.
package enrollmentv1

type EnrollRequest struct {
	StudentId string `json:"student_id"`
	CourseId  int64  `json:"course_id"`
}

func (x *EnrollRequest) GetStudentId() string {
	if x != nil {
		return x.StudentId
	}
	return ""
}

func (x *EnrollRequest) GetCourseId() int64 {
	if x != nil {
		return x.CourseId
	}
	return 0
}

type EnrollResponse struct {
	EnrollmentId   int64  `json:"enrollment_id"`
	SeatsRemaining int32  `json:"seats_remaining"`
	Message        string `json:"message"`
}

func (x *EnrollResponse) GetEnrollmentId() int64 {
	if x != nil {
		return x.EnrollmentId
	}
	return 0
}

func (x *EnrollResponse) GetSeatsRemaining() int32 {
	if x != nil {
		return x.SeatsRemaining
	}
	return 0
}

func (x *EnrollResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

// GradeRecord is an enrollment joined with its course details. Grade is 0
// when Graded is false.
type GradeRecord struct {
	EnrollmentId int64   `json:"enrollment_id"`
	CourseId     int64   `json:"course_id"`
	CourseCode   string  `json:"course_code"`
	CourseTitle  string  `json:"course_title"`
	StudentId    string  `json:"student_id"`
	Grade        float64 `json:"grade"`
	Graded       bool    `json:"graded"`
	Status       string  `json:"status"`
}

func (x *GradeRecord) GetEnrollmentId() int64 {
	if x != nil {
		return x.EnrollmentId
	}
	return 0
}

func (x *GradeRecord) GetCourseId() int64 {
	if x != nil {
		return x.CourseId
	}
	return 0
}

func (x *GradeRecord) GetCourseCode() string {
	if x != nil {
		return x.CourseCode
	}
	return ""
}

func (x *GradeRecord) GetCourseTitle() string {
	if x != nil {
		return x.CourseTitle
	}
	return ""
}

func (x *GradeRecord) GetStudentId() string {
	if x != nil {
		return x.StudentId
	}
	return ""
}

func (x *GradeRecord) GetGrade() float64 {
	if x != nil {
		return x.Grade
	}
	return 0
}

func (x *GradeRecord) GetGraded() bool {
	if x != nil {
		return x.Graded
	}
	return false
}

func (x *GradeRecord) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

type UploadGradeRequest struct {
	EnrollmentId int64   `json:"enrollment_id"`
	FacultyId    string  `json:"faculty_id"`
	Grade        float64 `json:"grade"`
}

func (x *UploadGradeRequest) GetEnrollmentId() int64 {
	if x != nil {
		return x.EnrollmentId
	}
	return 0
}

func (x *UploadGradeRequest) GetFacultyId() string {
	if x != nil {
		return x.FacultyId
	}
	return ""
}

func (x *UploadGradeRequest) GetGrade() float64 {
	if x != nil {
		return x.Grade
	}
	return 0
}

type UploadGradeResponse struct {
	UpdatedGrade       float64      `json:"updated_grade"`
	Record             *GradeRecord `json:"record"`
	Message            string       `json:"message"`
	EnrichmentDegraded bool         `json:"enrichment_degraded"`
}

func (x *UploadGradeResponse) GetUpdatedGrade() float64 {
	if x != nil {
		return x.UpdatedGrade
	}
	return 0
}

func (x *UploadGradeResponse) GetRecord() *GradeRecord {
	if x != nil {
		return x.Record
	}
	return nil
}

func (x *UploadGradeResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *UploadGradeResponse) GetEnrichmentDegraded() bool {
	if x != nil {
		return x.EnrichmentDegraded
	}
	return false
}

type ViewGradesRequest struct {
	StudentId string `json:"student_id"`
}

func (x *ViewGradesRequest) GetStudentId() string {
	if x != nil {
		return x.StudentId
	}
	return ""
}

type ViewGradesResponse struct {
	Records []*GradeRecord `json:"records"`
}

func (x *ViewGradesResponse) GetRecords() []*GradeRecord {
	if x != nil {
		return x.Records
	}
	return nil
}
