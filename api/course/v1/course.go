// Package coursev1 defines the course.v1 wire messages and service.
package coursev1

// Course is one catalog entry as exposed by the course service.
type Course struct {
	Id       int64  `json:"id"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Seats    int32  `json:"seats"`
	Capacity int32  `json:"capacity"`
	Open     bool   `json:"open"`
}

func (x *Course) GetId() int64 {
	if x != nil {
		return x.Id
	}
	return 0
}

func (x *Course) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

func (x *Course) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *Course) GetSeats() int32 {
	if x != nil {
		return x.Seats
	}
	return 0
}

func (x *Course) GetCapacity() int32 {
	if x != nil {
		return x.Capacity
	}
	return 0
}

func (x *Course) GetOpen() bool {
	if x != nil {
		return x.Open
	}
	return false
}

type ListCoursesRequest struct{}

type ListCoursesResponse struct {
	Courses []*Course `json:"courses"`
}

func (x *ListCoursesResponse) GetCourses() []*Course {
	if x != nil {
		return x.Courses
	}
	return nil
}

// SetSeatsRequest overwrites the remaining seat count of a course.
type SetSeatsRequest struct {
	CourseId int64 `json:"course_id"`
	Seats    int32 `json:"seats"`
}

func (x *SetSeatsRequest) GetCourseId() int64 {
	if x != nil {
		return x.CourseId
	}
	return 0
}

func (x *SetSeatsRequest) GetSeats() int32 {
	if x != nil {
		return x.Seats
	}
	return 0
}

type SetSeatsResponse struct {
	Course *Course `json:"course"`
}

func (x *SetSeatsResponse) GetCourse() *Course {
	if x != nil {
		return x.Course
	}
	return nil
}

// ReserveSeatRequest claims one seat if the course is open and has one left.
// Repeating a request with the same reservation id returns the first answer
// instead of claiming another seat.
type ReserveSeatRequest struct {
	CourseId      int64  `json:"course_id"`
	ReservationId string `json:"reservation_id,omitempty"`
}

func (x *ReserveSeatRequest) GetCourseId() int64 {
	if x != nil {
		return x.CourseId
	}
	return 0
}

func (x *ReserveSeatRequest) GetReservationId() string {
	if x != nil {
		return x.ReservationId
	}
	return ""
}

type ReserveSeatResponse struct {
	SeatsRemaining int32 `json:"seats_remaining"`
}

func (x *ReserveSeatResponse) GetSeatsRemaining() int32 {
	if x != nil {
		return x.SeatsRemaining
	}
	return 0
}

// ReleaseSeatRequest returns one previously reserved seat. With a
// reservation id only that reservation's seat is returned, at most once.
type ReleaseSeatRequest struct {
	CourseId      int64  `json:"course_id"`
	ReservationId string `json:"reservation_id,omitempty"`
}

func (x *ReleaseSeatRequest) GetCourseId() int64 {
	if x != nil {
		return x.CourseId
	}
	return 0
}

func (x *ReleaseSeatRequest) GetReservationId() string {
	if x != nil {
		return x.ReservationId
	}
	return ""
}

type ReleaseSeatResponse struct {
	SeatsRemaining int32 `json:"seats_remaining"`
}

func (x *ReleaseSeatResponse) GetSeatsRemaining() int32 {
	if x != nil {
		return x.SeatsRemaining
	}
	return 0
}

type AddCourseRequest struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Seats int32  `json:"seats"`
}

func (x *AddCourseRequest) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

func (x *AddCourseRequest) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *AddCourseRequest) GetSeats() int32 {
	if x != nil {
		return x.Seats
	}
	return 0
}

type AddCourseResponse struct {
	Course *Course `json:"course"`
}

func (x *AddCourseResponse) GetCourse() *Course {
	if x != nil {
		return x.Course
	}
	return nil
}

type CloseCourseRequest struct {
	CourseId int64 `json:"course_id"`
}

func (x *CloseCourseRequest) GetCourseId() int64 {
	if x != nil {
		return x.CourseId
	}
	return 0
}

type CloseCourseResponse struct {
	Course *Course `json:"course"`
}

func (x *CloseCourseResponse) GetCourse() *Course {
	if x != nil {
		return x.Course
	}
	return nil
}
