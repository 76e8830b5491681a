package coursev1

import (
	"context"

	"github.com/louisbranch/registrar/internal/platform/grpc/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "course.v1.CourseService"

const (
	CourseService_ListCourses_FullMethodName = "/course.v1.CourseService/ListCourses"
	CourseService_SetSeats_FullMethodName    = "/course.v1.CourseService/SetSeats"
	CourseService_ReserveSeat_FullMethodName = "/course.v1.CourseService/ReserveSeat"
	CourseService_ReleaseSeat_FullMethodName = "/course.v1.CourseService/ReleaseSeat"
	CourseService_AddCourse_FullMethodName   = "/course.v1.CourseService/AddCourse"
	CourseService_CloseCourse_FullMethodName = "/course.v1.CourseService/CloseCourse"
)

// CourseServiceClient is the client API for CourseService.
type CourseServiceClient interface {
	ListCourses(ctx context.Context, in *ListCoursesRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error)
	SetSeats(ctx context.Context, in *SetSeatsRequest, opts ...grpc.CallOption) (*SetSeatsResponse, error)
	ReserveSeat(ctx context.Context, in *ReserveSeatRequest, opts ...grpc.CallOption) (*ReserveSeatResponse, error)
	ReleaseSeat(ctx context.Context, in *ReleaseSeatRequest, opts ...grpc.CallOption) (*ReleaseSeatResponse, error)
	AddCourse(ctx context.Context, in *AddCourseRequest, opts ...grpc.CallOption) (*AddCourseResponse, error)
	CloseCourse(ctx context.Context, in *CloseCourseRequest, opts ...grpc.CallOption) (*CloseCourseResponse, error)
}

type courseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCourseServiceClient(cc grpc.ClientConnInterface) CourseServiceClient {
	return &courseServiceClient{cc}
}

func (c *courseServiceClient) ListCourses(ctx context.Context, in *ListCoursesRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error) {
	return wire.Invoke[ListCoursesResponse](ctx, c.cc, CourseService_ListCourses_FullMethodName, in, opts...)
}

func (c *courseServiceClient) SetSeats(ctx context.Context, in *SetSeatsRequest, opts ...grpc.CallOption) (*SetSeatsResponse, error) {
	return wire.Invoke[SetSeatsResponse](ctx, c.cc, CourseService_SetSeats_FullMethodName, in, opts...)
}

func (c *courseServiceClient) ReserveSeat(ctx context.Context, in *ReserveSeatRequest, opts ...grpc.CallOption) (*ReserveSeatResponse, error) {
	return wire.Invoke[ReserveSeatResponse](ctx, c.cc, CourseService_ReserveSeat_FullMethodName, in, opts...)
}

func (c *courseServiceClient) ReleaseSeat(ctx context.Context, in *ReleaseSeatRequest, opts ...grpc.CallOption) (*ReleaseSeatResponse, error) {
	return wire.Invoke[ReleaseSeatResponse](ctx, c.cc, CourseService_ReleaseSeat_FullMethodName, in, opts...)
}

func (c *courseServiceClient) AddCourse(ctx context.Context, in *AddCourseRequest, opts ...grpc.CallOption) (*AddCourseResponse, error) {
	return wire.Invoke[AddCourseResponse](ctx, c.cc, CourseService_AddCourse_FullMethodName, in, opts...)
}

func (c *courseServiceClient) CloseCourse(ctx context.Context, in *CloseCourseRequest, opts ...grpc.CallOption) (*CloseCourseResponse, error) {
	return wire.Invoke[CloseCourseResponse](ctx, c.cc, CourseService_CloseCourse_FullMethodName, in, opts...)
}

// CourseServiceServer is the server API for CourseService.
// Implementations must embed UnimplementedCourseServiceServer.
type CourseServiceServer interface {
	ListCourses(context.Context, *ListCoursesRequest) (*ListCoursesResponse, error)
	SetSeats(context.Context, *SetSeatsRequest) (*SetSeatsResponse, error)
	ReserveSeat(context.Context, *ReserveSeatRequest) (*ReserveSeatResponse, error)
	ReleaseSeat(context.Context, *ReleaseSeatRequest) (*ReleaseSeatResponse, error)
	AddCourse(context.Context, *AddCourseRequest) (*AddCourseResponse, error)
	CloseCourse(context.Context, *CloseCourseRequest) (*CloseCourseResponse, error)
	mustEmbedUnimplementedCourseServiceServer()
}

// UnimplementedCourseServiceServer returns Unimplemented for every method.
type UnimplementedCourseServiceServer struct{}

func (UnimplementedCourseServiceServer) ListCourses(context.Context, *ListCoursesRequest) (*ListCoursesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCourses not implemented")
}
func (UnimplementedCourseServiceServer) SetSeats(context.Context, *SetSeatsRequest) (*SetSeatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetSeats not implemented")
}
func (UnimplementedCourseServiceServer) ReserveSeat(context.Context, *ReserveSeatRequest) (*ReserveSeatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReserveSeat not implemented")
}
func (UnimplementedCourseServiceServer) ReleaseSeat(context.Context, *ReleaseSeatRequest) (*ReleaseSeatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReleaseSeat not implemented")
}
func (UnimplementedCourseServiceServer) AddCourse(context.Context, *AddCourseRequest) (*AddCourseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddCourse not implemented")
}
func (UnimplementedCourseServiceServer) CloseCourse(context.Context, *CloseCourseRequest) (*CloseCourseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CloseCourse not implemented")
}
func (UnimplementedCourseServiceServer) mustEmbedUnimplementedCourseServiceServer() {}

// RegisterCourseServiceServer registers srv on s.
func RegisterCourseServiceServer(s grpc.ServiceRegistrar, srv CourseServiceServer) {
	s.RegisterService(&CourseService_ServiceDesc, srv)
}

// CourseService_ServiceDesc is the grpc.ServiceDesc for CourseService.
var CourseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CourseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCourses", Handler: wire.UnaryHandler(CourseService_ListCourses_FullMethodName, CourseServiceServer.ListCourses)},
		{MethodName: "SetSeats", Handler: wire.UnaryHandler(CourseService_SetSeats_FullMethodName, CourseServiceServer.SetSeats)},
		{MethodName: "ReserveSeat", Handler: wire.UnaryHandler(CourseService_ReserveSeat_FullMethodName, CourseServiceServer.ReserveSeat)},
		{MethodName: "ReleaseSeat", Handler: wire.UnaryHandler(CourseService_ReleaseSeat_FullMethodName, CourseServiceServer.ReleaseSeat)},
		{MethodName: "AddCourse", Handler: wire.UnaryHandler(CourseService_AddCourse_FullMethodName, CourseServiceServer.AddCourse)},
		{MethodName: "CloseCourse", Handler: wire.UnaryHandler(CourseService_CloseCourse_FullMethodName, CourseServiceServer.CloseCourse)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "course/v1/course.wire",
}
