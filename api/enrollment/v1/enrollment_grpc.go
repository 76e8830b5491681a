package enrollmentv1

import (
	"context"

	"github.com/louisbranch/registrar/internal/platform/grpc/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "enrollment.v1.EnrollmentService"

const (
	EnrollmentService_Enroll_FullMethodName      = "/enrollment.v1.EnrollmentService/Enroll"
	EnrollmentService_UploadGrade_FullMethodName = "/enrollment.v1.EnrollmentService/UploadGrade"
	EnrollmentService_ViewGrades_FullMethodName  = "/enrollment.v1.EnrollmentService/ViewGrades"
)

// EnrollmentServiceClient is the client API for EnrollmentService.
type EnrollmentServiceClient interface {
	Enroll(ctx context.Context, in *EnrollRequest, opts ...grpc.CallOption) (*EnrollResponse, error)
	UploadGrade(ctx context.Context, in *UploadGradeRequest, opts ...grpc.CallOption) (*UploadGradeResponse, error)
	ViewGrades(ctx context.Context, in *ViewGradesRequest, opts ...grpc.CallOption) (*ViewGradesResponse, error)
}

type enrollmentServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEnrollmentServiceClient(cc grpc.ClientConnInterface) EnrollmentServiceClient {
	return &enrollmentServiceClient{cc}
}

func (c *enrollmentServiceClient) Enroll(ctx context.Context, in *EnrollRequest, opts ...grpc.CallOption) (*EnrollResponse, error) {
	return wire.Invoke[EnrollResponse](ctx, c.cc, EnrollmentService_Enroll_FullMethodName, in, opts...)
}

func (c *enrollmentServiceClient) UploadGrade(ctx context.Context, in *UploadGradeRequest, opts ...grpc.CallOption) (*UploadGradeResponse, error) {
	return wire.Invoke[UploadGradeResponse](ctx, c.cc, EnrollmentService_UploadGrade_FullMethodName, in, opts...)
}

func (c *enrollmentServiceClient) ViewGrades(ctx context.Context, in *ViewGradesRequest, opts ...grpc.CallOption) (*ViewGradesResponse, error) {
	return wire.Invoke[ViewGradesResponse](ctx, c.cc, EnrollmentService_ViewGrades_FullMethodName, in, opts...)
}

// EnrollmentServiceServer is the server API for EnrollmentService.
// Implementations must embed UnimplementedEnrollmentServiceServer.
type EnrollmentServiceServer interface {
	Enroll(context.Context, *EnrollRequest) (*EnrollResponse, error)
	UploadGrade(context.Context, *UploadGradeRequest) (*UploadGradeResponse, error)
	ViewGrades(context.Context, *ViewGradesRequest) (*ViewGradesResponse, error)
	mustEmbedUnimplementedEnrollmentServiceServer()
}

// UnimplementedEnrollmentServiceServer returns Unimplemented for every method.
type UnimplementedEnrollmentServiceServer struct{}

func (UnimplementedEnrollmentServiceServer) Enroll(context.Context, *EnrollRequest) (*EnrollResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Enroll not implemented")
}
func (UnimplementedEnrollmentServiceServer) UploadGrade(context.Context, *UploadGradeRequest) (*UploadGradeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadGrade not implemented")
}
func (UnimplementedEnrollmentServiceServer) ViewGrades(context.Context, *ViewGradesRequest) (*ViewGradesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ViewGrades not implemented")
}
func (UnimplementedEnrollmentServiceServer) mustEmbedUnimplementedEnrollmentServiceServer() {}

// RegisterEnrollmentServiceServer registers srv on s.
func RegisterEnrollmentServiceServer(s grpc.ServiceRegistrar, srv EnrollmentServiceServer) {
	s.RegisterService(&EnrollmentService_ServiceDesc, srv)
}

// EnrollmentService_ServiceDesc is the grpc.ServiceDesc for EnrollmentService.
var EnrollmentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EnrollmentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Enroll", Handler: wire.UnaryHandler(EnrollmentService_Enroll_FullMethodName, EnrollmentServiceServer.Enroll)},
		{MethodName: "UploadGrade", Handler: wire.UnaryHandler(EnrollmentService_UploadGrade_FullMethodName, EnrollmentServiceServer.UploadGrade)},
		{MethodName: "ViewGrades", Handler: wire.UnaryHandler(EnrollmentService_ViewGrades_FullMethodName, EnrollmentServiceServer.ViewGrades)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "enrollment/v1/enrollment.wire",
}
