// Package wire adapts typed service methods to the untyped gRPC method
// handler signature and back, so the api packages can declare service
// descriptors without generated code.
package wire

import (
	"context"

	"github.com/louisbranch/registrar/internal/platform/grpc/jsoncodec"
	"google.golang.org/grpc"
)

// UnaryHandler builds a grpc.MethodHandler that decodes Req, dispatches to
// call on the registered server S and honors the server interceptor chain.
func UnaryHandler[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Invoke performs a unary call encoded with the JSON codec.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}
