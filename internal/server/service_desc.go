package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "lectures.v1.LectureService"

// LectureServiceServer is the server API. Every method takes and returns a
// google.protobuf.Struct.
type LectureServiceServer interface {
	ExtractDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EnqueueDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IngestDirectory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLecture(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLectures(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateQuiz(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuiz(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportLectures(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(LectureServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LectureServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LectureServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LectureServiceDesc describes the service for grpc.Server registration.
var LectureServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LectureServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("ExtractDocument", LectureServiceServer.ExtractDocument),
		unaryHandler("EnqueueDocument", LectureServiceServer.EnqueueDocument),
		unaryHandler("IngestDirectory", LectureServiceServer.IngestDirectory),
		unaryHandler("GetLecture", LectureServiceServer.GetLecture),
		unaryHandler("ListLectures", LectureServiceServer.ListLectures),
		unaryHandler("GetJob", LectureServiceServer.GetJob),
		unaryHandler("GenerateQuiz", LectureServiceServer.GenerateQuiz),
		unaryHandler("GetQuiz", LectureServiceServer.GetQuiz),
		unaryHandler("ExportLectures", LectureServiceServer.ExportLectures),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lectures/v1/lectures.proto",
}

func RegisterLectureServiceServer(s grpc.ServiceRegistrar, srv LectureServiceServer) {
	s.RegisterService(&LectureServiceDesc, srv)
}

// Client calls LectureService methods by name.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with fields as the request payload.
func (c *Client) Call(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
