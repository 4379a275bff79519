package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// LedgerServiceName is the fully qualified gRPC service name
const LedgerServiceName = "inventory.v1.InventoryLedger"

// Method names of the ledger service
const (
	MethodAddItem      = "AddItem"
	MethodRemoveItem   = "RemoveItem"
	MethodTransferItem = "TransferItem"
	MethodAdjustPrice  = "AdjustPrice"
	MethodUndo         = "Undo"
	MethodGetState     = "GetState"
)

// FullMethod returns "/inventory.v1.InventoryLedger/<method>"
func FullMethod(method string) string {
	return "/" + LedgerServiceName + "/" + method
}

// LedgerServiceServer is the server API for the ledger service.
// Requests and responses are google.protobuf.Struct messages.
type LedgerServiceServer interface {
	AddItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TransferItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdjustPrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Undo(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(LedgerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// LedgerServiceDesc describes the ledger service for grpc.Server.RegisterService
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: LedgerServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodAddItem, Handler: unaryHandler(MethodAddItem, LedgerServiceServer.AddItem)},
		{MethodName: MethodRemoveItem, Handler: unaryHandler(MethodRemoveItem, LedgerServiceServer.RemoveItem)},
		{MethodName: MethodTransferItem, Handler: unaryHandler(MethodTransferItem, LedgerServiceServer.TransferItem)},
		{MethodName: MethodAdjustPrice, Handler: unaryHandler(MethodAdjustPrice, LedgerServiceServer.AdjustPrice)},
		{MethodName: MethodUndo, Handler: unaryHandler(MethodUndo, LedgerServiceServer.Undo)},
		{MethodName: MethodGetState, Handler: unaryHandler(MethodGetState, LedgerServiceServer.GetState)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterLedgerServiceServer registers srv with the gRPC server
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

func unaryHandler(method string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := FullMethod(method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
