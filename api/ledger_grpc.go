package api

import (
	"context"

	"google.golang.org/grpc"

	"github.com/rajiknows/mockchain/pkg/ledger"
)

// LedgerServiceName is the fully qualified gRPC service name.
const LedgerServiceName = "mockchain.v1.Ledger"

// LedgerClient is the client API for the Ledger service.
type LedgerClient interface {
	SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*SubmitTransactionResponse, error)
	GetBalance(ctx context.Context, in *BalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	RequestFaucet(ctx context.Context, in *FaucetRequest, opts ...grpc.CallOption) (*FaucetResponse, error)
	GetTip(ctx context.Context, in *TipRequest, opts ...grpc.CallOption) (*BlockResponse, error)
	GetBlock(ctx context.Context, in *BlockRequest, opts ...grpc.CallOption) (*BlockResponse, error)
	WatchBlocks(ctx context.Context, in *WatchBlocksRequest, opts ...grpc.CallOption) (Ledger_WatchBlocksClient, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc}
}

func (c *ledgerClient) SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*SubmitTransactionResponse, error) {
	out := new(SubmitTransactionResponse)
	if err := c.cc.Invoke(ctx, "/mockchain.v1.Ledger/SubmitTransaction", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) GetBalance(ctx context.Context, in *BalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	out := new(BalanceResponse)
	if err := c.cc.Invoke(ctx, "/mockchain.v1.Ledger/GetBalance", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) RequestFaucet(ctx context.Context, in *FaucetRequest, opts ...grpc.CallOption) (*FaucetResponse, error) {
	out := new(FaucetResponse)
	if err := c.cc.Invoke(ctx, "/mockchain.v1.Ledger/RequestFaucet", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) GetTip(ctx context.Context, in *TipRequest, opts ...grpc.CallOption) (*BlockResponse, error) {
	out := new(BlockResponse)
	if err := c.cc.Invoke(ctx, "/mockchain.v1.Ledger/GetTip", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) GetBlock(ctx context.Context, in *BlockRequest, opts ...grpc.CallOption) (*BlockResponse, error) {
	out := new(BlockResponse)
	if err := c.cc.Invoke(ctx, "/mockchain.v1.Ledger/GetBlock", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) WatchBlocks(ctx context.Context, in *WatchBlocksRequest, opts ...grpc.CallOption) (Ledger_WatchBlocksClient, error) {
	stream, err := c.cc.NewStream(ctx, &LedgerServiceDesc.Streams[0], "/mockchain.v1.Ledger/WatchBlocks", opts...)
	if err != nil {
		return nil, err
	}

	x := &ledgerWatchBlocksClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}

	return x, nil
}

type Ledger_WatchBlocksClient interface {
	Recv() (*ledger.Block, error)
	grpc.ClientStream
}

type ledgerWatchBlocksClient struct {
	grpc.ClientStream
}

func (x *ledgerWatchBlocksClient) Recv() (*ledger.Block, error) {
	m := new(ledger.Block)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LedgerServer is the server API for the Ledger service.
type LedgerServer interface {
	SubmitTransaction(context.Context, *SubmitTransactionRequest) (*SubmitTransactionResponse, error)
	GetBalance(context.Context, *BalanceRequest) (*BalanceResponse, error)
	RequestFaucet(context.Context, *FaucetRequest) (*FaucetResponse, error)
	GetTip(context.Context, *TipRequest) (*BlockResponse, error)
	GetBlock(context.Context, *BlockRequest) (*BlockResponse, error)
	WatchBlocks(*WatchBlocksRequest, Ledger_WatchBlocksServer) error
}

type Ledger_WatchBlocksServer interface {
	Send(*ledger.Block) error
	grpc.ServerStream
}

type ledgerWatchBlocksServer struct {
	grpc.ServerStream
}

func (x *ledgerWatchBlocksServer) Send(m *ledger.Block) error {
	return x.ServerStream.SendMsg(m)
}

func submitTransactionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).SubmitTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/mockchain.v1.Ledger/SubmitTransaction",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).SubmitTransaction(ctx, req.(*SubmitTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getBalanceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/mockchain.v1.Ledger/GetBalance",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).GetBalance(ctx, req.(*BalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func requestFaucetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FaucetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).RequestFaucet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/mockchain.v1.Ledger/RequestFaucet",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).RequestFaucet(ctx, req.(*FaucetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getTipHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TipRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).GetTip(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/mockchain.v1.Ledger/GetTip",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).GetTip(ctx, req.(*TipRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getBlockHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BlockRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).GetBlock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/mockchain.v1.Ledger/GetBlock",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).GetBlock(ctx, req.(*BlockRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func watchBlocksHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(WatchBlocksRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LedgerServer).WatchBlocks(in, &ledgerWatchBlocksServer{stream})
}

// LedgerServiceDesc is the grpc.ServiceDesc for the Ledger service. It
// is written by hand; the wire codec is msgpack rather than protobuf.
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: LedgerServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitTransaction",
			Handler:    submitTransactionHandler,
		},
		{
			MethodName: "GetBalance",
			Handler:    getBalanceHandler,
		},
		{
			MethodName: "RequestFaucet",
			Handler:    requestFaucetHandler,
		},
		{
			MethodName: "GetTip",
			Handler:    getTipHandler,
		},
		{
			MethodName: "GetBlock",
			Handler:    getBlockHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchBlocks",
			Handler:       watchBlocksHandler,
			ServerStreams: true,
		},
	},
	Metadata: "mockchain/api",
}
