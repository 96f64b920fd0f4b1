package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "tradejournal.v1.JournalService"

// Full method names, as seen by interceptors
const (
	MethodProject        = "/" + serviceName + "/Project"
	MethodListTrades     = "/" + serviceName + "/ListTrades"
	MethodCreateTrade    = "/" + serviceName + "/CreateTrade"
	MethodCloseTrade     = "/" + serviceName + "/CloseTrade"
	MethodDeleteTrade    = "/" + serviceName + "/DeleteTrade"
	MethodGetPerformance = "/" + serviceName + "/GetPerformance"
)

// JournalServiceServer is the server API for the journal service
type JournalServiceServer interface {
	Project(context.Context, *ProjectRequest) (*ProjectResponse, error)
	ListTrades(context.Context, *ListTradesRequest) (*ListTradesResponse, error)
	CreateTrade(context.Context, *CreateTradeRequest) (*TradeResponse, error)
	CloseTrade(context.Context, *CloseTradeRequest) (*TradeResponse, error)
	DeleteTrade(context.Context, *DeleteTradeRequest) (*DeleteTradeResponse, error)
	GetPerformance(context.Context, *GetPerformanceRequest) (*GetPerformanceResponse, error)
}

// JournalServiceDesc describes the journal service for grpc.Server.RegisterService
var JournalServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*JournalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Project", MethodProject, JournalServiceServer.Project),
		unary("ListTrades", MethodListTrades, JournalServiceServer.ListTrades),
		unary("CreateTrade", MethodCreateTrade, JournalServiceServer.CreateTrade),
		unary("CloseTrade", MethodCloseTrade, JournalServiceServer.CloseTrade),
		unary("DeleteTrade", MethodDeleteTrade, JournalServiceServer.DeleteTrade),
		unary("GetPerformance", MethodGetPerformance, JournalServiceServer.GetPerformance),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tradejournal/v1/journal",
}

// RegisterJournalServiceServer registers srv on s
func RegisterJournalServiceServer(s grpc.ServiceRegistrar, srv JournalServiceServer) {
	s.RegisterService(&JournalServiceDesc, srv)
}

// unary builds the method descriptor for one request/response RPC
func unary[Req, Resp any](
	name, fullMethod string,
	call func(JournalServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(JournalServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(JournalServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// JournalClient is the client API for the journal service
type JournalClient struct {
	cc grpc.ClientConnInterface
}

// NewJournalClient wraps cc. The connection must send the JSON content-subtype,
// see DialOptions.
func NewJournalClient(cc grpc.ClientConnInterface) *JournalClient {
	return &JournalClient{cc: cc}
}

func (c *JournalClient) Project(ctx context.Context, in *ProjectRequest) (*ProjectResponse, error) {
	out := new(ProjectResponse)
	if err := c.cc.Invoke(ctx, MethodProject, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JournalClient) ListTrades(ctx context.Context, in *ListTradesRequest) (*ListTradesResponse, error) {
	out := new(ListTradesResponse)
	if err := c.cc.Invoke(ctx, MethodListTrades, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JournalClient) CreateTrade(ctx context.Context, in *CreateTradeRequest) (*TradeResponse, error) {
	out := new(TradeResponse)
	if err := c.cc.Invoke(ctx, MethodCreateTrade, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JournalClient) CloseTrade(ctx context.Context, in *CloseTradeRequest) (*TradeResponse, error) {
	out := new(TradeResponse)
	if err := c.cc.Invoke(ctx, MethodCloseTrade, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JournalClient) DeleteTrade(ctx context.Context, in *DeleteTradeRequest) (*DeleteTradeResponse, error) {
	out := new(DeleteTradeResponse)
	if err := c.cc.Invoke(ctx, MethodDeleteTrade, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JournalClient) GetPerformance(ctx context.Context, in *GetPerformanceRequest) (*GetPerformanceResponse, error) {
	out := new(GetPerformanceResponse)
	if err := c.cc.Invoke(ctx, MethodGetPerformance, in, out); err != nil {
		return nil, err
	}
	return out, nil
}
