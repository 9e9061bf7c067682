package rpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// BitServiceName is the fully-qualified name of the BitService service.
	BitServiceName = "bithub.v1.BitService"

	BitServiceCreateBitProcedure   = "/bithub.v1.BitService/CreateBit"
	BitServiceRateBitProcedure     = "/bithub.v1.BitService/RateBit"
	BitServiceReassignBitProcedure = "/bithub.v1.BitService/ReassignBit"
	BitServiceGetBoardProcedure    = "/bithub.v1.BitService/GetBoard"
	BitServiceWatchBoardProcedure  = "/bithub.v1.BitService/WatchBoard"
)

// BitServiceHandler is implemented by the server side of BitService.
type BitServiceHandler interface {
	CreateBit(context.Context, *connect.Request[CreateBitRequest]) (*connect.Response[CreateBitResponse], error)
	RateBit(context.Context, *connect.Request[RateBitRequest]) (*connect.Response[RateBitResponse], error)
	ReassignBit(context.Context, *connect.Request[ReassignBitRequest]) (*connect.Response[ReassignBitResponse], error)
	GetBoard(context.Context, *connect.Request[GetBoardRequest]) (*connect.Response[GetBoardResponse], error)
	// WatchBoard streams a Board now and again after every change.
	WatchBoard(context.Context, *connect.Request[WatchBoardRequest], *connect.ServerStream[Board]) error
}

// NewBitServiceHandler builds an HTTP handler for BitService. It returns the
// path to mount the handler on.
func NewBitServiceHandler(svc BitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	createBit := connect.NewUnaryHandler(BitServiceCreateBitProcedure, svc.CreateBit, opts...)
	rateBit := connect.NewUnaryHandler(BitServiceRateBitProcedure, svc.RateBit, opts...)
	reassignBit := connect.NewUnaryHandler(BitServiceReassignBitProcedure, svc.ReassignBit, opts...)
	getBoard := connect.NewUnaryHandler(BitServiceGetBoardProcedure, svc.GetBoard, opts...)
	watchBoard := connect.NewServerStreamHandler(BitServiceWatchBoardProcedure, svc.WatchBoard, opts...)

	return "/" + BitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BitServiceCreateBitProcedure:
			createBit.ServeHTTP(w, r)
		case BitServiceRateBitProcedure:
			rateBit.ServeHTTP(w, r)
		case BitServiceReassignBitProcedure:
			reassignBit.ServeHTTP(w, r)
		case BitServiceGetBoardProcedure:
			getBoard.ServeHTTP(w, r)
		case BitServiceWatchBoardProcedure:
			watchBoard.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BitServiceClient is a client for BitService.
type BitServiceClient struct {
	createBit   *connect.Client[CreateBitRequest, CreateBitResponse]
	rateBit     *connect.Client[RateBitRequest, RateBitResponse]
	reassignBit *connect.Client[ReassignBitRequest, ReassignBitResponse]
	getBoard    *connect.Client[GetBoardRequest, GetBoardResponse]
	watchBoard  *connect.Client[WatchBoardRequest, Board]
}

// NewBitServiceClient constructs a client for BitService at baseURL.
func NewBitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BitServiceClient {
	opts = withClientCodec(opts)
	return &BitServiceClient{
		createBit:   connect.NewClient[CreateBitRequest, CreateBitResponse](httpClient, baseURL+BitServiceCreateBitProcedure, opts...),
		rateBit:     connect.NewClient[RateBitRequest, RateBitResponse](httpClient, baseURL+BitServiceRateBitProcedure, opts...),
		reassignBit: connect.NewClient[ReassignBitRequest, ReassignBitResponse](httpClient, baseURL+BitServiceReassignBitProcedure, opts...),
		getBoard:    connect.NewClient[GetBoardRequest, GetBoardResponse](httpClient, baseURL+BitServiceGetBoardProcedure, opts...),
		watchBoard:  connect.NewClient[WatchBoardRequest, Board](httpClient, baseURL+BitServiceWatchBoardProcedure, opts...),
	}
}

func (c *BitServiceClient) CreateBit(ctx context.Context, req *connect.Request[CreateBitRequest]) (*connect.Response[CreateBitResponse], error) {
	return c.createBit.CallUnary(ctx, req)
}

func (c *BitServiceClient) RateBit(ctx context.Context, req *connect.Request[RateBitRequest]) (*connect.Response[RateBitResponse], error) {
	return c.rateBit.CallUnary(ctx, req)
}

func (c *BitServiceClient) ReassignBit(ctx context.Context, req *connect.Request[ReassignBitRequest]) (*connect.Response[ReassignBitResponse], error) {
	return c.reassignBit.CallUnary(ctx, req)
}

func (c *BitServiceClient) GetBoard(ctx context.Context, req *connect.Request[GetBoardRequest]) (*connect.Response[GetBoardResponse], error) {
	return c.getBoard.CallUnary(ctx, req)
}

func (c *BitServiceClient) WatchBoard(ctx context.Context, req *connect.Request[WatchBoardRequest]) (*connect.ServerStreamForClient[Board], error) {
	return c.watchBoard.CallServerStream(ctx, req)
}

// UnimplementedBitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBitServiceHandler struct{}

func (UnimplementedBitServiceHandler) CreateBit(context.Context, *connect.Request[CreateBitRequest]) (*connect.Response[CreateBitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("bithub.v1.BitService.CreateBit is not implemented"))
}

func (UnimplementedBitServiceHandler) RateBit(context.Context, *connect.Request[RateBitRequest]) (*connect.Response[RateBitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("bithub.v1.BitService.RateBit is not implemented"))
}

func (UnimplementedBitServiceHandler) ReassignBit(context.Context, *connect.Request[ReassignBitRequest]) (*connect.Response[ReassignBitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("bithub.v1.BitService.ReassignBit is not implemented"))
}

func (UnimplementedBitServiceHandler) GetBoard(context.Context, *connect.Request[GetBoardRequest]) (*connect.Response[GetBoardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("bithub.v1.BitService.GetBoard is not implemented"))
}

func (UnimplementedBitServiceHandler) WatchBoard(context.Context, *connect.Request[WatchBoardRequest], *connect.ServerStream[Board]) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New("bithub.v1.BitService.WatchBoard is not implemented"))
}
