package exitv1

import (
	"context"

	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ExitServiceName   = "exitformality.exit.v1.ExitService"
	LetterServiceName = "exitformality.exit.v1.LetterService"
)

const (
	ExitService_CreateExit_FullMethodName       = "/" + ExitServiceName + "/CreateExit"
	ExitService_UpdateExit_FullMethodName       = "/" + ExitServiceName + "/UpdateExit"
	ExitService_GetExit_FullMethodName          = "/" + ExitServiceName + "/GetExit"
	ExitService_ListExits_FullMethodName        = "/" + ExitServiceName + "/ListExits"
	ExitService_SubmitExit_FullMethodName       = "/" + ExitServiceName + "/SubmitExit"
	ExitService_StartReview_FullMethodName      = "/" + ExitServiceName + "/StartReview"
	ExitService_ManagerApprove_FullMethodName   = "/" + ExitServiceName + "/ManagerApprove"
	ExitService_Approve_FullMethodName          = "/" + ExitServiceName + "/Approve"
	ExitService_Reject_FullMethodName           = "/" + ExitServiceName + "/Reject"
	ExitService_CancelExit_FullMethodName       = "/" + ExitServiceName + "/CancelExit"
	ExitService_RemoveExit_FullMethodName       = "/" + ExitServiceName + "/RemoveExit"
	ExitService_UpdateClearance_FullMethodName  = "/" + ExitServiceName + "/UpdateClearance"
	ExitService_AddAsset_FullMethodName         = "/" + ExitServiceName + "/AddAsset"
	ExitService_UpdateAssetField_FullMethodName = "/" + ExitServiceName + "/UpdateAssetField"
	ExitService_RemoveAsset_FullMethodName      = "/" + ExitServiceName + "/RemoveAsset"
	LetterService_BuildLetter_FullMethodName    = "/" + LetterServiceName + "/BuildLetter"
)

// ExitServiceServer は ExitService のサーバー実装が満たすインターフェースです。
type ExitServiceServer interface {
	CreateExit(context.Context, *CreateExitRequest) (*ExitResponse, error)
	UpdateExit(context.Context, *UpdateExitRequest) (*ExitResponse, error)
	GetExit(context.Context, *GetExitRequest) (*ExitResponse, error)
	ListExits(context.Context, *ListExitsRequest) (*ListExitsResponse, error)
	SubmitExit(context.Context, *SubmitExitRequest) (*ExitResponse, error)
	StartReview(context.Context, *TransitionRequest) (*ExitResponse, error)
	ManagerApprove(context.Context, *TransitionRequest) (*ExitResponse, error)
	Approve(context.Context, *TransitionRequest) (*ExitResponse, error)
	Reject(context.Context, *RejectExitRequest) (*ExitResponse, error)
	CancelExit(context.Context, *TransitionRequest) (*ExitResponse, error)
	RemoveExit(context.Context, *RemoveExitRequest) (*RemoveExitResponse, error)
	UpdateClearance(context.Context, *UpdateClearanceRequest) (*ExitResponse, error)
	AddAsset(context.Context, *AddAssetRequest) (*ExitResponse, error)
	UpdateAssetField(context.Context, *UpdateAssetFieldRequest) (*ExitResponse, error)
	RemoveAsset(context.Context, *RemoveAssetRequest) (*ExitResponse, error)
	mustEmbedUnimplementedExitServiceServer()
}

// UnimplementedExitServiceServer は前方互換のために埋め込む既定実装です。
type UnimplementedExitServiceServer struct{}

func (UnimplementedExitServiceServer) CreateExit(context.Context, *CreateExitRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateExit not implemented")
}
func (UnimplementedExitServiceServer) UpdateExit(context.Context, *UpdateExitRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateExit not implemented")
}
func (UnimplementedExitServiceServer) GetExit(context.Context, *GetExitRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetExit not implemented")
}
func (UnimplementedExitServiceServer) ListExits(context.Context, *ListExitsRequest) (*ListExitsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListExits not implemented")
}
func (UnimplementedExitServiceServer) SubmitExit(context.Context, *SubmitExitRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitExit not implemented")
}
func (UnimplementedExitServiceServer) StartReview(context.Context, *TransitionRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartReview not implemented")
}
func (UnimplementedExitServiceServer) ManagerApprove(context.Context, *TransitionRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ManagerApprove not implemented")
}
func (UnimplementedExitServiceServer) Approve(context.Context, *TransitionRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Approve not implemented")
}
func (UnimplementedExitServiceServer) Reject(context.Context, *RejectExitRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Reject not implemented")
}
func (UnimplementedExitServiceServer) CancelExit(context.Context, *TransitionRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelExit not implemented")
}
func (UnimplementedExitServiceServer) RemoveExit(context.Context, *RemoveExitRequest) (*RemoveExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveExit not implemented")
}
func (UnimplementedExitServiceServer) UpdateClearance(context.Context, *UpdateClearanceRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateClearance not implemented")
}
func (UnimplementedExitServiceServer) AddAsset(context.Context, *AddAssetRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddAsset not implemented")
}
func (UnimplementedExitServiceServer) UpdateAssetField(context.Context, *UpdateAssetFieldRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAssetField not implemented")
}
func (UnimplementedExitServiceServer) RemoveAsset(context.Context, *RemoveAssetRequest) (*ExitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveAsset not implemented")
}
func (UnimplementedExitServiceServer) mustEmbedUnimplementedExitServiceServer() {}

// LetterServiceServer は LetterService のサーバー実装が満たすインターフェースです。
type LetterServiceServer interface {
	BuildLetter(context.Context, *BuildLetterRequest) (*BuildLetterResponse, error)
	mustEmbedUnimplementedLetterServiceServer()
}

// UnimplementedLetterServiceServer は前方互換のために埋め込む既定実装です。
type UnimplementedLetterServiceServer struct{}

func (UnimplementedLetterServiceServer) BuildLetter(context.Context, *BuildLetterRequest) (*BuildLetterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BuildLetter not implemented")
}
func (UnimplementedLetterServiceServer) mustEmbedUnimplementedLetterServiceServer() {}

// unary は型付きのメソッド実装を grpc.MethodHandler に変換します。
func unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
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

// ExitService_ServiceDesc は ExitService の grpc.ServiceDesc です。
var ExitService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ExitServiceName,
	HandlerType: (*ExitServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateExit", Handler: unary(ExitService_CreateExit_FullMethodName, ExitServiceServer.CreateExit)},
		{MethodName: "UpdateExit", Handler: unary(ExitService_UpdateExit_FullMethodName, ExitServiceServer.UpdateExit)},
		{MethodName: "GetExit", Handler: unary(ExitService_GetExit_FullMethodName, ExitServiceServer.GetExit)},
		{MethodName: "ListExits", Handler: unary(ExitService_ListExits_FullMethodName, ExitServiceServer.ListExits)},
		{MethodName: "SubmitExit", Handler: unary(ExitService_SubmitExit_FullMethodName, ExitServiceServer.SubmitExit)},
		{MethodName: "StartReview", Handler: unary(ExitService_StartReview_FullMethodName, ExitServiceServer.StartReview)},
		{MethodName: "ManagerApprove", Handler: unary(ExitService_ManagerApprove_FullMethodName, ExitServiceServer.ManagerApprove)},
		{MethodName: "Approve", Handler: unary(ExitService_Approve_FullMethodName, ExitServiceServer.Approve)},
		{MethodName: "Reject", Handler: unary(ExitService_Reject_FullMethodName, ExitServiceServer.Reject)},
		{MethodName: "CancelExit", Handler: unary(ExitService_CancelExit_FullMethodName, ExitServiceServer.CancelExit)},
		{MethodName: "RemoveExit", Handler: unary(ExitService_RemoveExit_FullMethodName, ExitServiceServer.RemoveExit)},
		{MethodName: "UpdateClearance", Handler: unary(ExitService_UpdateClearance_FullMethodName, ExitServiceServer.UpdateClearance)},
		{MethodName: "AddAsset", Handler: unary(ExitService_AddAsset_FullMethodName, ExitServiceServer.AddAsset)},
		{MethodName: "UpdateAssetField", Handler: unary(ExitService_UpdateAssetField_FullMethodName, ExitServiceServer.UpdateAssetField)},
		{MethodName: "RemoveAsset", Handler: unary(ExitService_RemoveAsset_FullMethodName, ExitServiceServer.RemoveAsset)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "exitformality/exit/v1/exit.json",
}

// LetterService_ServiceDesc は LetterService の grpc.ServiceDesc です。
var LetterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: LetterServiceName,
	HandlerType: (*LetterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BuildLetter", Handler: unary(LetterService_BuildLetter_FullMethodName, LetterServiceServer.BuildLetter)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "exitformality/exit/v1/exit.json",
}

// RegisterExitServiceServer は ExitService をサーバーに登録します。
func RegisterExitServiceServer(s grpc.ServiceRegistrar, srv ExitServiceServer) {
	s.RegisterService(&ExitService_ServiceDesc, srv)
}

// RegisterLetterServiceServer は LetterService をサーバーに登録します。
func RegisterLetterServiceServer(s grpc.ServiceRegistrar, srv LetterServiceServer) {
	s.RegisterService(&LetterService_ServiceDesc, srv)
}

// callOptions は JSON コーデックを既定として呼び出しオプションを組み立てます。
func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// ExitServiceClient は ExitService のクライアントです。
type ExitServiceClient interface {
	CreateExit(ctx context.Context, in *CreateExitRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	UpdateExit(ctx context.Context, in *UpdateExitRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	GetExit(ctx context.Context, in *GetExitRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	ListExits(ctx context.Context, in *ListExitsRequest, opts ...grpc.CallOption) (*ListExitsResponse, error)
	SubmitExit(ctx context.Context, in *SubmitExitRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	StartReview(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	ManagerApprove(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	Approve(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	Reject(ctx context.Context, in *RejectExitRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	CancelExit(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	RemoveExit(ctx context.Context, in *RemoveExitRequest, opts ...grpc.CallOption) (*RemoveExitResponse, error)
	UpdateClearance(ctx context.Context, in *UpdateClearanceRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	AddAsset(ctx context.Context, in *AddAssetRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	UpdateAssetField(ctx context.Context, in *UpdateAssetFieldRequest, opts ...grpc.CallOption) (*ExitResponse, error)
	RemoveAsset(ctx context.Context, in *RemoveAssetRequest, opts ...grpc.CallOption) (*ExitResponse, error)
}

type exitServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewExitServiceClient は ExitServiceClient を生成します。
func NewExitServiceClient(cc grpc.ClientConnInterface) ExitServiceClient {
	return &exitServiceClient{cc: cc}
}

func (c *exitServiceClient) CreateExit(ctx context.Context, in *CreateExitRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_CreateExit_FullMethodName, in, opts)
}

func (c *exitServiceClient) UpdateExit(ctx context.Context, in *UpdateExitRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_UpdateExit_FullMethodName, in, opts)
}

func (c *exitServiceClient) GetExit(ctx context.Context, in *GetExitRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_GetExit_FullMethodName, in, opts)
}

func (c *exitServiceClient) ListExits(ctx context.Context, in *ListExitsRequest, opts ...grpc.CallOption) (*ListExitsResponse, error) {
	return invoke[ListExitsResponse](ctx, c.cc, ExitService_ListExits_FullMethodName, in, opts)
}

func (c *exitServiceClient) SubmitExit(ctx context.Context, in *SubmitExitRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_SubmitExit_FullMethodName, in, opts)
}

func (c *exitServiceClient) StartReview(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_StartReview_FullMethodName, in, opts)
}

func (c *exitServiceClient) ManagerApprove(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_ManagerApprove_FullMethodName, in, opts)
}

func (c *exitServiceClient) Approve(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_Approve_FullMethodName, in, opts)
}

func (c *exitServiceClient) Reject(ctx context.Context, in *RejectExitRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_Reject_FullMethodName, in, opts)
}

func (c *exitServiceClient) CancelExit(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_CancelExit_FullMethodName, in, opts)
}

func (c *exitServiceClient) RemoveExit(ctx context.Context, in *RemoveExitRequest, opts ...grpc.CallOption) (*RemoveExitResponse, error) {
	return invoke[RemoveExitResponse](ctx, c.cc, ExitService_RemoveExit_FullMethodName, in, opts)
}

func (c *exitServiceClient) UpdateClearance(ctx context.Context, in *UpdateClearanceRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_UpdateClearance_FullMethodName, in, opts)
}

func (c *exitServiceClient) AddAsset(ctx context.Context, in *AddAssetRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_AddAsset_FullMethodName, in, opts)
}

func (c *exitServiceClient) UpdateAssetField(ctx context.Context, in *UpdateAssetFieldRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_UpdateAssetField_FullMethodName, in, opts)
}

func (c *exitServiceClient) RemoveAsset(ctx context.Context, in *RemoveAssetRequest, opts ...grpc.CallOption) (*ExitResponse, error) {
	return invoke[ExitResponse](ctx, c.cc, ExitService_RemoveAsset_FullMethodName, in, opts)
}

// LetterServiceClient は LetterService のクライアントです。
type LetterServiceClient interface {
	BuildLetter(ctx context.Context, in *BuildLetterRequest, opts ...grpc.CallOption) (*BuildLetterResponse, error)
}

type letterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLetterServiceClient は LetterServiceClient を生成します。
func NewLetterServiceClient(cc grpc.ClientConnInterface) LetterServiceClient {
	return &letterServiceClient{cc: cc}
}

func (c *letterServiceClient) BuildLetter(ctx context.Context, in *BuildLetterRequest, opts ...grpc.CallOption) (*BuildLetterResponse, error) {
	return invoke[BuildLetterResponse](ctx, c.cc, LetterService_BuildLetter_FullMethodName, in, opts)
}
