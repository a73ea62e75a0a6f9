package handler

import (
	"context"

	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/exitv1"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExitGrpcHandler は ExitService の gRPC 実装です。
// アクターは認証インターセプターがコンテキストに格納したものを使用します。
type ExitGrpcHandler struct {
	svc exit.UseCase
	exitv1.UnimplementedExitServiceServer
}

// NewExitGrpcHandler は ExitGrpcHandler を生成します。
func NewExitGrpcHandler(svc exit.UseCase) *ExitGrpcHandler {
	return &ExitGrpcHandler{svc: svc}
}

var errRequestRequired = status.Error(codes.InvalidArgument, "request is required")

// CreateExit は下書きの申請を作成します。
func (h *ExitGrpcHandler) CreateExit(ctx context.Context, req *exitv1.CreateExitRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	lastDay, err := parseDate(req.ProposedLastWorkingDay)
	if err != nil {
		return nil, err
	}

	created, err := h.svc.CreateExit(ctx, exit.CreateExitInput{
		Actor:                  actor,
		EmployeeID:             req.EmployeeId,
		EmployeeName:           req.EmployeeName,
		Department:             req.Department,
		Position:               req.Position,
		ProposedLastWorkingDay: lastDay,
		ReasonForLeaving:       exit.Reason(req.ReasonForLeaving),
		ReasonDetails:          req.ReasonDetails,
		Feedback:               req.Feedback,
		Suggestions:            req.Suggestions,
		Assets:                 toDomainAssets(req.Assets),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(created)}, nil
}

// UpdateExit は下書きの項目を更新します。
func (h *ExitGrpcHandler) UpdateExit(ctx context.Context, req *exitv1.UpdateExitRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	changes := exit.DraftChanges{
		ReasonDetails:       req.ReasonDetails,
		Feedback:            req.Feedback,
		Suggestions:         req.Suggestions,
		DeclarationAccepted: req.DeclarationAccepted,
	}
	if req.ProposedLastWorkingDay != nil {
		lastDay, err := parseDate(*req.ProposedLastWorkingDay)
		if err != nil {
			return nil, err
		}
		changes.ProposedLastWorkingDay = lastDay
		changes.ProposedLastWorkingDaySet = true
	}
	if req.ReasonForLeaving != nil {
		reason := exit.Reason(*req.ReasonForLeaving)
		changes.ReasonForLeaving = &reason
	}

	updated, err := h.svc.UpdateExit(ctx, exit.UpdateExitInput{
		ID:              req.Id,
		Actor:           actor,
		ExpectedVersion: req.ExpectedVersion,
		Changes:         changes,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(updated)}, nil
}

// GetExit は申請を取得します。
func (h *ExitGrpcHandler) GetExit(ctx context.Context, req *exitv1.GetExitRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetExit(ctx, exit.GetExitInput{ID: req.Id, Actor: actor})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(found)}, nil
}

// ListExits は申請の一覧を取得します。
func (h *ExitGrpcHandler) ListExits(ctx context.Context, req *exitv1.ListExitsRequest) (*exitv1.ListExitsResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	var statusPtr *exit.Status
	if req.Status != "" {
		s := exit.Status(req.Status)
		statusPtr = &s
	}

	result, err := h.svc.ListExits(ctx, exit.ListExitsInput{
		Actor:      actor,
		EmployeeID: req.EmployeeId,
		Department: req.Department,
		Status:     statusPtr,
		PageSize:   int(req.PageSize),
		PageToken:  req.PageToken,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	exits := make([]*exitv1.Exit, 0, len(result.Exits))
	for _, e := range result.Exits {
		exits = append(exits, toProtoExit(e))
	}

	return &exitv1.ListExitsResponse{Exits: exits, NextPageToken: result.NextPageToken}, nil
}

// SubmitExit は下書きを提出します。
func (h *ExitGrpcHandler) SubmitExit(ctx context.Context, req *exitv1.SubmitExitRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	submitted, err := h.svc.SubmitExit(ctx, exit.SubmitExitInput{
		ID:                  req.Id,
		Actor:               actor,
		ExpectedVersion:     req.ExpectedVersion,
		DeclarationAccepted: req.DeclarationAccepted,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(submitted)}, nil
}

// StartReview は提出済みの申請をレビュー中にします。
func (h *ExitGrpcHandler) StartReview(ctx context.Context, req *exitv1.TransitionRequest) (*exitv1.ExitResponse, error) {
	return h.transition(ctx, req, h.svc.StartReview)
}

// ManagerApprove は上長承認を記録します。
func (h *ExitGrpcHandler) ManagerApprove(ctx context.Context, req *exitv1.TransitionRequest) (*exitv1.ExitResponse, error) {
	return h.transition(ctx, req, h.svc.ManagerApprove)
}

// Approve は最終承認で申請を完了させます。
func (h *ExitGrpcHandler) Approve(ctx context.Context, req *exitv1.TransitionRequest) (*exitv1.ExitResponse, error) {
	return h.transition(ctx, req, h.svc.Approve)
}

// CancelExit は申請を取り下げます。
func (h *ExitGrpcHandler) CancelExit(ctx context.Context, req *exitv1.TransitionRequest) (*exitv1.ExitResponse, error) {
	return h.transition(ctx, req, h.svc.CancelExit)
}

func (h *ExitGrpcHandler) transition(ctx context.Context, req *exitv1.TransitionRequest, fn func(context.Context, exit.TransitionInput) (*exit.ExitRequest, error)) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	result, err := fn(ctx, exit.TransitionInput{ID: req.Id, Actor: actor, ExpectedVersion: req.ExpectedVersion})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(result)}, nil
}

// Reject は申請を却下します。
func (h *ExitGrpcHandler) Reject(ctx context.Context, req *exitv1.RejectExitRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	rejected, err := h.svc.Reject(ctx, exit.RejectExitInput{
		ID:              req.Id,
		Actor:           actor,
		ExpectedVersion: req.ExpectedVersion,
		Reason:          req.Reason,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(rejected)}, nil
}

// RemoveExit は申請を削除します。
func (h *ExitGrpcHandler) RemoveExit(ctx context.Context, req *exitv1.RemoveExitRequest) (*exitv1.RemoveExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.svc.RemoveExit(ctx, exit.RemoveExitInput{ID: req.Id, Actor: actor}); err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.RemoveExitResponse{}, nil
}

// UpdateClearance は1部門のクリアランスを更新します。
func (h *ExitGrpcHandler) UpdateClearance(ctx context.Context, req *exitv1.UpdateClearanceRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateClearance(ctx, exit.UpdateClearanceInput{
		ID:         req.Id,
		Actor:      actor,
		Department: req.Department,
		Status:     req.Status,
		Remarks:    req.Remarks,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(updated)}, nil
}

// AddAsset は返却物を追加します。
func (h *ExitGrpcHandler) AddAsset(ctx context.Context, req *exitv1.AddAssetRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.AddAsset(ctx, exit.AddAssetInput{ID: req.Id, Actor: actor, ExpectedVersion: req.ExpectedVersion})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(updated)}, nil
}

// UpdateAssetField は返却物の1項目を更新します。
func (h *ExitGrpcHandler) UpdateAssetField(ctx context.Context, req *exitv1.UpdateAssetFieldRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateAssetField(ctx, exit.UpdateAssetFieldInput{
		ID:              req.Id,
		Actor:           actor,
		ExpectedVersion: req.ExpectedVersion,
		Index:           int(req.Index),
		Field:           req.Field,
		Value:           req.Value,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(updated)}, nil
}

// RemoveAsset は返却物を削除します。
func (h *ExitGrpcHandler) RemoveAsset(ctx context.Context, req *exitv1.RemoveAssetRequest) (*exitv1.ExitResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.RemoveAsset(ctx, exit.RemoveAssetInput{
		ID:              req.Id,
		Actor:           actor,
		ExpectedVersion: req.ExpectedVersion,
		Index:           int(req.Index),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.ExitResponse{Exit: toProtoExit(updated)}, nil
}
