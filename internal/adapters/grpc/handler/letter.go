package handler

import (
	"context"

	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/exitv1"
	"github.com/ogurasousui/exit-formality/internal/core/letter"
)

// LetterBuilder は書面データ生成の抽象です。letter.Builder が満たします。
type LetterBuilder interface {
	Build(ctx context.Context, in letter.BuildInput) (*letter.Data, error)
}

// LetterGrpcHandler は LetterService の gRPC 実装です。
type LetterGrpcHandler struct {
	builder LetterBuilder
	exitv1.UnimplementedLetterServiceServer
}

// NewLetterGrpcHandler は LetterGrpcHandler を生成します。
func NewLetterGrpcHandler(builder LetterBuilder) *LetterGrpcHandler {
	return &LetterGrpcHandler{builder: builder}
}

// BuildLetter は完了済み申請の退職証明・在職証明データを返します。
func (h *LetterGrpcHandler) BuildLetter(ctx context.Context, req *exitv1.BuildLetterRequest) (*exitv1.BuildLetterResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	data, err := h.builder.Build(ctx, letter.BuildInput{ExitID: req.ExitId, Actor: actor, Kind: letter.Kind(req.Kind)})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &exitv1.BuildLetterResponse{Letter: &exitv1.LetterData{
		Kind:           string(data.Kind),
		IssueDate:      data.IssueDate,
		ExitId:         data.ExitID,
		EmployeeId:     data.EmployeeID,
		EmployeeName:   data.EmployeeName,
		Prefix:         data.Prefix,
		Pronoun:        data.Pronoun,
		Position:       data.Position,
		Department:     data.Department,
		Address:        data.Address,
		JoiningDate:    data.JoiningDate,
		LastWorkingDay: data.LastWorkingDay,
		Tenure:         data.Tenure,
		TenureStrategy: string(data.TenureStrategy),
		Company: &exitv1.Company{
			Name:           data.Company.Name,
			Address:        data.Company.Address,
			City:           data.Company.City,
			SignatoryName:  data.Company.SignatoryName,
			SignatoryTitle: data.Company.SignatoryTitle,
		},
	}}, nil
}
