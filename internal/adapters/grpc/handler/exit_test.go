package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/exitv1"
	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/core/letter"
	"github.com/ogurasousui/exit-formality/internal/core/profile"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubExitUseCase struct {
	exit.UseCase

	createInput exit.CreateExitInput
	updateInput exit.UpdateExitInput
	listInput   exit.ListExitsInput
	transition  exit.TransitionInput
	out         *exit.ExitRequest
	err         error
}

func (s *stubExitUseCase) CreateExit(_ context.Context, in exit.CreateExitInput) (*exit.ExitRequest, error) {
	s.createInput = in
	return s.out, s.err
}

func (s *stubExitUseCase) UpdateExit(_ context.Context, in exit.UpdateExitInput) (*exit.ExitRequest, error) {
	s.updateInput = in
	return s.out, s.err
}

func (s *stubExitUseCase) ListExits(_ context.Context, in exit.ListExitsInput) (*exit.ListExitsResult, error) {
	s.listInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &exit.ListExitsResult{Exits: []*exit.ExitRequest{s.out}, NextPageToken: "50"}, nil
}

func (s *stubExitUseCase) Approve(_ context.Context, in exit.TransitionInput) (*exit.ExitRequest, error) {
	s.transition = in
	return s.out, s.err
}

var hrActor = exit.Actor{ID: "hr-1", Role: exit.RoleHR}

func withActor(actor exit.Actor) context.Context {
	return interceptor.ContextWithActor(context.Background(), actor)
}

func sampleExit() *exit.ExitRequest {
	lastDay := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	return &exit.ExitRequest{
		ID:                     "exit-1",
		EmployeeID:             "emp-1",
		EmployeeName:           "Arun Kumar",
		ProposedLastWorkingDay: &lastDay,
		Status:                 exit.StatusSubmitted,
		Assets:                 []exit.AssetItem{{Name: "Laptop", Category: exit.AssetCategoryHardware, Status: exit.AssetStatusPending}},
		Clearances:             []exit.ClearanceStatus{{Department: "IT", Status: exit.ClearanceCompleted, UpdatedAt: &now}},
		SubmittedAt:            &now,
		Version:                2,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func TestExitGrpcHandler_CreateExit(t *testing.T) {
	t.Parallel()

	stub := &stubExitUseCase{out: sampleExit()}
	handler := NewExitGrpcHandler(stub)

	resp, err := handler.CreateExit(withActor(exit.Actor{ID: "emp-1", Role: exit.RoleEmployee}), &exitv1.CreateExitRequest{
		EmployeeName:           "Arun Kumar",
		ProposedLastWorkingDay: "2024-06-01",
		ReasonForLeaving:       "career_growth",
		Assets:                 []*exitv1.AssetItem{{Name: "Laptop", Category: "hardware"}},
	})
	if err != nil {
		t.Fatalf("CreateExit returned error: %v", err)
	}

	if stub.createInput.Actor.ID != "emp-1" || stub.createInput.ReasonForLeaving != exit.ReasonCareerGrowth {
		t.Fatalf("unexpected input: %+v", stub.createInput)
	}
	if stub.createInput.ProposedLastWorkingDay == nil || stub.createInput.ProposedLastWorkingDay.Day() != 1 {
		t.Fatalf("expected parsed date, got %+v", stub.createInput.ProposedLastWorkingDay)
	}
	if len(stub.createInput.Assets) != 1 || stub.createInput.Assets[0].Category != "hardware" {
		t.Fatalf("expected assets to pass through, got %+v", stub.createInput.Assets)
	}

	got := resp.Exit
	if got.Id != "exit-1" || got.ProposedLastWorkingDay != "2024-06-01" || got.Version != 2 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.SubmittedAt != "2024-05-02T09:30:00Z" || got.CompletedAt != "" {
		t.Fatalf("unexpected timestamps: %+v", got)
	}
	if len(got.Clearances) != 1 || got.Clearances[0].Status != "completed" {
		t.Fatalf("unexpected clearances: %+v", got.Clearances)
	}
}

func TestExitGrpcHandler_RequiresActor(t *testing.T) {
	t.Parallel()

	handler := NewExitGrpcHandler(&stubExitUseCase{})
	_, err := handler.CreateExit(context.Background(), &exitv1.CreateExitRequest{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestExitGrpcHandler_InvalidDate(t *testing.T) {
	t.Parallel()

	handler := NewExitGrpcHandler(&stubExitUseCase{})
	_, err := handler.CreateExit(withActor(hrActor), &exitv1.CreateExitRequest{ProposedLastWorkingDay: "01/06/2024"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestExitGrpcHandler_UpdateExit_ClearsDate(t *testing.T) {
	t.Parallel()

	stub := &stubExitUseCase{out: sampleExit()}
	handler := NewExitGrpcHandler(stub)
	empty := ""
	reason := "relocation"

	if _, err := handler.UpdateExit(withActor(hrActor), &exitv1.UpdateExitRequest{
		Id:                     "exit-1",
		ExpectedVersion:        2,
		ProposedLastWorkingDay: &empty,
		ReasonForLeaving:       &reason,
	}); err != nil {
		t.Fatalf("UpdateExit returned error: %v", err)
	}

	changes := stub.updateInput.Changes
	if !changes.ProposedLastWorkingDaySet || changes.ProposedLastWorkingDay != nil {
		t.Fatalf("expected last working day to be cleared, got %+v", changes)
	}
	if changes.ReasonForLeaving == nil || *changes.ReasonForLeaving != exit.ReasonRelocation {
		t.Fatalf("expected reason to be set, got %+v", changes.ReasonForLeaving)
	}
	if changes.Feedback != nil || stub.updateInput.ExpectedVersion != 2 {
		t.Fatalf("unexpected update input: %+v", stub.updateInput)
	}
}

func TestExitGrpcHandler_ListExits(t *testing.T) {
	t.Parallel()

	stub := &stubExitUseCase{out: sampleExit()}
	handler := NewExitGrpcHandler(stub)

	resp, err := handler.ListExits(withActor(hrActor), &exitv1.ListExitsRequest{Status: "submitted", PageSize: 10})
	if err != nil {
		t.Fatalf("ListExits returned error: %v", err)
	}
	if stub.listInput.Status == nil || *stub.listInput.Status != exit.StatusSubmitted || stub.listInput.PageSize != 10 {
		t.Fatalf("unexpected list input: %+v", stub.listInput)
	}
	if len(resp.Exits) != 1 || resp.NextPageToken != "50" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestExitGrpcHandler_Approve_ErrorMapping(t *testing.T) {
	t.Parallel()

	stub := &stubExitUseCase{err: fmt.Errorf("wrapped: %w", exit.ErrVersionMismatch)}
	handler := NewExitGrpcHandler(stub)

	_, err := handler.Approve(withActor(hrActor), &exitv1.TransitionRequest{Id: "exit-1", ExpectedVersion: 4})
	if status.Code(err) != codes.Aborted {
		t.Fatalf("expected Aborted, got %v", err)
	}
	if stub.transition.ExpectedVersion != 4 || stub.transition.Actor != hrActor {
		t.Fatalf("unexpected transition input: %+v", stub.transition)
	}
}

func TestToStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code codes.Code
	}{
		{err: exit.ErrMissingReason, code: codes.InvalidArgument},
		{err: exit.ErrInvalidClearanceState, code: codes.InvalidArgument},
		{err: letter.ErrUnknownKind, code: codes.InvalidArgument},
		{err: exit.ErrTerminal, code: codes.FailedPrecondition},
		{err: exit.ErrManagerPending, code: codes.FailedPrecondition},
		{err: exit.ErrClearanceIncomplete, code: codes.FailedPrecondition},
		{err: letter.ErrNotEligible, code: codes.FailedPrecondition},
		{err: exit.ErrForbidden, code: codes.PermissionDenied},
		{err: exit.ErrExitNotFound, code: codes.NotFound},
		{err: exit.ErrDepartmentNotFound, code: codes.NotFound},
		{err: profile.ErrProfileNotFound, code: codes.NotFound},
		{err: exit.ErrVersionMismatch, code: codes.Aborted},
		{err: errors.New("boom"), code: codes.Internal},
	}

	for _, tt := range tests {
		if got := status.Code(toStatusError(tt.err)); got != tt.code {
			t.Errorf("toStatusError(%v) = %v, want %v", tt.err, got, tt.code)
		}
	}
	if toStatusError(nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
