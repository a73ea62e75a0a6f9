package handler

import (
	"errors"

	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/core/letter"
	"github.com/ogurasousui/exit-formality/internal/core/profile"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exit.ErrValidation),
		errors.Is(err, profile.ErrInvalidEmployeeID),
		errors.Is(err, letter.ErrUnknownKind):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, exit.ErrConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, exit.ErrState),
		errors.Is(err, exit.ErrClearanceIncomplete),
		errors.Is(err, letter.ErrNotEligible),
		errors.Is(err, letter.ErrMissingProfile):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, exit.ErrAuthorization):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, exit.ErrNotFound), errors.Is(err, profile.ErrProfileNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
