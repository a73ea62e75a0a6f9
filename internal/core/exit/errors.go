package exit

import (
	"errors"
	"fmt"
)

// 呼び出し側が errors.Is で判定するための分類エラーです。
// ErrConflict のみ、集約を再取得したうえで再実行できます。
var (
	ErrValidation          = errors.New("exit: validation failed")
	ErrState               = errors.New("exit: invalid state")
	ErrAuthorization       = errors.New("exit: not authorized")
	ErrClearanceIncomplete = errors.New("exit: clearance incomplete")
	ErrNotFound            = errors.New("exit: not found")
	ErrConflict            = errors.New("exit: concurrent modification")
)

var (
	ErrInvalidID             = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidEmployeeID     = fmt.Errorf("%w: invalid employee id", ErrValidation)
	ErrInvalidEmployeeName   = fmt.Errorf("%w: invalid employee name", ErrValidation)
	ErrInvalidActor          = fmt.Errorf("%w: actor is required", ErrValidation)
	ErrMissingLastWorkingDay = fmt.Errorf("%w: proposed last working day is required", ErrValidation)
	ErrMissingReason         = fmt.Errorf("%w: reason for leaving is required", ErrValidation)
	ErrInvalidReason         = fmt.Errorf("%w: unknown reason for leaving", ErrValidation)
	ErrDeclarationRequired   = fmt.Errorf("%w: declaration must be accepted", ErrValidation)
	ErrMissingRejectReason   = fmt.Errorf("%w: rejection reason is required", ErrValidation)
	ErrInvalidClearanceState = fmt.Errorf("%w: unknown clearance status", ErrValidation)
	ErrInvalidAssetField     = fmt.Errorf("%w: unknown asset field", ErrValidation)
	ErrInvalidAssetCategory  = fmt.Errorf("%w: unknown asset category", ErrValidation)
	ErrInvalidAssetStatus    = fmt.Errorf("%w: unknown asset status", ErrValidation)
	ErrInvalidStatus         = fmt.Errorf("%w: unknown status", ErrValidation)
	ErrInvalidPageSize       = fmt.Errorf("%w: invalid page size", ErrValidation)
	ErrInvalidPageToken      = fmt.Errorf("%w: invalid page token", ErrValidation)

	ErrTerminal       = fmt.Errorf("%w: request is closed", ErrState)
	ErrNotDraft       = fmt.Errorf("%w: request is no longer a draft", ErrState)
	ErrNotSubmitted   = fmt.Errorf("%w: request has not been submitted", ErrState)
	ErrManagerPending = fmt.Errorf("%w: manager approval is required", ErrState)

	ErrForbidden           = fmt.Errorf("%w: role not permitted", ErrAuthorization)
	ErrDeclarationNotOwner = fmt.Errorf("%w: declaration must be given by the employee", ErrAuthorization)

	ErrExitNotFound       = fmt.Errorf("%w: exit request", ErrNotFound)
	ErrDepartmentNotFound = fmt.Errorf("%w: clearance department", ErrNotFound)
	ErrAssetNotFound      = fmt.Errorf("%w: asset item", ErrNotFound)

	ErrVersionMismatch = fmt.Errorf("%w: version mismatch", ErrConflict)
)

func clearanceIncomplete(pending []string) error {
	return fmt.Errorf("%w: pending %v", ErrClearanceIncomplete, pending)
}
