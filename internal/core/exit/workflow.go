package exit

import (
	"strings"
	"time"
)

// 以下のコマンドは現在の集約を受け取り、次の集約を返す純粋関数です。
// 引数の集約は変更しません。永続化と楽観ロックは Service が担当します。

// Submit は下書きを提出済みにします。
// 人事は代理提出できますが、申告は本人が事前に受諾している必要があります。
func Submit(req *ExitRequest, actor Actor, declaration bool, now time.Time) (*ExitRequest, error) {
	if !actor.canEdit(req) {
		return nil, ErrForbidden
	}
	if err := guardDraft(req); err != nil {
		return nil, err
	}
	if req.ProposedLastWorkingDay == nil {
		return nil, ErrMissingLastWorkingDay
	}
	if strings.TrimSpace(string(req.ReasonForLeaving)) == "" {
		return nil, ErrMissingReason
	}
	if !req.DeclarationAccepted {
		if !declaration {
			return nil, ErrDeclarationRequired
		}
		if !actor.owns(req) {
			return nil, ErrDeclarationNotOwner
		}
	}

	next := req.Clone()
	next.DeclarationAccepted = true
	next.Status = StatusSubmitted
	next.SubmittedAt = &now
	next.UpdatedAt = now
	return next, nil
}

// StartReview は提出済みの申請をレビュー中にします。
func StartReview(req *ExitRequest, actor Actor, now time.Time) (*ExitRequest, error) {
	if !actor.hasRole(reviewerRoles) {
		return nil, ErrForbidden
	}
	if req.Status.IsTerminal() {
		return nil, ErrTerminal
	}
	if req.Status != StatusSubmitted {
		return nil, ErrNotSubmitted
	}

	next := req.Clone()
	next.Status = StatusUnderReview
	next.UpdatedAt = now
	return next, nil
}

// ManagerApprove は上長承認フラグを立てます。
// 承認済みの場合は変更なし(changed=false)として成功します。
func ManagerApprove(req *ExitRequest, actor Actor, now time.Time) (next *ExitRequest, changed bool, err error) {
	if !actor.hasRole(managerRoles) {
		return nil, false, ErrForbidden
	}
	if req.Status.IsTerminal() {
		return nil, false, ErrTerminal
	}
	if req.ApprovedByManager {
		return req.Clone(), false, nil
	}

	next = req.Clone()
	next.ApprovedByManager = true
	next.ManagerApprovedBy = actor.ID
	next.ManagerApprovedAt = &now
	if next.Status == StatusSubmitted || next.Status == StatusUnderReview {
		next.Status = StatusClearanceInProgress
	}
	next.UpdatedAt = now
	return next, true, nil
}

// Approve は人事による最終承認で申請を完了させます。
// クリアランスは渡された集約(呼び出し時点で読み直したもの)から評価します。
func Approve(req *ExitRequest, actor Actor, now time.Time) (*ExitRequest, error) {
	if !actor.hasRole(hrRoles) {
		return nil, ErrForbidden
	}
	if req.Status.IsTerminal() {
		return nil, ErrTerminal
	}
	if req.Status == StatusDraft {
		return nil, ErrNotSubmitted
	}
	if !req.ApprovedByManager {
		return nil, ErrManagerPending
	}
	if !req.ClearanceComplete() {
		return nil, clearanceIncomplete(req.PendingDepartments())
	}

	next := req.Clone()
	next.Status = StatusCompleted
	next.CompletedBy = actor.ID
	next.CompletedAt = &now
	next.UpdatedAt = now
	return next, nil
}

// Reject は終端でない申請を却下します。
func Reject(req *ExitRequest, actor Actor, reason string, now time.Time) (*ExitRequest, error) {
	if !actor.hasRole(rejectRoles) {
		return nil, ErrForbidden
	}
	if req.Status.IsTerminal() {
		return nil, ErrTerminal
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return nil, ErrMissingRejectReason
	}

	next := req.Clone()
	next.Status = StatusRejected
	next.RejectionReason = trimmed
	next.RejectedBy = actor.ID
	next.RejectedAt = &now
	next.UpdatedAt = now
	return next, nil
}

// Cancel は本人(または人事)による申請の取り下げです。
func Cancel(req *ExitRequest, actor Actor, now time.Time) (*ExitRequest, error) {
	if !actor.canEdit(req) {
		return nil, ErrForbidden
	}
	if req.Status.IsTerminal() {
		return nil, ErrTerminal
	}

	next := req.Clone()
	next.Status = StatusCancelled
	next.UpdatedAt = now
	return next, nil
}

func guardDraft(req *ExitRequest) error {
	if req.Status.IsTerminal() {
		return ErrTerminal
	}
	if req.Status != StatusDraft {
		return ErrNotDraft
	}
	return nil
}
