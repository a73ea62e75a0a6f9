package exit

import (
	"strings"
	"time"
)

// DraftChanges は下書き中のみ変更できる項目です。nil の項目は変更しません。
type DraftChanges struct {
	ProposedLastWorkingDay    *time.Time
	ProposedLastWorkingDaySet bool
	ReasonForLeaving          *Reason
	ReasonDetails             *string
	Feedback                  *string
	Suggestions               *string
	DeclarationAccepted       *bool
}

// EditDraft は下書きの項目を更新します。
func EditDraft(req *ExitRequest, actor Actor, changes DraftChanges, now time.Time) (*ExitRequest, error) {
	if !actor.canEdit(req) {
		return nil, ErrForbidden
	}
	if err := guardDraft(req); err != nil {
		return nil, err
	}

	next := req.Clone()
	if changes.ProposedLastWorkingDaySet {
		next.ProposedLastWorkingDay = normalizeDate(changes.ProposedLastWorkingDay)
	}
	if changes.ReasonForLeaving != nil {
		reason, err := normalizeReason(*changes.ReasonForLeaving)
		if err != nil {
			return nil, err
		}
		next.ReasonForLeaving = reason
	}
	if changes.ReasonDetails != nil {
		next.ReasonDetails = strings.TrimSpace(*changes.ReasonDetails)
	}
	if changes.Feedback != nil {
		next.Feedback = strings.TrimSpace(*changes.Feedback)
	}
	if changes.Suggestions != nil {
		next.Suggestions = strings.TrimSpace(*changes.Suggestions)
	}
	if changes.DeclarationAccepted != nil {
		if *changes.DeclarationAccepted != req.DeclarationAccepted && !actor.owns(req) {
			return nil, ErrDeclarationNotOwner
		}
		next.DeclarationAccepted = *changes.DeclarationAccepted
	}
	next.UpdatedAt = now
	return next, nil
}

// normalizeReason は空文字を許容し、それ以外は既知のタグのみ受け付けます。
func normalizeReason(raw Reason) (Reason, error) {
	reason := Reason(strings.ToLower(strings.TrimSpace(string(raw))))
	if reason == "" {
		return "", nil
	}
	if !isValidReason(reason) {
		return "", ErrInvalidReason
	}
	return reason, nil
}
