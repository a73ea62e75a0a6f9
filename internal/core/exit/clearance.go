package exit

import (
	"strings"
	"time"
)

// DefaultClearanceDepartments は設定が無い場合に作成時へ投入される部門です。
var DefaultClearanceDepartments = []string{"IT", "Finance", "Admin"}

// clearanceAliases は受け付けるステータス表記と正規値の対応表です。
var clearanceAliases = map[string]ClearanceState{
	"pending":     ClearancePending,
	"in_progress": ClearanceInProgress,
	"in-progress": ClearanceInProgress,
	"inprogress":  ClearanceInProgress,
	"completed":   ClearanceCompleted,
	"cleared":     ClearanceCompleted,
	"approved":    ClearanceCompleted,
}

// ParseClearanceState は別名を正規のクリアランス状態へ変換します。
func ParseClearanceState(raw string) (ClearanceState, error) {
	state, ok := clearanceAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", ErrInvalidClearanceState
	}
	return state, nil
}

// ApplyClearance は部門のクリアランス記録を更新した結果を返します。
// 集約全体の Status は変更しません。完了判定は Approve のみが行います。
func ApplyClearance(req *ExitRequest, actor Actor, department string, state ClearanceState, remarks string, now time.Time) (ClearanceStatus, error) {
	if req.Status.IsTerminal() {
		return ClearanceStatus{}, ErrTerminal
	}
	idx, ok := req.Clearance(strings.TrimSpace(department))
	if !ok {
		return ClearanceStatus{}, ErrDepartmentNotFound
	}
	entry := req.Clearances[idx]
	if !actor.canClear(req, entry.Department) {
		return ClearanceStatus{}, ErrForbidden
	}

	entry.Status = state
	entry.Remarks = strings.TrimSpace(remarks)
	entry.UpdatedBy = actor.ID
	entry.UpdatedAt = &now
	return entry, nil
}

func seedClearances(departments []string) []ClearanceStatus {
	seeded := make([]ClearanceStatus, 0, len(departments))
	for _, d := range departments {
		seeded = append(seeded, ClearanceStatus{Department: d, Status: ClearancePending})
	}
	return seeded
}

func normalizeDepartments(departments []string) []string {
	if len(departments) == 0 {
		return append([]string(nil), DefaultClearanceDepartments...)
	}
	out := make([]string, 0, len(departments))
	seen := make(map[string]struct{}, len(departments))
	for _, d := range departments {
		trimmed := strings.TrimSpace(d)
		key := strings.ToLower(trimmed)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultClearanceDepartments...)
	}
	return out
}
