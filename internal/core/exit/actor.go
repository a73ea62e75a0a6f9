package exit

import "strings"

// Role は操作者の権限種別です。
// RoleClearanceOfficer は Actor.Department の部門クリアランスのみを担当します。
type Role string

const (
	RoleEmployee         Role = "employee"
	RoleTeamLead         Role = "team-lead"
	RoleProjectManager   Role = "project-manager"
	RoleHR               Role = "hr"
	RoleAdmin            Role = "admin"
	RoleClearanceOfficer Role = "clearance-officer"
)

// ParseRole は文字列からロールを解釈します。未知の値は false を返します。
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleEmployee, RoleTeamLead, RoleProjectManager, RoleHR, RoleAdmin, RoleClearanceOfficer:
		return role, true
	default:
		return "", false
	}
}

// Actor は各コマンドを実行する主体です。
// Department は RoleClearanceOfficer の担当部門の判定にのみ使用します。
type Actor struct {
	ID         string
	Role       Role
	Department string
}

var (
	managerRoles   = roleSet(RoleTeamLead, RoleProjectManager, RoleAdmin)
	hrRoles        = roleSet(RoleHR, RoleAdmin)
	rejectRoles    = roleSet(RoleTeamLead, RoleProjectManager, RoleHR, RoleAdmin)
	reviewerRoles  = roleSet(RoleTeamLead, RoleProjectManager, RoleHR, RoleAdmin)
	clearanceRoles = roleSet(RoleHR, RoleAdmin)
)

func roleSet(roles ...Role) map[Role]struct{} {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (a Actor) hasRole(set map[Role]struct{}) bool {
	_, ok := set[a.Role]
	return ok
}

func (a Actor) owns(req *ExitRequest) bool {
	return a.ID != "" && a.ID == req.EmployeeID
}

func validateActor(a Actor) error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrInvalidActor
	}
	if _, ok := ParseRole(string(a.Role)); !ok {
		return ErrInvalidActor
	}
	return nil
}

// canEdit は下書きの編集・提出・取り下げが可能かを判定します。
func (a Actor) canEdit(req *ExitRequest) bool {
	return a.owns(req) || a.hasRole(hrRoles)
}

func (a Actor) canView(req *ExitRequest) bool {
	if a.Role != RoleEmployee {
		return true
	}
	return a.owns(req)
}

// canClear は部門クリアランスを更新できるかを判定します。
// 退職者本人は役割に関わらず自分の申請のクリアランスを更新できません。
func (a Actor) canClear(req *ExitRequest, department string) bool {
	if a.owns(req) {
		return false
	}
	if a.hasRole(clearanceRoles) {
		return true
	}
	return a.Role == RoleClearanceOfficer && a.Department != "" && strings.EqualFold(a.Department, department)
}
