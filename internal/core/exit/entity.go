package exit

import (
	"strings"
	"time"
)

// Status は退職手続きの状態を表します。
type Status string

const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusUnderReview         Status = "under_review"
	StatusClearanceInProgress Status = "clearance_in_progress"
	StatusCompleted           Status = "completed"
	StatusRejected            Status = "rejected"
	StatusCancelled           Status = "cancelled"
)

// IsTerminal は以降の遷移が許可されない状態かを返します。
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusClearanceInProgress,
		StatusCompleted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Reason は退職理由のタグです。
type Reason string

const (
	ReasonCareerGrowth    Reason = "career_growth"
	ReasonHigherStudies   Reason = "higher_studies"
	ReasonRelocation      Reason = "relocation"
	ReasonHealth          Reason = "health"
	ReasonPersonal        Reason = "personal"
	ReasonCompensation    Reason = "compensation"
	ReasonWorkEnvironment Reason = "work_environment"
	ReasonRetirement      Reason = "retirement"
	ReasonOther           Reason = "other"
)

func isValidReason(r Reason) bool {
	switch r {
	case ReasonCareerGrowth, ReasonHigherStudies, ReasonRelocation, ReasonHealth, ReasonPersonal,
		ReasonCompensation, ReasonWorkEnvironment, ReasonRetirement, ReasonOther:
		return true
	default:
		return false
	}
}

// AssetCategory は返却物の分類です。
type AssetCategory string

const (
	AssetCategoryHardware  AssetCategory = "Hardware"
	AssetCategorySoftware  AssetCategory = "Software"
	AssetCategoryAccess    AssetCategory = "Access"
	AssetCategoryDocuments AssetCategory = "Documents"
	AssetCategoryOther     AssetCategory = "Other"
)

// AssetStatus は返却物の返却状況です。
type AssetStatus string

const (
	AssetStatusPending  AssetStatus = "Pending"
	AssetStatusReturned AssetStatus = "Returned"
	AssetStatusLost     AssetStatus = "Lost"
	AssetStatusDamaged  AssetStatus = "Damaged"
)

// AssetItem は返却チェックリストの1行です。
type AssetItem struct {
	Name         string
	Category     AssetCategory
	SerialNumber string
	Status       AssetStatus
	Remarks      string
}

// ClearanceState は部門ごとのクリアランス状態です。
type ClearanceState string

const (
	ClearancePending    ClearanceState = "pending"
	ClearanceInProgress ClearanceState = "in_progress"
	ClearanceCompleted  ClearanceState = "completed"
)

// ClearanceStatus は1部門分のクリアランス記録です。
type ClearanceStatus struct {
	Department string
	Status     ClearanceState
	Remarks    string
	UpdatedBy  string
	UpdatedAt  *time.Time
}

// ExitRequest は退職手続きの集約ルートです。
type ExitRequest struct {
	ID                     string
	EmployeeID             string
	EmployeeName           string
	Department             string
	Position               string
	ProposedLastWorkingDay *time.Time
	ReasonForLeaving       Reason
	ReasonDetails          string
	Feedback               string
	Suggestions            string
	DeclarationAccepted    bool
	Assets                 []AssetItem
	Clearances             []ClearanceStatus
	Status                 Status
	ApprovedByManager      bool
	ManagerApprovedBy      string
	ManagerApprovedAt      *time.Time
	RejectionReason        string
	RejectedBy             string
	RejectedAt             *time.Time
	CompletedBy            string
	SubmittedAt            *time.Time
	CompletedAt            *time.Time
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Clone は入れ子のスライスやポインタを含めて複製します。
func (r *ExitRequest) Clone() *ExitRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.ProposedLastWorkingDay = cloneTime(r.ProposedLastWorkingDay)
	c.ManagerApprovedAt = cloneTime(r.ManagerApprovedAt)
	c.RejectedAt = cloneTime(r.RejectedAt)
	c.SubmittedAt = cloneTime(r.SubmittedAt)
	c.CompletedAt = cloneTime(r.CompletedAt)
	if r.Assets != nil {
		c.Assets = append([]AssetItem(nil), r.Assets...)
	}
	if r.Clearances != nil {
		c.Clearances = make([]ClearanceStatus, len(r.Clearances))
		for i, cl := range r.Clearances {
			cl.UpdatedAt = cloneTime(cl.UpdatedAt)
			c.Clearances[i] = cl
		}
	}
	return &c
}

// Clearance は部門名(大文字小文字を区別しない)で記録を探します。
func (r *ExitRequest) Clearance(department string) (int, bool) {
	for i, c := range r.Clearances {
		if strings.EqualFold(c.Department, department) {
			return i, true
		}
	}
	return -1, false
}

// ClearanceComplete は全部門が completed かを返します。
func (r *ExitRequest) ClearanceComplete() bool {
	for _, c := range r.Clearances {
		if c.Status != ClearanceCompleted {
			return false
		}
	}
	return true
}

// PendingDepartments は completed でない部門名を返します。
func (r *ExitRequest) PendingDepartments() []string {
	var pending []string
	for _, c := range r.Clearances {
		if c.Status != ClearanceCompleted {
			pending = append(pending, c.Department)
		}
	}
	return pending
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &normalized
}
