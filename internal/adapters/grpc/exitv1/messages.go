// Package exitv1 は退職手続き API(exitformality.exit.v1)のメッセージとサービス定義です。
// メッセージは JSON コーデックで送受信します。日付は YYYY-MM-DD、日時は RFC3339 の文字列です。
// 定義は proto/exitformality/exit/v1/exit.proto と一致させます。
package exitv1

// Exit は退職手続き申請です。
type Exit struct {
	Id                     string             `json:"id"`
	EmployeeId             string             `json:"employee_id"`
	EmployeeName           string             `json:"employee_name"`
	Department             string             `json:"department,omitempty"`
	Position               string             `json:"position,omitempty"`
	ProposedLastWorkingDay string             `json:"proposed_last_working_day,omitempty"`
	ReasonForLeaving       string             `json:"reason_for_leaving,omitempty"`
	ReasonDetails          string             `json:"reason_details,omitempty"`
	Feedback               string             `json:"feedback,omitempty"`
	Suggestions            string             `json:"suggestions,omitempty"`
	DeclarationAccepted    bool               `json:"declaration_accepted"`
	Assets                 []*AssetItem       `json:"assets"`
	Clearances             []*ClearanceStatus `json:"clearances"`
	Status                 string             `json:"status"`
	ApprovedByManager      bool               `json:"approved_by_manager"`
	ManagerApprovedBy      string             `json:"manager_approved_by,omitempty"`
	ManagerApprovedAt      string             `json:"manager_approved_at,omitempty"`
	RejectionReason        string             `json:"rejection_reason,omitempty"`
	RejectedBy             string             `json:"rejected_by,omitempty"`
	RejectedAt             string             `json:"rejected_at,omitempty"`
	CompletedBy            string             `json:"completed_by,omitempty"`
	SubmittedAt            string             `json:"submitted_at,omitempty"`
	CompletedAt            string             `json:"completed_at,omitempty"`
	Version                int64              `json:"version"`
	CreatedAt              string             `json:"created_at"`
	UpdatedAt              string             `json:"updated_at"`
}

// AssetItem は返却チェックリストの1行です。
type AssetItem struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number,omitempty"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks,omitempty"`
}

// ClearanceStatus は1部門分のクリアランスです。
type ClearanceStatus struct {
	Department string `json:"department"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks,omitempty"`
	UpdatedBy  string `json:"updated_by,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type CreateExitRequest struct {
	EmployeeId             string       `json:"employee_id,omitempty"`
	EmployeeName           string       `json:"employee_name"`
	Department             string       `json:"department,omitempty"`
	Position               string       `json:"position,omitempty"`
	ProposedLastWorkingDay string       `json:"proposed_last_working_day,omitempty"`
	ReasonForLeaving       string       `json:"reason_for_leaving,omitempty"`
	ReasonDetails          string       `json:"reason_details,omitempty"`
	Feedback               string       `json:"feedback,omitempty"`
	Suggestions            string       `json:"suggestions,omitempty"`
	Assets                 []*AssetItem `json:"assets,omitempty"`
}

// UpdateExitRequest は下書きの部分更新です。省略した項目は変更しません。
// ProposedLastWorkingDay に空文字を指定すると未設定に戻します。
type UpdateExitRequest struct {
	Id                     string  `json:"id"`
	ExpectedVersion        int64   `json:"expected_version,omitempty"`
	ProposedLastWorkingDay *string `json:"proposed_last_working_day,omitempty"`
	ReasonForLeaving       *string `json:"reason_for_leaving,omitempty"`
	ReasonDetails          *string `json:"reason_details,omitempty"`
	Feedback               *string `json:"feedback,omitempty"`
	Suggestions            *string `json:"suggestions,omitempty"`
	DeclarationAccepted    *bool   `json:"declaration_accepted,omitempty"`
}

type GetExitRequest struct {
	Id string `json:"id"`
}

type ListExitsRequest struct {
	EmployeeId string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
	PageSize   int32  `json:"page_size,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
}

type ListExitsResponse struct {
	Exits         []*Exit `json:"exits"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

type SubmitExitRequest struct {
	Id                  string `json:"id"`
	ExpectedVersion     int64  `json:"expected_version,omitempty"`
	DeclarationAccepted bool   `json:"declaration_accepted"`
}

// TransitionRequest は追加項目の無い状態遷移(StartReview / ManagerApprove / Approve / CancelExit)の入力です。
type TransitionRequest struct {
	Id              string `json:"id"`
	ExpectedVersion int64  `json:"expected_version,omitempty"`
}

type RejectExitRequest struct {
	Id              string `json:"id"`
	ExpectedVersion int64  `json:"expected_version,omitempty"`
	Reason          string `json:"reason"`
}

type RemoveExitRequest struct {
	Id string `json:"id"`
}

type RemoveExitResponse struct{}

type UpdateClearanceRequest struct {
	Id         string `json:"id"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks,omitempty"`
}

type AddAssetRequest struct {
	Id              string `json:"id"`
	ExpectedVersion int64  `json:"expected_version,omitempty"`
}

type UpdateAssetFieldRequest struct {
	Id              string `json:"id"`
	ExpectedVersion int64  `json:"expected_version,omitempty"`
	Index           int32  `json:"index"`
	Field           string `json:"field"`
	Value           string `json:"value"`
}

type RemoveAssetRequest struct {
	Id              string `json:"id"`
	ExpectedVersion int64  `json:"expected_version,omitempty"`
	Index           int32  `json:"index"`
}

// ExitResponse は申請を返す RPC の共通レスポンスです。
type ExitResponse struct {
	Exit *Exit `json:"exit"`
}

type BuildLetterRequest struct {
	ExitId string `json:"exit_id"`
	Kind   string `json:"kind"`
}

// Company は書面の会社情報ブロックです。
type Company struct {
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	SignatoryName  string `json:"signatory_name,omitempty"`
	SignatoryTitle string `json:"signatory_title,omitempty"`
}

// LetterData は退職証明・在職証明の差し込みデータです。
type LetterData struct {
	Kind           string   `json:"kind"`
	IssueDate      string   `json:"issue_date"`
	ExitId         string   `json:"exit_id"`
	EmployeeId     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name"`
	Prefix         string   `json:"prefix"`
	Pronoun        string   `json:"pronoun"`
	Position       string   `json:"position"`
	Department     string   `json:"department"`
	Address        string   `json:"address"`
	JoiningDate    string   `json:"joining_date"`
	LastWorkingDay string   `json:"last_working_day"`
	Tenure         string   `json:"tenure"`
	TenureStrategy string   `json:"tenure_strategy"`
	Company        *Company `json:"company"`
}

type BuildLetterResponse struct {
	Letter *LetterData `json:"letter"`
}
