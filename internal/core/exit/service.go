package exit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は退職手続きのユースケースをまとめます。
type Service struct {
	repo        Repository
	clock       Clock
	tx          TransactionManager
	departments []string
}

// UseCase は退職手続きユースケースの公開インターフェースです。
type UseCase interface {
	CreateExit(ctx context.Context, in CreateExitInput) (*ExitRequest, error)
	UpdateExit(ctx context.Context, in UpdateExitInput) (*ExitRequest, error)
	GetExit(ctx context.Context, in GetExitInput) (*ExitRequest, error)
	ListExits(ctx context.Context, in ListExitsInput) (*ListExitsResult, error)
	SubmitExit(ctx context.Context, in SubmitExitInput) (*ExitRequest, error)
	StartReview(ctx context.Context, in TransitionInput) (*ExitRequest, error)
	ManagerApprove(ctx context.Context, in TransitionInput) (*ExitRequest, error)
	Approve(ctx context.Context, in TransitionInput) (*ExitRequest, error)
	Reject(ctx context.Context, in RejectExitInput) (*ExitRequest, error)
	CancelExit(ctx context.Context, in TransitionInput) (*ExitRequest, error)
	RemoveExit(ctx context.Context, in RemoveExitInput) error
	UpdateClearance(ctx context.Context, in UpdateClearanceInput) (*ExitRequest, error)
	AddAsset(ctx context.Context, in AddAssetInput) (*ExitRequest, error)
	UpdateAssetField(ctx context.Context, in UpdateAssetFieldInput) (*ExitRequest, error)
	RemoveAsset(ctx context.Context, in RemoveAssetInput) (*ExitRequest, error)
}

// NewService は Service を生成します。departments が空の場合は DefaultClearanceDepartments を使用します。
func NewService(repo Repository, clock Clock, tx TransactionManager, departments []string) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx, departments: normalizeDepartments(departments)}
}

// Departments は作成時に投入されるクリアランス部門を返します。
func (s *Service) Departments() []string {
	return append([]string(nil), s.departments...)
}

// CreateExitInput は申請作成時の入力です。EmployeeID が空の場合は Actor.ID を使用します。
type CreateExitInput struct {
	Actor                  Actor
	EmployeeID             string
	EmployeeName           string
	Department             string
	Position               string
	ProposedLastWorkingDay *time.Time
	ReasonForLeaving       Reason
	ReasonDetails          string
	Feedback               string
	Suggestions            string
	Assets                 []AssetItem
}

// UpdateExitInput は下書き項目の更新入力です。
type UpdateExitInput struct {
	ID              string
	Actor           Actor
	ExpectedVersion int64
	Changes         DraftChanges
}

// GetExitInput は申請取得時の入力です。
type GetExitInput struct {
	ID    string
	Actor Actor
}

// ListExitsInput は一覧取得時の入力です。
type ListExitsInput struct {
	Actor      Actor
	EmployeeID string
	Department string
	Status     *Status
	PageSize   int
	PageToken  string
}

// ListExitsResult は一覧取得結果です。
type ListExitsResult struct {
	Exits         []*ExitRequest
	NextPageToken string
}

// SubmitExitInput は提出時の入力です。
type SubmitExitInput struct {
	ID                  string
	Actor               Actor
	ExpectedVersion     int64
	DeclarationAccepted bool
}

// TransitionInput は追加項目を持たない状態遷移の入力です。
// ExpectedVersion が 0 の場合はバージョン照合を行いません。
type TransitionInput struct {
	ID              string
	Actor           Actor
	ExpectedVersion int64
}

// RejectExitInput は却下時の入力です。
type RejectExitInput struct {
	ID              string
	Actor           Actor
	ExpectedVersion int64
	Reason          string
}

// RemoveExitInput は管理者による削除の入力です。
type RemoveExitInput struct {
	ID    string
	Actor Actor
}

// UpdateClearanceInput は部門クリアランス更新の入力です。
type UpdateClearanceInput struct {
	ID         string
	Actor      Actor
	Department string
	Status     string
	Remarks    string
}

// AddAssetInput は返却物追加の入力です。
type AddAssetInput struct {
	ID              string
	Actor           Actor
	ExpectedVersion int64
}

// UpdateAssetFieldInput は返却物1項目の更新入力です。
type UpdateAssetFieldInput struct {
	ID              string
	Actor           Actor
	ExpectedVersion int64
	Index           int
	Field           string
	Value           string
}

// RemoveAssetInput は返却物削除の入力です。
type RemoveAssetInput struct {
	ID              string
	Actor           Actor
	ExpectedVersion int64
	Index           int
}

// CreateExit は下書き状態の申請を作成します。
func (s *Service) CreateExit(ctx context.Context, in CreateExitInput) (*ExitRequest, error) {
	if err := validateActor(in.Actor); err != nil {
		return nil, err
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		employeeID = in.Actor.ID
	}
	selfOnly := in.Actor.Role == RoleEmployee || in.Actor.Role == RoleClearanceOfficer
	if selfOnly && employeeID != in.Actor.ID {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(in.EmployeeName)
	if name == "" {
		return nil, ErrInvalidEmployeeName
	}

	reason, err := normalizeReason(in.ReasonForLeaving)
	if err != nil {
		return nil, err
	}

	assets, err := normalizeAssets(in.Assets)
	if err != nil {
		return nil, err
	}

	var created *ExitRequest
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		req := &ExitRequest{
			EmployeeID:             employeeID,
			EmployeeName:           name,
			Department:             strings.TrimSpace(in.Department),
			Position:               strings.TrimSpace(in.Position),
			ProposedLastWorkingDay: normalizeDate(in.ProposedLastWorkingDay),
			ReasonForLeaving:       reason,
			ReasonDetails:          strings.TrimSpace(in.ReasonDetails),
			Feedback:               strings.TrimSpace(in.Feedback),
			Suggestions:            strings.TrimSpace(in.Suggestions),
			Assets:                 assets,
			Clearances:             seedClearances(s.departments),
			Status:                 StatusDraft,
			CreatedAt:              now,
			UpdatedAt:              now,
		}

		result, err := s.repo.Create(txCtx, req)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateExit は下書きの項目を更新します。
func (s *Service) UpdateExit(ctx context.Context, in UpdateExitInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := EditDraft(current, in.Actor, in.Changes, now)
		return next, err == nil, err
	})
}

// SubmitExit は下書きを提出します。
func (s *Service) SubmitExit(ctx context.Context, in SubmitExitInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := Submit(current, in.Actor, in.DeclarationAccepted, now)
		return next, err == nil, err
	})
}

// StartReview は提出済みの申請をレビュー中にします。
func (s *Service) StartReview(ctx context.Context, in TransitionInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := StartReview(current, in.Actor, now)
		return next, err == nil, err
	})
}

// ManagerApprove は上長承認を記録します。承認済みの場合は何もせず現在の集約を返します。
func (s *Service) ManagerApprove(ctx context.Context, in TransitionInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		return ManagerApprove(current, in.Actor, now)
	})
}

// Approve は人事の最終承認です。クリアランスは排他ロック下で読み直した最新状態で判定します。
func (s *Service) Approve(ctx context.Context, in TransitionInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := Approve(current, in.Actor, now)
		return next, err == nil, err
	})
}

// Reject は申請を却下します。
func (s *Service) Reject(ctx context.Context, in RejectExitInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := Reject(current, in.Actor, in.Reason, now)
		return next, err == nil, err
	})
}

// CancelExit は申請を取り下げます。
func (s *Service) CancelExit(ctx context.Context, in TransitionInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := Cancel(current, in.Actor, now)
		return next, err == nil, err
	})
}

// AddAsset は返却物を追加します。
func (s *Service) AddAsset(ctx context.Context, in AddAssetInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := AddAsset(current, in.Actor, now)
		return next, err == nil, err
	})
}

// UpdateAssetField は返却物の1項目を更新します。
func (s *Service) UpdateAssetField(ctx context.Context, in UpdateAssetFieldInput) (*ExitRequest, error) {
	field, err := ParseAssetField(in.Field)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := UpdateAssetField(current, in.Actor, in.Index, field, in.Value, now)
		return next, err == nil, err
	})
}

// RemoveAsset は返却物を削除します。
func (s *Service) RemoveAsset(ctx context.Context, in RemoveAssetInput) (*ExitRequest, error) {
	return s.mutate(ctx, in.ID, in.Actor, in.ExpectedVersion, func(current *ExitRequest, now time.Time) (*ExitRequest, bool, error) {
		next, err := RemoveAsset(current, in.Actor, in.Index, now)
		return next, err == nil, err
	})
}

// UpdateClearance は1部門のクリアランスを更新します。
// 親集約は共有ロックで読むため、別部門の更新は並行して進められます。
// 親行は書き換えず、集約の UpdatedAt は最新のクリアランス更新時刻から導出します。
func (s *Service) UpdateClearance(ctx context.Context, in UpdateClearanceInput) (*ExitRequest, error) {
	id, err := normalizeID(in.ID)
	if err != nil {
		return nil, err
	}
	if err := validateActor(in.Actor); err != nil {
		return nil, err
	}
	state, err := ParseClearanceState(in.Status)
	if err != nil {
		return nil, err
	}

	var result *ExitRequest
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id, LockShared)
		if err != nil {
			return err
		}

		entry, err := ApplyClearance(current, in.Actor, in.Department, state, in.Remarks, s.clock.Now())
		if err != nil {
			return err
		}

		if err := s.repo.UpdateClearance(txCtx, current.ID, entry); err != nil {
			return err
		}

		idx, _ := current.Clearance(entry.Department)
		current.Clearances[idx] = entry
		current.UpdatedAt = *entry.UpdatedAt
		result = current
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// RemoveExit は状態に関わらず申請を物理削除します。人事・管理者のみ実行できます。
// 状態遷移ではなく、意図的な管理用の迂回路です。
func (s *Service) RemoveExit(ctx context.Context, in RemoveExitInput) error {
	id, err := normalizeID(in.ID)
	if err != nil {
		return err
	}
	if err := validateActor(in.Actor); err != nil {
		return err
	}
	if !in.Actor.hasRole(hrRoles) {
		return ErrForbidden
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetExit は申請を取得します。
func (s *Service) GetExit(ctx context.Context, in GetExitInput) (*ExitRequest, error) {
	id, err := normalizeID(in.ID)
	if err != nil {
		return nil, err
	}
	if err := validateActor(in.Actor); err != nil {
		return nil, err
	}

	var result *ExitRequest
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id, LockNone)
		if err != nil {
			return err
		}
		if !in.Actor.canView(found) {
			return ErrForbidden
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListExits は申請の一覧を取得します。employee ロールは自身の申請のみ参照できます。
func (s *Service) ListExits(ctx context.Context, in ListExitsInput) (*ListExitsResult, error) {
	if err := validateActor(in.Actor); err != nil {
		return nil, err
	}

	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	if in.Actor.Role == RoleEmployee {
		if employeeID != "" && employeeID != in.Actor.ID {
			return nil, ErrForbidden
		}
		employeeID = in.Actor.ID
	}

	var statusPtr *Status
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status := *in.Status
		statusPtr = &status
	}

	var (
		exits     []*ExitRequest
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListExitsFilter{
			EmployeeID: employeeID,
			Department: strings.TrimSpace(in.Department),
			Status:     statusPtr,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return err
		}
		exits = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListExitsResult{Exits: exits, NextPageToken: nextToken}, nil
}

type command func(current *ExitRequest, now time.Time) (next *ExitRequest, changed bool, err error)

// mutate は排他ロック下で集約を読み、コマンドを適用し、バージョン照合付きで書き込みます。
func (s *Service) mutate(ctx context.Context, rawID string, actor Actor, expectedVersion int64, cmd command) (*ExitRequest, error) {
	id, err := normalizeID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validateActor(actor); err != nil {
		return nil, err
	}

	var result *ExitRequest
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id, LockExclusive)
		if err != nil {
			return err
		}
		if expectedVersion > 0 && current.Version != expectedVersion {
			return fmt.Errorf("expected %d, found %d: %w", expectedVersion, current.Version, ErrVersionMismatch)
		}

		next, changed, err := cmd(current, s.clock.Now())
		if err != nil {
			return err
		}
		if !changed {
			result = current
			return nil
		}

		updated, err := s.repo.Update(txCtx, next, current.Version)
		if err != nil {
			return err
		}
		result = updated
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func normalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	return trimmed, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
