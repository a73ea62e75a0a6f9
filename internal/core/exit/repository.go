package exit

import "context"

// LockMode は読み取り時の行ロック種別です。
type LockMode int

const (
	LockNone LockMode = iota
	// LockShared は他部門のクリアランス更新と共存し、最終承認とは排他になります。
	LockShared
	LockExclusive
)

// Repository は退職手続き集約の永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, req *ExitRequest) (*ExitRequest, error)
	FindByID(ctx context.Context, id string, lock LockMode) (*ExitRequest, error)
	List(ctx context.Context, filter ListExitsFilter) ([]*ExitRequest, string, error)
	// Update は永続化済みの Version が expectedVersion と一致する場合のみ書き込み、
	// Version を1つ進めます。一致しない場合は ErrVersionMismatch を返します。
	Update(ctx context.Context, req *ExitRequest, expectedVersion int64) (*ExitRequest, error)
	UpdateClearance(ctx context.Context, exitID string, entry ClearanceStatus) error
	Delete(ctx context.Context, id string) error
}

// ListExitsFilter は一覧取得用フィルタです。
type ListExitsFilter struct {
	EmployeeID string
	Department string
	Status     *Status
	Limit      int
	Offset     int
}
