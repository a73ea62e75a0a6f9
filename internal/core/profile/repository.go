package profile

import "context"

// Repository は社員情報参照の抽象です。
type Repository interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*Profile, error)
}
