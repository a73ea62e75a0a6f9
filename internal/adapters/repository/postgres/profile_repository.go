package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/exit-formality/internal/core/profile"
	pgdb "github.com/ogurasousui/exit-formality/internal/platform/db/postgres"
)

// ProfileRepository は社員マスタ(employee_profiles)を参照する実装です。
type ProfileRepository struct {
	pool pgdb.Queryer
}

// NewProfileRepository は ProfileRepository を生成します。
func NewProfileRepository(pool pgdb.Queryer) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// FindByEmployeeID は社員 ID で社員情報を取得します。
func (r *ProfileRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*profile.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT employee_id, name, gender, date_of_joining, department, position, address, updated_at
          FROM employee_profiles
         WHERE employee_id = $1
         LIMIT 1
    `, employeeID)

	found, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, err
	}
	return found, nil
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		p       profile.Profile
		gender  string
		joining sql.NullTime
	)
	if err := row.Scan(&p.EmployeeID, &p.Name, &gender, &joining, &p.Department, &p.Position, &p.Address, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Gender = profile.Gender(gender)
	if joining.Valid {
		t := joining.Time.UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		p.DateOfJoining = &date
	}
	return &p, nil
}
