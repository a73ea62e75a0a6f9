package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	pgdb "github.com/ogurasousui/exit-formality/internal/platform/db/postgres"
)

const (
	exitUniqueViolationCode = "23505"
	exitCheckViolationCode  = "23514"
	exitInvalidTextCode     = "22P02"
	exitLockNotAvailable    = "55P03"
	exitSerializationCode   = "40001"
	exitDeadlockCode        = "40P01"
)

const exitColumns = `
               e.id::text,
               e.employee_id,
               e.employee_name,
               e.department,
               e.position,
               e.proposed_last_working_day,
               e.reason_for_leaving,
               e.reason_details,
               e.feedback,
               e.suggestions,
               e.declaration_accepted,
               e.status,
               e.approved_by_manager,
               e.manager_approved_by,
               e.manager_approved_at,
               e.rejection_reason,
               e.rejected_by,
               e.rejected_at,
               e.completed_by,
               e.submitted_at,
               e.completed_at,
               e.version,
               e.created_at,
               e.updated_at`

// ExitRepository は PostgreSQL を利用した退職手続きの永続化実装です。
// 返却物とクリアランスは子テーブルに保持し、集約単位で読み書きします。
type ExitRepository struct {
	pool pgdb.Queryer
}

// NewExitRepository は ExitRepository を生成します。
func NewExitRepository(pool pgdb.Queryer) *ExitRepository {
	return &ExitRepository{pool: pool}
}

// Create は申請を作成します。Version は 1 から始まります。
func (r *ExitRepository) Create(ctx context.Context, req *exit.ExitRequest) (*exit.ExitRequest, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := exec.QueryRow(ctx, `
        WITH e AS (
            INSERT INTO exit_requests (
                id, employee_id, employee_name, department, position, proposed_last_working_day,
                reason_for_leaving, reason_details, feedback, suggestions, declaration_accepted,
                status, approved_by_manager, manager_approved_by, manager_approved_at,
                rejection_reason, rejected_by, rejected_at, completed_by, submitted_at, completed_at,
                version, created_at, updated_at
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, 1, $22, $23)
            RETURNING *
        )
        SELECT`+exitColumns+`
          FROM e
    `,
		id,
		req.EmployeeID,
		req.EmployeeName,
		req.Department,
		req.Position,
		nullableTime(req.ProposedLastWorkingDay),
		string(req.ReasonForLeaving),
		req.ReasonDetails,
		req.Feedback,
		req.Suggestions,
		req.DeclarationAccepted,
		string(req.Status),
		req.ApprovedByManager,
		req.ManagerApprovedBy,
		nullableTimestamp(req.ManagerApprovedAt),
		req.RejectionReason,
		req.RejectedBy,
		nullableTimestamp(req.RejectedAt),
		req.CompletedBy,
		nullableTimestamp(req.SubmittedAt),
		nullableTimestamp(req.CompletedAt),
		req.CreatedAt,
		req.UpdatedAt,
	)

	created, err := scanExitRequest(row)
	if err != nil {
		return nil, translateExitPgError(err)
	}

	if err := insertAssets(ctx, exec, created.ID, req.Assets); err != nil {
		return nil, err
	}
	for i, c := range req.Clearances {
		if _, err := exec.Exec(ctx, `
            INSERT INTO exit_clearances (exit_id, ordinal, department, status, remarks, updated_by, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `, created.ID, i, c.Department, string(c.Status), c.Remarks, c.UpdatedBy, nullableTimestamp(c.UpdatedAt)); err != nil {
			return nil, translateExitPgError(err)
		}
	}

	created.Assets = append([]exit.AssetItem(nil), req.Assets...)
	created.Clearances = append([]exit.ClearanceStatus(nil), req.Clearances...)
	return created, nil
}

// FindByID は ID で申請を取得します。lock に応じて親行に FOR UPDATE / FOR SHARE を付与します。
func (r *ExitRepository) FindByID(ctx context.Context, id string, lock exit.LockMode) (*exit.ExitRequest, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	query := `
        SELECT` + exitColumns + `
          FROM exit_requests e
         WHERE e.id = $1` + lockClause(lock)

	found, err := scanExitRequest(exec.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateExitPgError(err)
	}

	if err := loadChildren(ctx, exec, []*exit.ExitRequest{found}); err != nil {
		return nil, err
	}
	return found, nil
}

// List は申請の一覧を作成日時の降順で取得します。
func (r *ExitRepository) List(ctx context.Context, filter exit.ListExitsFilter) ([]*exit.ExitRequest, string, error) {
	if filter.Limit <= 0 {
		return nil, "", exit.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", exit.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 5)
	conditions := make([]string, 0, 3)

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, "e.employee_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, "lower(e.department) = lower($"+strconv.Itoa(len(args))+")")
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "e.status = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT` + exitColumns + `
          FROM exit_requests e` + whereClause + `
         ORDER BY e.created_at DESC, e.id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateExitPgError(err)
	}

	exits := make([]*exit.ExitRequest, 0, filter.Limit)
	for rows.Next() {
		req, err := scanExitRequest(rows)
		if err != nil {
			rows.Close()
			return nil, "", translateExitPgError(err)
		}
		exits = append(exits, req)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, "", translateExitPgError(err)
	}

	var nextToken string
	if len(exits) == limitWithBuffer {
		exits = exits[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	if err := loadChildren(ctx, exec, exits); err != nil {
		return nil, "", err
	}
	return exits, nextToken, nil
}

// Update は Version が expectedVersion と一致する場合のみ親行を更新し、返却物を置き換えます。
// クリアランスは UpdateClearance でのみ書き換えるため、ここでは読み直すだけです。
func (r *ExitRepository) Update(ctx context.Context, req *exit.ExitRequest, expectedVersion int64) (*exit.ExitRequest, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH e AS (
            UPDATE exit_requests
               SET employee_name = $1,
                   department = $2,
                   position = $3,
                   proposed_last_working_day = $4,
                   reason_for_leaving = $5,
                   reason_details = $6,
                   feedback = $7,
                   suggestions = $8,
                   declaration_accepted = $9,
                   status = $10,
                   approved_by_manager = $11,
                   manager_approved_by = $12,
                   manager_approved_at = $13,
                   rejection_reason = $14,
                   rejected_by = $15,
                   rejected_at = $16,
                   completed_by = $17,
                   submitted_at = $18,
                   completed_at = $19,
                   updated_at = $20,
                   version = version + 1
             WHERE id = $21 AND version = $22
            RETURNING *
        )
        SELECT`+exitColumns+`
          FROM e
    `,
		req.EmployeeName,
		req.Department,
		req.Position,
		nullableTime(req.ProposedLastWorkingDay),
		string(req.ReasonForLeaving),
		req.ReasonDetails,
		req.Feedback,
		req.Suggestions,
		req.DeclarationAccepted,
		string(req.Status),
		req.ApprovedByManager,
		req.ManagerApprovedBy,
		nullableTimestamp(req.ManagerApprovedAt),
		req.RejectionReason,
		req.RejectedBy,
		nullableTimestamp(req.RejectedAt),
		req.CompletedBy,
		nullableTimestamp(req.SubmittedAt),
		nullableTimestamp(req.CompletedAt),
		req.UpdatedAt,
		req.ID,
		expectedVersion,
	)

	updated, err := scanExitRequest(row)
	if err != nil {
		if errors.Is(err, exit.ErrExitNotFound) {
			return nil, r.missOrConflict(ctx, exec, req.ID)
		}
		return nil, translateExitPgError(err)
	}

	if _, err := exec.Exec(ctx, `DELETE FROM exit_assets WHERE exit_id = $1`, updated.ID); err != nil {
		return nil, translateExitPgError(err)
	}
	if err := insertAssets(ctx, exec, updated.ID, req.Assets); err != nil {
		return nil, err
	}

	if err := loadChildren(ctx, exec, []*exit.ExitRequest{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// missOrConflict は条件付き更新が0件だった理由を判別します。
func (r *ExitRepository) missOrConflict(ctx context.Context, exec pgdb.Queryer, id string) error {
	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM exit_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return translateExitPgError(err)
	}
	if !exists {
		return exit.ErrExitNotFound
	}
	return exit.ErrVersionMismatch
}

// UpdateClearance は1部門分のクリアランス行のみを更新します。
// 親行は呼び出し側が FOR SHARE で保持しているため書き換えません。
func (r *ExitRepository) UpdateClearance(ctx context.Context, exitID string, entry exit.ClearanceStatus) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE exit_clearances
           SET status = $1,
               remarks = $2,
               updated_by = $3,
               updated_at = $4
         WHERE exit_id = $5 AND lower(department) = lower($6)
    `, string(entry.Status), entry.Remarks, entry.UpdatedBy, nullableTimestamp(entry.UpdatedAt), exitID, entry.Department)
	if err != nil {
		return translateExitPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrDepartmentNotFound
	}
	return nil
}

// Delete は申請を削除します。子テーブルは外部キーの ON DELETE CASCADE で削除されます。
func (r *ExitRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM exit_requests WHERE id = $1`, id)
	if err != nil {
		return translateExitPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrExitNotFound
	}
	return nil
}

func lockClause(lock exit.LockMode) string {
	switch lock {
	case exit.LockExclusive:
		return "\n           FOR UPDATE"
	case exit.LockShared:
		return "\n           FOR SHARE"
	default:
		return ""
	}
}

func insertAssets(ctx context.Context, exec pgdb.Queryer, exitID string, assets []exit.AssetItem) error {
	for i, a := range assets {
		if _, err := exec.Exec(ctx, `
            INSERT INTO exit_assets (exit_id, ordinal, name, category, serial_number, status, remarks)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `, exitID, i, a.Name, string(a.Category), a.SerialNumber, string(a.Status), a.Remarks); err != nil {
			return translateExitPgError(err)
		}
	}
	return nil
}

// loadChildren は複数の申請の返却物とクリアランスをまとめて読み込みます。
func loadChildren(ctx context.Context, exec pgdb.Queryer, exits []*exit.ExitRequest) error {
	if len(exits) == 0 {
		return nil
	}

	byID := make(map[string]*exit.ExitRequest, len(exits))
	ids := make([]string, 0, len(exits))
	for _, e := range exits {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}

	assetRows, err := exec.Query(ctx, `
        SELECT exit_id::text, name, category, serial_number, status, remarks
          FROM exit_assets
         WHERE exit_id = ANY($1::text[]::uuid[])
         ORDER BY exit_id, ordinal
    `, ids)
	if err != nil {
		return translateExitPgError(err)
	}
	for assetRows.Next() {
		var (
			exitID   string
			item     exit.AssetItem
			category string
			status   string
		)
		if err := assetRows.Scan(&exitID, &item.Name, &category, &item.SerialNumber, &status, &item.Remarks); err != nil {
			assetRows.Close()
			return translateExitPgError(err)
		}
		item.Category = exit.AssetCategory(category)
		item.Status = exit.AssetStatus(status)
		if parent, ok := byID[exitID]; ok {
			parent.Assets = append(parent.Assets, item)
		}
	}
	assetRows.Close()
	if err := assetRows.Err(); err != nil {
		return translateExitPgError(err)
	}

	clearanceRows, err := exec.Query(ctx, `
        SELECT exit_id::text, department, status, remarks, updated_by, updated_at
          FROM exit_clearances
         WHERE exit_id = ANY($1::text[]::uuid[])
         ORDER BY exit_id, ordinal
    `, ids)
	if err != nil {
		return translateExitPgError(err)
	}
	defer clearanceRows.Close()
	for clearanceRows.Next() {
		var (
			exitID    string
			entry     exit.ClearanceStatus
			status    string
			updatedAt sql.NullTime
		)
		if err := clearanceRows.Scan(&exitID, &entry.Department, &status, &entry.Remarks, &entry.UpdatedBy, &updatedAt); err != nil {
			return translateExitPgError(err)
		}
		entry.Status = exit.ClearanceState(status)
		entry.UpdatedAt = timestampPtr(updatedAt)
		if parent, ok := byID[exitID]; ok {
			parent.Clearances = append(parent.Clearances, entry)
			// クリアランス更新は親行を書き換えないため、最終更新時刻はここで合成する
			if entry.UpdatedAt != nil && entry.UpdatedAt.After(parent.UpdatedAt) {
				parent.UpdatedAt = *entry.UpdatedAt
			}
		}
	}
	if err := clearanceRows.Err(); err != nil {
		return translateExitPgError(err)
	}
	return nil
}

func scanExitRequest(row pgx.Row) (*exit.ExitRequest, error) {
	var (
		req               exit.ExitRequest
		lastWorkingDay    sql.NullTime
		reason            string
		status            string
		managerApprovedAt sql.NullTime
		rejectedAt        sql.NullTime
		submittedAt       sql.NullTime
		completedAt       sql.NullTime
	)

	if err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.EmployeeName,
		&req.Department,
		&req.Position,
		&lastWorkingDay,
		&reason,
		&req.ReasonDetails,
		&req.Feedback,
		&req.Suggestions,
		&req.DeclarationAccepted,
		&status,
		&req.ApprovedByManager,
		&req.ManagerApprovedBy,
		&managerApprovedAt,
		&req.RejectionReason,
		&req.RejectedBy,
		&rejectedAt,
		&req.CompletedBy,
		&submittedAt,
		&completedAt,
		&req.Version,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, exit.ErrExitNotFound
		}
		return nil, err
	}

	if lastWorkingDay.Valid {
		t := lastWorkingDay.Time.UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		req.ProposedLastWorkingDay = &date
	}
	req.ReasonForLeaving = exit.Reason(reason)
	req.Status = exit.Status(status)
	req.ManagerApprovedAt = timestampPtr(managerApprovedAt)
	req.RejectedAt = timestampPtr(rejectedAt)
	req.SubmittedAt = timestampPtr(submittedAt)
	req.CompletedAt = timestampPtr(completedAt)
	return &req, nil
}

func translateExitPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return exit.ErrExitNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case exitInvalidTextCode:
			return exit.ErrExitNotFound
		case exitUniqueViolationCode:
			return exit.ErrConflict
		// 行ロック待ちの打ち切りは並行更新による競合として返す
		case exitLockNotAvailable, exitSerializationCode, exitDeadlockCode:
			return fmt.Errorf("%w: %s", exit.ErrConflict, pgErr.Code)
		case exitCheckViolationCode:
			switch pgErr.ConstraintName {
			case "exit_requests_status_check":
				return exit.ErrInvalidStatus
			case "exit_clearances_status_check":
				return exit.ErrInvalidClearanceState
			default:
				return exit.ErrValidation
			}
		}
	}

	return err
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func nullableTimestamp(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC()
}

func timestampPtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}
