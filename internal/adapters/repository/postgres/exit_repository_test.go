package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var exitColumnNames = []string{
	"id", "employee_id", "employee_name", "department", "position", "proposed_last_working_day",
	"reason_for_leaving", "reason_details", "feedback", "suggestions", "declaration_accepted",
	"status", "approved_by_manager", "manager_approved_by", "manager_approved_at",
	"rejection_reason", "rejected_by", "rejected_at", "completed_by", "submitted_at", "completed_at",
	"version", "created_at", "updated_at",
}

func exitRowValues(id string, status exit.Status, version int64, now time.Time) []any {
	lwd := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []any{
		id, "emp-1", "Arun Kumar", "Engineering", "Engineer", lwd,
		string(exit.ReasonCareerGrowth), "", "", "", true,
		string(status), false, "", nil,
		"", "", nil, "", now, nil,
		version, now, now,
	}
}

func expectChildren(mock pgxmock.PgxPoolIface, ids []string, now time.Time) {
	mock.ExpectQuery(`FROM exit_assets`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"exit_id", "name", "category", "serial_number", "status", "remarks"}).
			AddRow(ids[0], "Laptop", "Hardware", "SN-1", "Pending", ""))
	mock.ExpectQuery(`FROM exit_clearances`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"exit_id", "department", "status", "remarks", "updated_by", "updated_at"}).
			AddRow(ids[0], "IT", "completed", "ok", "it-1", now).
			AddRow(ids[0], "Finance", "pending", "", "", nil))
}

func TestExitRepository_FindByID_LockModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lock  exit.LockMode
		query string
	}{
		{name: "none", lock: exit.LockNone, query: `WHERE e\.id = \$1\s*$`},
		{name: "shared", lock: exit.LockShared, query: `WHERE e\.id = \$1\s+FOR SHARE`},
		{name: "exclusive", lock: exit.LockExclusive, query: `WHERE e\.id = \$1\s+FOR UPDATE`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock pool: %v", err)
			}
			defer mock.Close()

			now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
			mock.ExpectQuery(tt.query).
				WithArgs("exit-1").
				WillReturnRows(pgxmock.NewRows(exitColumnNames).AddRow(exitRowValues("exit-1", exit.StatusSubmitted, 3, now)...))
			expectChildren(mock, []string{"exit-1"}, now)

			repo := NewExitRepository(mock)
			found, err := repo.FindByID(context.Background(), "exit-1", tt.lock)
			if err != nil {
				t.Fatalf("FindByID returned error: %v", err)
			}

			if found.Status != exit.StatusSubmitted || found.Version != 3 {
				t.Fatalf("unexpected aggregate: %+v", found)
			}
			if found.ProposedLastWorkingDay == nil || found.SubmittedAt == nil || found.CompletedAt != nil {
				t.Fatalf("unexpected dates: %+v", found)
			}
			if len(found.Assets) != 1 || found.Assets[0].Category != exit.AssetCategoryHardware {
				t.Fatalf("unexpected assets: %+v", found.Assets)
			}
			if len(found.Clearances) != 2 || found.Clearances[0].UpdatedAt == nil || found.Clearances[1].UpdatedAt != nil {
				t.Fatalf("unexpected clearances: %+v", found.Clearances)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestExitRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM exit_requests e`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(exitColumnNames))

	repo := NewExitRepository(mock)
	if _, err := repo.FindByID(context.Background(), "missing", exit.LockNone); !errors.Is(err, exit.ErrExitNotFound) {
		t.Fatalf("expected ErrExitNotFound, got %v", err)
	}
}

func TestExitRepository_FindByID_UpdatedAtFollowsClearances(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	id := "7b0c2f0e-3c55-4d1f-9a3e-0d6f1b2c3a40"
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cleared := created.Add(3 * time.Hour)

	mock.ExpectQuery(`FROM exit_requests e`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(exitColumnNames).AddRow(exitRowValues(id, exit.StatusSubmitted, 2, created)...))
	mock.ExpectQuery(`FROM exit_assets`).
		WithArgs([]string{id}).
		WillReturnRows(pgxmock.NewRows([]string{"exit_id", "name", "category", "serial_number", "status", "remarks"}))
	mock.ExpectQuery(`FROM exit_clearances`).
		WithArgs([]string{id}).
		WillReturnRows(pgxmock.NewRows([]string{"exit_id", "department", "status", "remarks", "updated_by", "updated_at"}).
			AddRow(id, "IT", "completed", "", "it-1", cleared).
			AddRow(id, "Finance", "pending", "", "", nil))

	repo := NewExitRepository(mock)
	found, err := repo.FindByID(context.Background(), id, exit.LockNone)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if !found.UpdatedAt.Equal(cleared) {
		t.Fatalf("expected UpdatedAt %v from latest clearance, got %v", cleared, found.UpdatedAt)
	}
	if found.Version != 2 {
		t.Fatalf("clearance updates must not change version, got %d", found.Version)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExitRepository_Update_VersionMismatch(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	req := &exit.ExitRequest{ID: "exit-1", Status: exit.StatusSubmitted, UpdatedAt: now}

	mock.ExpectQuery(`UPDATE exit_requests`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), string(exit.StatusSubmitted),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), now, "exit-1", int64(2)).
		WillReturnRows(pgxmock.NewRows(exitColumnNames))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("exit-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewExitRepository(mock)
	_, err = repo.Update(context.Background(), req, 2)
	if !errors.Is(err, exit.ErrVersionMismatch) || !errors.Is(err, exit.ErrConflict) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExitRepository_Update_ReplacesAssets(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	req := &exit.ExitRequest{
		ID:        "exit-1",
		Status:    exit.StatusDraft,
		Assets:    []exit.AssetItem{{Name: "Laptop", Category: exit.AssetCategoryHardware, Status: exit.AssetStatusPending}},
		UpdatedAt: now,
	}

	mock.ExpectQuery(`UPDATE exit_requests`).
		WillReturnRows(pgxmock.NewRows(exitColumnNames).AddRow(exitRowValues("exit-1", exit.StatusDraft, 2, now)...))
	mock.ExpectExec(`DELETE FROM exit_assets WHERE exit_id = \$1`).
		WithArgs("exit-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO exit_assets`).
		WithArgs("exit-1", 0, "Laptop", "Hardware", "", "Pending", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	expectChildren(mock, []string{"exit-1"}, now)

	repo := NewExitRepository(mock)
	updated, err := repo.Update(context.Background(), req, 1)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExitRepository_UpdateClearance_UnknownDepartment(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectExec(`UPDATE exit_clearances`).
		WithArgs("completed", "", "it-1", now, "exit-1", "Legal").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewExitRepository(mock)
	err = repo.UpdateClearance(context.Background(), "exit-1", exit.ClearanceStatus{
		Department: "Legal",
		Status:     exit.ClearanceCompleted,
		UpdatedBy:  "it-1",
		UpdatedAt:  &now,
	})
	if !errors.Is(err, exit.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestExitRepository_Delete(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM exit_requests WHERE id = \$1`).
		WithArgs("exit-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM exit_requests WHERE id = \$1`).
		WithArgs("exit-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewExitRepository(mock)
	if err := repo.Delete(context.Background(), "exit-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(context.Background(), "exit-1"); !errors.Is(err, exit.ErrExitNotFound) {
		t.Fatalf("expected ErrExitNotFound, got %v", err)
	}
}

func TestExitRepository_List_WithFilters(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	status := exit.StatusClearanceInProgress

	mock.ExpectQuery(`WHERE e\.employee_id = \$1 AND lower\(e\.department\) = lower\(\$2\) AND e\.status = \$3\s+ORDER BY e\.created_at DESC, e\.id DESC\s+LIMIT \$4\s+OFFSET \$5`).
		WithArgs("emp-1", "engineering", string(status), 3, 0).
		WillReturnRows(pgxmock.NewRows(exitColumnNames).
			AddRow(exitRowValues("exit-1", status, 1, now)...).
			AddRow(exitRowValues("exit-2", status, 1, now)...).
			AddRow(exitRowValues("exit-3", status, 1, now)...))
	mock.ExpectQuery(`FROM exit_assets`).
		WithArgs([]string{"exit-1", "exit-2"}).
		WillReturnRows(pgxmock.NewRows([]string{"exit_id", "name", "category", "serial_number", "status", "remarks"}))
	mock.ExpectQuery(`FROM exit_clearances`).
		WithArgs([]string{"exit-1", "exit-2"}).
		WillReturnRows(pgxmock.NewRows([]string{"exit_id", "department", "status", "remarks", "updated_by", "updated_at"}).
			AddRow("exit-2", "IT", "pending", "", "", nil))

	repo := NewExitRepository(mock)
	exits, nextToken, err := repo.List(context.Background(), exit.ListExitsFilter{
		EmployeeID: "emp-1",
		Department: "engineering",
		Status:     &status,
		Limit:      2,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(exits) != 2 || nextToken != "2" {
		t.Fatalf("expected 2 exits with next token 2, got %d %q", len(exits), nextToken)
	}
	if len(exits[0].Clearances) != 0 || len(exits[1].Clearances) != 1 {
		t.Fatalf("children were not attached to their parents: %+v", exits)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateExitPgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateExitPgError(&pgconn.PgError{Code: exitInvalidTextCode}), exit.ErrExitNotFound) {
		t.Fatalf("expected malformed id to map to ErrExitNotFound")
	}
	if !errors.Is(translateExitPgError(&pgconn.PgError{Code: exitUniqueViolationCode}), exit.ErrConflict) {
		t.Fatalf("expected unique violation to map to ErrConflict")
	}
	for _, code := range []string{exitLockNotAvailable, exitSerializationCode, exitDeadlockCode} {
		if !errors.Is(translateExitPgError(&pgconn.PgError{Code: code}), exit.ErrConflict) {
			t.Fatalf("expected %s to map to ErrConflict", code)
		}
	}
	checkErr := &pgconn.PgError{Code: exitCheckViolationCode, ConstraintName: "exit_clearances_status_check"}
	if !errors.Is(translateExitPgError(checkErr), exit.ErrInvalidClearanceState) {
		t.Fatalf("expected clearance check violation to map to ErrInvalidClearanceState")
	}

	other := errors.New("other")
	if translateExitPgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}
