package timesheet_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/timesheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTimesheetRepoTest(t *testing.T) (timesheet.Repository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	assert.NoError(t, err)

	return timesheet.NewRepository(gdb), mock
}

// A week row that was soft-deleted must not block check-ins forever:
// the upsert revives it instead of silently doing nothing, so the
// row-locking read that follows finds a live row.
func TestEnsureWeek_RevivesSoftDeletedRow(t *testing.T) {
	repo, mock := setupTimesheetRepoTest(t)

	mock.ExpectExec(`ON CONFLICT \(company_id, worker_id, week_start_date\)\s+DO UPDATE SET deleted_at = NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	weekStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := repo.EnsureWeek(context.Background(), uuid.New(), uuid.New(), weekStart)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
