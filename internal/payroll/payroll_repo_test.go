package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// payrollRepoTestDeps holds two separate connections: the gorm pool the
// repository was built on, and the connection the transaction runs on.
// Statements issued inside WithTx must land on the second one only.
type payrollRepoTestDeps struct {
	repo     payroll.Repository
	tx       *sql.Tx
	gormMock sqlmock.Sqlmock
	txMock   sqlmock.Sqlmock
}

func setupPayrollRepoTest(t *testing.T) payrollRepoTestDeps {
	t.Helper()

	gormConn, gormMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { gormConn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: gormConn}), &gorm.Config{})
	assert.NoError(t, err)

	txConn, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { txConn.Close() })

	txMock.ExpectBegin()
	tx, err := txConn.Begin()
	assert.NoError(t, err)

	return payrollRepoTestDeps{
		repo:     payroll.NewRepository(gdb).WithTx(tx),
		tx:       tx,
		gormMock: gormMock,
		txMock:   txMock,
	}
}

func TestRepositoryCreate_RunsOnTransaction(t *testing.T) {
	deps := setupPayrollRepoTest(t)

	deps.txMock.ExpectExec("INSERT INTO payrolls").
		WillReturnResult(sqlmock.NewResult(0, 1))
	deps.txMock.ExpectRollback()

	p := &payroll.Payroll{
		ID:            uuid.New(),
		PayrollNumber: "PAY-2024-000001",
		CompanyID:     uuid.New(),
		WorkerID:      uuid.New(),
		PeriodStart:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		GrossPay:      22000,
		Status:        payroll.StatusDraft,
		CreatedBy:     uuid.New(),
	}

	err := deps.repo.Create(context.Background(), p)
	assert.NoError(t, err)

	// a rollback must discard the insert, so the insert cannot have gone
	// through the gorm pool
	assert.NoError(t, deps.tx.Rollback())
	assert.NoError(t, deps.txMock.ExpectationsWereMet())
	assert.NoError(t, deps.gormMock.ExpectationsWereMet())
}

func TestRepositoryHasOverlappingPeriod_RunsOnTransaction(t *testing.T) {
	deps := setupPayrollRepoTest(t)

	deps.txMock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := deps.repo.HasOverlappingPeriod(
		context.Background(),
		uuid.NewString(), uuid.NewString(),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, deps.txMock.ExpectationsWereMet())
	assert.NoError(t, deps.gormMock.ExpectationsWereMet())
}
