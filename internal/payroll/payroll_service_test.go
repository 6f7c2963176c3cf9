package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/compensation"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/worker"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn     func(ctx context.Context, p *payroll.Payroll) error
	findByIDFn   func(ctx context.Context, companyID, id string) (*payroll.Payroll, error)
	updateFn     func(ctx context.Context, p *payroll.Payroll) error
	hasOverlapFn func(ctx context.Context, companyID, workerID string, periodStart, periodEnd time.Time) (bool, error)
	createCalls  int
	deleteCalls  int
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }
func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}
func (f *fakePayrollRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payroll.Payroll, error) {
	return nil, nil
}
func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}
func (f *fakePayrollRepository) Delete(ctx context.Context, companyID, id string) error {
	f.deleteCalls++
	return nil
}
func (f *fakePayrollRepository) HasOverlappingPeriod(ctx context.Context, companyID, workerID string, periodStart, periodEnd time.Time) (bool, error) {
	if f.hasOverlapFn != nil {
		return f.hasOverlapFn(ctx, companyID, workerID, periodStart, periodEnd)
	}
	return false, nil
}

type fakeWorkerRepository struct {
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*worker.Worker, error)
}

func (f *fakeWorkerRepository) WithTx(tx *sql.Tx) worker.Repository { return f }
func (f *fakeWorkerRepository) Create(ctx context.Context, w *worker.Worker) error {
	return nil
}
func (f *fakeWorkerRepository) FindAllByCompany(ctx context.Context, companyID string) ([]worker.Worker, error) {
	return nil, nil
}
func (f *fakeWorkerRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*worker.Worker, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeWorkerRepository) FindByUserAndCompany(ctx context.Context, companyID, userID string) (*worker.Worker, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeWorkerRepository) Update(ctx context.Context, w *worker.Worker) error { return nil }
func (f *fakeWorkerRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

type fakeTimesheetRepository struct {
	findByRangeFn func(ctx context.Context, companyID, workerID string, from, to time.Time) ([]timesheet.WeeklyTimesheet, error)
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) timesheet.Repository { return f }
func (f *fakeTimesheetRepository) EnsureWeek(ctx context.Context, companyID, workerID uuid.UUID, weekStart time.Time) error {
	return nil
}
func (f *fakeTimesheetRepository) FindByWorkerAndWeek(ctx context.Context, companyID, workerID string, weekStart time.Time) (*timesheet.WeeklyTimesheet, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTimesheetRepository) FindByWorkerAndWeekForUpdate(ctx context.Context, companyID, workerID string, weekStart time.Time) (*timesheet.WeeklyTimesheet, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTimesheetRepository) UpdateEntries(ctx context.Context, t *timesheet.WeeklyTimesheet) error {
	return nil
}
func (f *fakeTimesheetRepository) FindByID(ctx context.Context, companyID, id string) (*timesheet.WeeklyTimesheet, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTimesheetRepository) FindByWorkerAndRange(ctx context.Context, companyID, workerID string, from, to time.Time) ([]timesheet.WeeklyTimesheet, error) {
	if f.findByRangeFn != nil {
		return f.findByRangeFn(ctx, companyID, workerID, from, to)
	}
	return nil, nil
}
func (f *fakeTimesheetRepository) FindAllByCompany(ctx context.Context, companyID string) ([]timesheet.WeeklyTimesheet, error) {
	return nil, nil
}
func (f *fakeTimesheetRepository) FindAllByCompanyAndWorker(ctx context.Context, companyID, workerID string) ([]timesheet.WeeklyTimesheet, error) {
	return nil, nil
}

type fakeConfigRepository struct {
	findAllFn func(ctx context.Context, companyID string) ([]compensation.DeductionConfig, error)
}

func (f *fakeConfigRepository) WithTx(tx *sql.Tx) compensation.ConfigRepository { return f }
func (f *fakeConfigRepository) Create(ctx context.Context, c *compensation.DeductionConfig) error {
	return nil
}
func (f *fakeConfigRepository) FindAllByCompany(ctx context.Context, companyID string) ([]compensation.DeductionConfig, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID)
	}
	return nil, nil
}
func (f *fakeConfigRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*compensation.DeductionConfig, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeConfigRepository) Update(ctx context.Context, c *compensation.DeductionConfig) error {
	return nil
}
func (f *fakeConfigRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

type fakeLoanRepository struct {
	findActiveFn     func(ctx context.Context, companyID, workerID string) ([]compensation.Loan, error)
	applyFn          func(ctx context.Context, loanID string, amount int64) error
	installmentCalls int
}

func (f *fakeLoanRepository) WithTx(tx *sql.Tx) compensation.LoanRepository          { return f }
func (f *fakeLoanRepository) Create(ctx context.Context, l *compensation.Loan) error { return nil }
func (f *fakeLoanRepository) FindAllByCompany(ctx context.Context, companyID string) ([]compensation.Loan, error) {
	return nil, nil
}
func (f *fakeLoanRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*compensation.Loan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLoanRepository) FindActiveByWorker(ctx context.Context, companyID, workerID string) ([]compensation.Loan, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, companyID, workerID)
	}
	return nil, nil
}
func (f *fakeLoanRepository) Update(ctx context.Context, l *compensation.Loan) error { return nil }
func (f *fakeLoanRepository) ApplyInstallment(ctx context.Context, loanID string, amount int64) error {
	f.installmentCalls++
	if f.applyFn != nil {
		return f.applyFn(ctx, loanID, amount)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	createFn    func(ctx context.Context, event kafka.OutboxEvent) error
	createCalls int
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, reason string) error {
	return nil
}

type fakeAuditLogger struct {
	entries []bootstrap.AuditLog
}

func (f *fakeAuditLogger) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.entries = append(f.entries, entry)
}

type payrollServiceDeps struct {
	db            *sql.DB
	sqlMock       sqlmock.Sqlmock
	service       payroll.Service
	repo          *fakePayrollRepository
	workerRepo    *fakeWorkerRepository
	timesheetRepo *fakeTimesheetRepository
	configRepo    *fakeConfigRepository
	loanRepo      *fakeLoanRepository
	outboxRepo    *fakeOutboxRepository
	audit         *fakeAuditLogger
}

func setupPayrollServiceTest(t *testing.T) payrollServiceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakePayrollRepository{}
	workerRepo := &fakeWorkerRepository{}
	timesheetRepo := &fakeTimesheetRepository{}
	configRepo := &fakeConfigRepository{}
	loanRepo := &fakeLoanRepository{}
	outboxRepo := &fakeOutboxRepository{}
	audit := &fakeAuditLogger{}

	svc := payroll.NewService(
		db,
		repo,
		workerRepo,
		timesheetRepo,
		configRepo,
		loanRepo,
		&fakeCounterRepository{},
		outboxRepo,
		audit,
		zap.NewNop(),
	)

	return payrollServiceDeps{
		db:            db,
		sqlMock:       mock,
		service:       svc,
		repo:          repo,
		workerRepo:    workerRepo,
		timesheetRepo: timesheetRepo,
		configRepo:    configRepo,
		loanRepo:      loanRepo,
		outboxRepo:    outboxRepo,
		audit:         audit,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestGenerate_HourlyWorkerFromTimesheets(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	companyID := uuid.New()
	actorID := uuid.NewString()
	w := &worker.Worker{
		ID:          uuid.New(),
		CompanyID:   companyID,
		PaymentType: worker.PaymentHourly,
		HourlyRate:  2000,
	}

	deps.workerRepo.findByIDAndCompanyFn = func(ctx context.Context, _, _ string) (*worker.Worker, error) {
		return w, nil
	}
	deps.timesheetRepo.findByRangeFn = func(ctx context.Context, _, _ string, from, to time.Time) ([]timesheet.WeeklyTimesheet, error) {
		return []timesheet.WeeklyTimesheet{
			{DailyEntries: timesheet.DailyEntries{
				{Date: "2024-02-05", NormalHours: 8, OT15Hours: 2, TotalHours: 10},
			}},
		}, nil
	}

	loanID := uuid.New()
	deps.loanRepo.findActiveFn = func(ctx context.Context, _, _ string) ([]compensation.Loan, error) {
		return []compensation.Loan{
			{ID: loanID, Installment: 5000, RemainingBalance: 3000},
		}, nil
	}
	deps.loanRepo.applyFn = func(ctx context.Context, gotID string, amount int64) error {
		assert.Equal(t, loanID.String(), gotID)
		assert.Equal(t, int64(3000), amount, "installment must be capped at the remaining balance")
		return nil
	}

	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		assert.Equal(t, "PAY-2024-000001", p.PayrollNumber)
		assert.Equal(t, payroll.StatusDraft, p.Status)
		// 8h * RM20 + 2h * RM20 * 1.5 = RM220.00 gross
		assert.Equal(t, int64(22000), p.GrossPay)
		assert.Equal(t, "default", p.DeductionConfigType)
		assert.Equal(t, "Platform Default", p.DeductionConfigSource)
		assert.Equal(t, int64(3000), p.LoanDeductions)
		assert.Equal(t, p.GrossPay-p.TotalDeductions, p.NetPay)
		return nil
	}

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Generate(context.Background(), companyID.String(), actorID, payroll.GenerateRequest{
		WorkerID:    w.ID.String(),
		PeriodStart: "2024-02-01",
		PeriodEnd:   "2024-02-14",
	})

	assert.NoError(t, err)
	assert.Equal(t, "PAY-2024-000001", resp.PayrollNumber)
	assert.Equal(t, payroll.StatusDraft, resp.Status)
	assert.Equal(t, 1, deps.repo.createCalls)
	assert.Equal(t, 1, deps.loanRepo.installmentCalls)
	assert.Equal(t, 1, deps.outboxRepo.createCalls)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGenerate_MonthlyWorkerSkipsTimesheets(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	companyID := uuid.New()
	w := &worker.Worker{
		ID:            uuid.New(),
		CompanyID:     companyID,
		PaymentType:   worker.PaymentMonthlySalary,
		MonthlySalary: 350000,
		Allowance:     20000,
	}

	deps.workerRepo.findByIDAndCompanyFn = func(ctx context.Context, _, _ string) (*worker.Worker, error) {
		return w, nil
	}
	deps.timesheetRepo.findByRangeFn = func(ctx context.Context, _, _ string, from, to time.Time) ([]timesheet.WeeklyTimesheet, error) {
		t.Error("monthly workers must not read timesheets")
		return nil, nil
	}
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		assert.Equal(t, int64(370000), p.GrossPay)
		assert.Equal(t, 0.0, p.NormalHours)
		return nil
	}

	expectTx(t, deps.sqlMock, true)

	_, err := deps.service.Generate(context.Background(), companyID.String(), uuid.NewString(), payroll.GenerateRequest{
		WorkerID:    w.ID.String(),
		PeriodStart: "2024-02-01",
		PeriodEnd:   "2024-02-29",
	})

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGenerate_InvalidPeriodRejected(t *testing.T) {
	deps := setupPayrollServiceTest(t)

	_, err := deps.service.Generate(context.Background(), uuid.NewString(), uuid.NewString(), payroll.GenerateRequest{
		WorkerID:    uuid.NewString(),
		PeriodStart: "2024-02-14",
		PeriodEnd:   "2024-02-01",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	assert.Equal(t, 0, deps.repo.createCalls)
}

func TestGenerate_OverlappingPeriodConflicts(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	companyID := uuid.New()
	w := &worker.Worker{
		ID:            uuid.New(),
		CompanyID:     companyID,
		PaymentType:   worker.PaymentMonthlySalary,
		MonthlySalary: 350000,
	}

	deps.workerRepo.findByIDAndCompanyFn = func(ctx context.Context, _, _ string) (*worker.Worker, error) {
		return w, nil
	}
	deps.repo.hasOverlapFn = func(ctx context.Context, _, _ string, _, _ time.Time) (bool, error) {
		return true, nil
	}

	expectTx(t, deps.sqlMock, false)

	_, err := deps.service.Generate(context.Background(), companyID.String(), uuid.NewString(), payroll.GenerateRequest{
		WorkerID:    w.ID.String(),
		PeriodStart: "2024-02-01",
		PeriodEnd:   "2024-02-29",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrOverlappingPeriod)
	assert.Equal(t, 0, deps.repo.createCalls)
	assert.Equal(t, 0, deps.outboxRepo.createCalls)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestApprove_DraftOnly(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	companyID := uuid.NewString()
	id := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, _, _ string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusPaid}, nil
	}

	_, err := deps.service.Approve(context.Background(), companyID, uuid.NewString(), id.String())
	assert.ErrorIs(t, err, payrollerrors.ErrNotDraft)
	assert.Empty(t, deps.audit.entries)
}

func TestApprove_SetsApproverAndAudits(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	companyID := uuid.NewString()
	actorID := uuid.New()
	id := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, _, _ string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
	}
	deps.repo.updateFn = func(ctx context.Context, p *payroll.Payroll) error {
		assert.Equal(t, payroll.StatusApproved, p.Status)
		if assert.NotNil(t, p.ApprovedBy) {
			assert.Equal(t, actorID, *p.ApprovedBy)
		}
		assert.NotNil(t, p.ApprovedAt)
		return nil
	}

	resp, err := deps.service.Approve(context.Background(), companyID, actorID.String(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, resp.Status)
	if assert.Len(t, deps.audit.entries, 1) {
		assert.Equal(t, "payroll.approve", deps.audit.entries[0].Action)
	}
}

func TestMarkAsPaid_RequiresApproved(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	id := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, _, _ string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
	}

	_, err := deps.service.MarkAsPaid(context.Background(), uuid.NewString(), uuid.NewString(), id.String())
	assert.ErrorIs(t, err, payrollerrors.ErrNotApproved)
}

func TestDelete_DraftOnly(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	id := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, _, _ string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusApproved}, nil
	}
	err := deps.service.Delete(context.Background(), uuid.NewString(), id.String())
	assert.ErrorIs(t, err, payrollerrors.ErrNotDraft)
	assert.Equal(t, 0, deps.repo.deleteCalls)

	deps.repo.findByIDFn = func(ctx context.Context, _, _ string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
	}
	err = deps.service.Delete(context.Background(), uuid.NewString(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, 1, deps.repo.deleteCalls)
}

func TestGetByID_NotFound(t *testing.T) {
	deps := setupPayrollServiceTest(t)

	_, err := deps.service.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}
