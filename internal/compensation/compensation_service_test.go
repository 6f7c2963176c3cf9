package compensation_test

import (
	"context"
	"database/sql"
	"testing"

	"go-payroll/internal/compensation"
	compensationerrors "go-payroll/internal/compensation/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeConfigRepository struct {
	createFn   func(ctx context.Context, c *compensation.DeductionConfig) error
	findByIDFn func(ctx context.Context, companyID, id string) (*compensation.DeductionConfig, error)
	updateFn   func(ctx context.Context, c *compensation.DeductionConfig) error
}

func (f *fakeConfigRepository) WithTx(tx *sql.Tx) compensation.ConfigRepository { return f }
func (f *fakeConfigRepository) Create(ctx context.Context, c *compensation.DeductionConfig) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}
func (f *fakeConfigRepository) FindAllByCompany(ctx context.Context, companyID string) ([]compensation.DeductionConfig, error) {
	return nil, nil
}
func (f *fakeConfigRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*compensation.DeductionConfig, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeConfigRepository) Update(ctx context.Context, c *compensation.DeductionConfig) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}
func (f *fakeConfigRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

type fakeLoanRepository struct {
	createFn   func(ctx context.Context, l *compensation.Loan) error
	findByIDFn func(ctx context.Context, companyID, id string) (*compensation.Loan, error)
	updateFn   func(ctx context.Context, l *compensation.Loan) error
}

func (f *fakeLoanRepository) WithTx(tx *sql.Tx) compensation.LoanRepository { return f }
func (f *fakeLoanRepository) Create(ctx context.Context, l *compensation.Loan) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}
func (f *fakeLoanRepository) FindAllByCompany(ctx context.Context, companyID string) ([]compensation.Loan, error) {
	return nil, nil
}
func (f *fakeLoanRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*compensation.Loan, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLoanRepository) FindActiveByWorker(ctx context.Context, companyID, workerID string) ([]compensation.Loan, error) {
	return nil, nil
}
func (f *fakeLoanRepository) Update(ctx context.Context, l *compensation.Loan) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}
func (f *fakeLoanRepository) ApplyInstallment(ctx context.Context, loanID string, amount int64) error {
	return nil
}

func setupCompensationServiceTest(t *testing.T) (compensation.Service, *fakeConfigRepository, *fakeLoanRepository) {
	t.Helper()
	configRepo := &fakeConfigRepository{}
	loanRepo := &fakeLoanRepository{}
	return compensation.NewService(nil, configRepo, loanRepo), configRepo, loanRepo
}

func TestCreateConfig_InvalidTypeRejected(t *testing.T) {
	svc, _, _ := setupCompensationServiceTest(t)

	_, err := svc.CreateConfig(context.Background(), uuid.NewString(), compensation.CreateConfigRequest{
		ConfigType: "department",
		TargetID:   uuid.NewString(),
	})

	assert.ErrorIs(t, err, compensationerrors.ErrInvalidConfigType)
}

func TestCreateConfig_DuplicateTargetConflicts(t *testing.T) {
	svc, configRepo, _ := setupCompensationServiceTest(t)
	configRepo.createFn = func(ctx context.Context, c *compensation.DeductionConfig) error {
		return &pgconn.PgError{Code: "23505"}
	}

	_, err := svc.CreateConfig(context.Background(), uuid.NewString(), compensation.CreateConfigRequest{
		ConfigType: compensation.TypeGroup,
		TargetID:   uuid.NewString(),
		TargetName: "Night Shift",
	})

	assert.ErrorIs(t, err, compensationerrors.ErrDuplicateConfig)
}

func TestCreateConfig_PersistsRatesAndCustomDeductions(t *testing.T) {
	svc, configRepo, _ := setupCompensationServiceTest(t)
	targetID := uuid.New()

	configRepo.createFn = func(ctx context.Context, c *compensation.DeductionConfig) error {
		assert.Equal(t, compensation.TypeBand, c.ConfigType)
		assert.Equal(t, targetID, c.TargetID)
		assert.True(t, c.EPFEnabled)
		assert.Equal(t, int64(900), c.EPFEmployeeRateBps)
		if assert.Len(t, c.CustomDeductions, 1) {
			assert.Equal(t, compensation.DeductionFixed, c.CustomDeductions[0].Type)
		}
		return nil
	}

	resp, err := svc.CreateConfig(context.Background(), uuid.NewString(), compensation.CreateConfigRequest{
		ConfigType: compensation.TypeBand,
		TargetID:   targetID.String(),
		TargetName: "Senior Band",
		EPF:        compensation.StatutoryRatesPayload{Enabled: true, EmployeeBps: 900, EmployerBps: 1200},
		CustomDeductions: []compensation.CustomDeductionPayload{
			{Name: "Uniform", Type: compensation.DeductionFixed, Amount: 1500},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Senior Band", resp.TargetName)
	assert.Equal(t, int64(900), resp.EPF.EmployeeBps)
}

func TestUpdateConfig_PatchesOnlyProvidedSections(t *testing.T) {
	svc, configRepo, _ := setupCompensationServiceTest(t)
	existing := &compensation.DeductionConfig{
		ID:                   uuid.New(),
		ConfigType:           compensation.TypeGroup,
		TargetID:             uuid.New(),
		TargetName:           "Night Shift",
		EPFEnabled:           true,
		EPFEmployeeRateBps:   1100,
		SOCSOEnabled:         true,
		SOCSOEmployeeRateBps: 50,
	}

	configRepo.findByIDFn = func(ctx context.Context, _, _ string) (*compensation.DeductionConfig, error) {
		return existing, nil
	}

	resp, err := svc.UpdateConfig(context.Background(), uuid.NewString(), existing.ID.String(), compensation.UpdateConfigRequest{
		EPF: &compensation.StatutoryRatesPayload{Enabled: true, EmployeeBps: 900, EmployerBps: 1300},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(900), resp.EPF.EmployeeBps)
	// untouched section survives the patch
	assert.Equal(t, int64(50), resp.SOCSO.EmployeeBps)
	assert.True(t, resp.SOCSO.Enabled)
}

func TestCreateLoan_StartsWithFullBalance(t *testing.T) {
	svc, _, loanRepo := setupCompensationServiceTest(t)

	loanRepo.createFn = func(ctx context.Context, l *compensation.Loan) error {
		assert.Equal(t, l.Principal, l.RemainingBalance)
		assert.Equal(t, compensation.LoanActive, l.Status)
		return nil
	}

	resp, err := svc.CreateLoan(context.Background(), uuid.NewString(), compensation.CreateLoanRequest{
		WorkerID:    uuid.NewString(),
		Name:        "Motorbike advance",
		Principal:   120000,
		Installment: 10000,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(120000), resp.RemainingBalance)
	assert.Equal(t, compensation.LoanActive, resp.Status)
}

func TestSettleLoan_ZeroesBalance(t *testing.T) {
	svc, _, loanRepo := setupCompensationServiceTest(t)
	id := uuid.New()

	loanRepo.findByIDFn = func(ctx context.Context, _, _ string) (*compensation.Loan, error) {
		return &compensation.Loan{ID: id, RemainingBalance: 4000, Status: compensation.LoanActive}, nil
	}

	resp, err := svc.SettleLoan(context.Background(), uuid.NewString(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.RemainingBalance)
	assert.Equal(t, compensation.LoanSettled, resp.Status)
}

func TestSettleLoan_AlreadySettled(t *testing.T) {
	svc, _, loanRepo := setupCompensationServiceTest(t)
	id := uuid.New()

	loanRepo.findByIDFn = func(ctx context.Context, _, _ string) (*compensation.Loan, error) {
		return &compensation.Loan{ID: id, Status: compensation.LoanSettled}, nil
	}

	_, err := svc.SettleLoan(context.Background(), uuid.NewString(), id.String())
	assert.ErrorIs(t, err, compensationerrors.ErrLoanSettled)
}
