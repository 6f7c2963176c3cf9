package compensation

import (
	"context"
	"database/sql"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type ConfigRepository interface {
	WithTx(tx *sql.Tx) ConfigRepository
	Create(ctx context.Context, c *DeductionConfig) error
	FindAllByCompany(ctx context.Context, companyID string) ([]DeductionConfig, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*DeductionConfig, error)
	Update(ctx context.Context, c *DeductionConfig) error
	Delete(ctx context.Context, companyID, id string) error
}

type configRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) WithTx(tx *sql.Tx) ConfigRepository {
	return &configRepository{db: r.db, tx: tx}
}

func (r *configRepository) Create(ctx context.Context, c *DeductionConfig) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *configRepository) FindAllByCompany(ctx context.Context, companyID string) ([]DeductionConfig, error) {
	var configs []DeductionConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("config_type ASC, target_name ASC").
		Find(&configs).Error
	return configs, err
}

func (r *configRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*DeductionConfig, error) {
	var c DeductionConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *configRepository) Update(ctx context.Context, c *DeductionConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *configRepository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&DeductionConfig{}, "id = ?", id).Error
}

type LoanRepository interface {
	WithTx(tx *sql.Tx) LoanRepository
	Create(ctx context.Context, l *Loan) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Loan, error)
	FindActiveByWorker(ctx context.Context, companyID, workerID string) ([]Loan, error)
	Update(ctx context.Context, l *Loan) error
	// ApplyInstallment atomically reduces the balance and settles the
	// loan when it reaches zero. Runs inside the payroll transaction.
	ApplyInstallment(ctx context.Context, loanID string, amount int64) error
}

type loanRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) WithTx(tx *sql.Tx) LoanRepository {
	return &loanRepository{db: r.db, tx: tx}
}

func (r *loanRepository) Create(ctx context.Context, l *Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loanRepository) FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Loan, error) {
	var l Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *loanRepository) FindActiveByWorker(ctx context.Context, companyID, workerID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("status = ?", LoanActive).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) Update(ctx context.Context, l *Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

const applyInstallmentQuery = `
	UPDATE worker_loans
	SET remaining_balance = GREATEST(remaining_balance - $1, 0),
	    status = CASE WHEN remaining_balance - $1 <= 0 THEN 'SETTLED' ELSE status END,
	    updated_at = now()
	WHERE id = $2 AND status = 'ACTIVE'
`

func (r *loanRepository) ApplyInstallment(ctx context.Context, loanID string, amount int64) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, applyInstallmentQuery, amount, loanID)
		return err
	}
	return r.db.WithContext(ctx).Exec(applyInstallmentQuery, amount, loanID).Error
}
