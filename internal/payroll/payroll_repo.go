package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error)
	Update(ctx context.Context, p *Payroll) error
	Delete(ctx context.Context, companyID string, id string) error
	HasOverlappingPeriod(ctx context.Context, companyID, workerID string, periodStart, periodEnd time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

const insertQuery = `
	INSERT INTO payrolls (
		id, payroll_number, company_id, worker_id, period_start, period_end,
		normal_hours, ot_1_5_hours, ot_2_0_hours, gross_pay,
		epf_employee, epf_employer, socso_employee, socso_employer,
		eis_employee, eis_employer,
		custom_deductions, loan_deductions, other_deductions,
		total_deductions, net_pay,
		deduction_config_type, deduction_config_source,
		status, created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14,
		$15, $16,
		$17, $18, $19,
		$20, $21,
		$22, $23,
		$24, $25, now(), now()
	)`

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Omit("Worker").Create(p).Error
	}

	// Raw SQL through the transaction so the insert rolls back together
	// with the loan decrements and the outbox row; a gorm call here would
	// commit on its own connection.
	_, err := r.tx.ExecContext(ctx, insertQuery,
		p.ID, p.PayrollNumber, p.CompanyID, p.WorkerID,
		p.PeriodStart.Format("2006-01-02"), p.PeriodEnd.Format("2006-01-02"),
		p.NormalHours, p.OT15Hours, p.OT20Hours, p.GrossPay,
		p.EPFEmployee, p.EPFEmployer, p.SOCSOEmployee, p.SOCSOEmployer,
		p.EISEmployee, p.EISEmployer,
		p.CustomDeductions, p.LoanDeductions, p.OtherDeductions,
		p.TotalDeductions, p.NetPay,
		p.DeductionConfigType, p.DeductionConfigSource,
		p.Status, p.CreatedBy,
	)
	return err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Scopes(tenant.Scope(companyID)).
		Order("period_start DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Omit("Worker").Save(p).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Payroll{}, "id = ?", id).Error
}

const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM payrolls
		WHERE company_id = $1 AND worker_id = $2
		  AND deleted_at IS NULL
		  AND NOT (period_end < $3 OR period_start > $4)
	)`

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	companyID, workerID string,
	periodStart, periodEnd time.Time,
) (bool, error) {
	if r.tx == nil {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&Payroll{}).
			Scopes(tenant.Scope(companyID)).
			Where("worker_id = ?", workerID).
			Where("NOT (period_end < ? OR period_start > ?)", periodStart, periodEnd).
			Count(&count).Error
		return count > 0, err
	}

	// The guard must observe the same transaction the insert runs in.
	var exists bool
	err := r.tx.QueryRowContext(ctx, overlapQuery,
		companyID, workerID,
		periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"),
	).Scan(&exists)
	return exists, err
}
