package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

// Payroll is one worker's pay for one period. Amounts are cents; the
// employer-side statutory columns are tracked for cost reporting but are
// never part of the net-pay subtraction.
type Payroll struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollNumber string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_payroll_company_status"`
	WorkerID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_payroll_worker_period,unique"`
	Worker        *WorkerRef `gorm:"foreignKey:WorkerID;references:ID"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_payroll_worker_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_payroll_worker_period,unique"`

	// Hour buckets the gross was derived from; zero for monthly workers.
	NormalHours float64 `gorm:"not null;default:0"`
	OT15Hours   float64 `gorm:"column:ot_1_5_hours;not null;default:0"`
	OT20Hours   float64 `gorm:"column:ot_2_0_hours;not null;default:0"`

	GrossPay int64 `gorm:"type:bigint;not null;default:0"`

	EPFEmployee   int64 `gorm:"column:epf_employee;type:bigint;not null;default:0"`
	EPFEmployer   int64 `gorm:"column:epf_employer;type:bigint;not null;default:0"`
	SOCSOEmployee int64 `gorm:"column:socso_employee;type:bigint;not null;default:0"`
	SOCSOEmployer int64 `gorm:"column:socso_employer;type:bigint;not null;default:0"`
	EISEmployee   int64 `gorm:"column:eis_employee;type:bigint;not null;default:0"`
	EISEmployer   int64 `gorm:"column:eis_employer;type:bigint;not null;default:0"`

	CustomDeductions int64 `gorm:"type:bigint;not null;default:0"`
	LoanDeductions   int64 `gorm:"type:bigint;not null;default:0"`
	OtherDeductions  int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions  int64 `gorm:"type:bigint;not null;default:0"`
	NetPay           int64 `gorm:"type:bigint;not null;default:0"`

	// Which configuration layer supplied the rates, for audit display.
	DeductionConfigType   string `gorm:"type:varchar(10);not null;default:'default'"`
	DeductionConfigSource string `gorm:"type:varchar(120);not null;default:'Platform Default'"`

	Status     string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_payroll_company_status"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time     `gorm:"index"`
	PaidAt     *time.Time     `gorm:"index"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type WorkerRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (WorkerRef) TableName() string {
	return "workers"
}
