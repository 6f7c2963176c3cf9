package compensation

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeGroup = "group"
	TypeBand  = "band"

	DeductionFixed      = "fixed"
	DeductionPercentage = "percentage"

	LoanActive  = "ACTIVE"
	LoanSettled = "SETTLED"
)

// CustomDeduction is one extra line a config adds to every payroll it
// governs. Amount is cents when Type is fixed, basis points of gross
// when Type is percentage.
type CustomDeduction struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type CustomDeductions []CustomDeduction

func (d CustomDeductions) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(CustomDeductions{})
	}
	return json.Marshal(d)
}

func (d *CustomDeductions) Scan(value any) error {
	if value == nil {
		*d = CustomDeductions{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("custom deductions: unsupported scan type")
		}
		b = []byte(str)
	}
	return json.Unmarshal(b, d)
}

// DeductionConfig is one layer of the deduction setup: either a worker
// group's or a job band's. Statutory rates are basis points of gross pay.
type DeductionConfig struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_deduction_config_target"`
	ConfigType string    `gorm:"column:config_type;type:varchar(10);not null;uniqueIndex:uq_deduction_config_target"`
	TargetID   uuid.UUID `gorm:"column:target_id;type:uuid;not null;uniqueIndex:uq_deduction_config_target"`
	TargetName string    `gorm:"column:target_name;type:varchar(120);not null"`

	EPFEnabled         bool  `gorm:"column:epf_enabled;not null;default:true"`
	EPFEmployeeRateBps int64 `gorm:"column:epf_employee_rate_bps;not null;default:0"`
	EPFEmployerRateBps int64 `gorm:"column:epf_employer_rate_bps;not null;default:0"`

	SOCSOEnabled         bool  `gorm:"column:socso_enabled;not null;default:true"`
	SOCSOEmployeeRateBps int64 `gorm:"column:socso_employee_rate_bps;not null;default:0"`
	SOCSOEmployerRateBps int64 `gorm:"column:socso_employer_rate_bps;not null;default:0"`

	EISEnabled         bool  `gorm:"column:eis_enabled;not null;default:true"`
	EISEmployeeRateBps int64 `gorm:"column:eis_employee_rate_bps;not null;default:0"`
	EISEmployerRateBps int64 `gorm:"column:eis_employer_rate_bps;not null;default:0"`

	CustomDeductions CustomDeductions `gorm:"column:custom_deductions;type:jsonb;not null"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (DeductionConfig) TableName() string {
	return "deduction_configs"
}

func ValidConfigType(t string) bool {
	return t == TypeGroup || t == TypeBand
}

// Loan is a worker advance repaid by a fixed installment each payroll
// run. Amounts in cents.
type Loan struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	WorkerID         uuid.UUID `gorm:"column:worker_id;type:uuid;not null;index"`
	Name             string    `gorm:"column:name;type:varchar(120);not null"`
	Principal        int64     `gorm:"column:principal;type:bigint;not null"`
	RemainingBalance int64     `gorm:"column:remaining_balance;type:bigint;not null"`
	Installment      int64     `gorm:"column:installment;type:bigint;not null"`
	Status           string    `gorm:"column:status;type:varchar(10);not null;default:'ACTIVE'"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Loan) TableName() string {
	return "worker_loans"
}
