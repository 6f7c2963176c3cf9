package worker

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment types decide how a check-in is recorded and how gross pay is
// derived: monthly-salary workers get daily attendance records, hourly and
// unit-based workers get weekly timesheets.
const (
	PaymentMonthlySalary = "monthly-salary"
	PaymentHourly        = "hourly"
	PaymentUnitBased     = "unit-based"
)

type Worker struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex"`
	FullName  string     `gorm:"column:full_name;type:varchar(120);not null"`
	Email     string     `gorm:"column:email;type:varchar(120)"`

	PaymentType string `gorm:"column:payment_type;type:varchar(20);not null;default:'monthly-salary'"`

	// Amounts in cents.
	MonthlySalary int64 `gorm:"column:monthly_salary;type:bigint;not null;default:0"`
	HourlyRate    int64 `gorm:"column:hourly_rate;type:bigint;not null;default:0"`
	UnitRate      int64 `gorm:"column:unit_rate;type:bigint;not null;default:0"`
	Allowance     int64 `gorm:"column:allowance;type:bigint;not null;default:0"`

	// Classification links used by deduction-config resolution and the
	// timesheet-settings chain (worker -> project -> client).
	GroupID   *uuid.UUID `gorm:"column:group_id;type:uuid;index"`
	JobBandID *uuid.UUID `gorm:"column:job_band_id;type:uuid;index"`
	ProjectID *uuid.UUID `gorm:"column:project_id;type:uuid;index"`

	Status    string         `gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Worker) TableName() string {
	return "workers"
}

func ValidPaymentType(v string) bool {
	switch v {
	case PaymentMonthlySalary, PaymentHourly, PaymentUnitBased:
		return true
	default:
		return false
	}
}

// IsMonthlySalary reports whether check-ins route to the attendance path.
func (w Worker) IsMonthlySalary() bool {
	return w.PaymentType == PaymentMonthlySalary
}
