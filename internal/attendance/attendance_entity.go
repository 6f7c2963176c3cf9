package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	MethodManual = "manual"
	MethodQR     = "qr"

	StatusPresent = "PRESENT"
)

// Record is one monthly-salary worker's attendance for one calendar day.
// The first check-in event of the day creates it; later events patch the
// matching clock column in place. Rows are never deleted by check-in flows.
type Record struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_attendance_worker_date"`
	WorkerID       uuid.UUID  `gorm:"column:worker_id;type:uuid;not null;uniqueIndex:uq_attendance_worker_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_worker_date"`
	ClockIn        *time.Time `gorm:"column:clock_in;type:timestamptz"`
	ClockOut       *time.Time `gorm:"column:clock_out;type:timestamptz"`
	LunchOut       *time.Time `gorm:"column:lunch_out;type:timestamptz"`
	LunchIn        *time.Time `gorm:"column:lunch_in;type:timestamptz"`
	CheckInMethod  string     `gorm:"column:check_in_method;type:varchar(10);not null;default:'manual'"`
	QRCodeData     *string    `gorm:"column:qr_code_data;type:varchar(200)"`
	Location       *string    `gorm:"column:location;type:varchar(200)"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'PRESENT'"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`

	Worker *WorkerRef `gorm:"foreignKey:WorkerID;references:ID"`
}

func (Record) TableName() string {
	return "attendance_records"
}

type WorkerRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (WorkerRef) TableName() string {
	return "workers"
}
