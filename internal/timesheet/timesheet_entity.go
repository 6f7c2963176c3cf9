package timesheet

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"

	// LeavePublicHoliday marks a day paid from the stored buckets rather
	// than from clock data.
	LeavePublicHoliday = "PH"
)

// DailyEntry is one calendar day inside a weekly timesheet. Clock fields
// are optional; the hour buckets are derived, never hand-entered truth.
type DailyEntry struct {
	Date       string     `json:"date"`
	ClockIn    *time.Time `json:"clock_in,omitempty"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	LunchOut   *time.Time `json:"lunch_out,omitempty"`
	LunchIn    *time.Time `json:"lunch_in,omitempty"`
	QRCodeData *string    `json:"qr_code_data,omitempty"`
	Location   *string    `json:"location,omitempty"`

	NormalHours float64 `json:"normal_hours"`
	OT15Hours   float64 `json:"ot_1_5_hours"`
	OT20Hours   float64 `json:"ot_2_0_hours"`
	TotalHours  float64 `json:"total_hours"`

	IsAbsent  bool   `json:"is_absent"`
	LeaveType string `json:"leave_type,omitempty"`
}

// DailyEntries is stored as a single jsonb column; the whole array is
// written back on every change so entries never drift apart.
type DailyEntries []DailyEntry

func (e DailyEntries) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal(DailyEntries{})
	}
	return json.Marshal(e)
}

func (e *DailyEntries) Scan(value any) error {
	if value == nil {
		*e = DailyEntries{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("daily entries: unsupported scan type")
		}
		b = []byte(str)
	}
	return json.Unmarshal(b, e)
}

// WeeklyTimesheet is one hourly/unit worker's week, Monday-start. At most
// one entry exists per calendar date inside [week_start, week_start+6].
type WeeklyTimesheet struct {
	ID            uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID    `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_timesheet_worker_week"`
	WorkerID      uuid.UUID    `gorm:"column:worker_id;type:uuid;not null;uniqueIndex:uq_timesheet_worker_week"`
	WeekStartDate time.Time    `gorm:"column:week_start_date;type:date;not null;uniqueIndex:uq_timesheet_worker_week"`
	WeekEndDate   time.Time    `gorm:"column:week_end_date;type:date;not null"`
	DailyEntries  DailyEntries `gorm:"column:daily_entries;type:jsonb;not null"`

	TotalNormalHours float64 `gorm:"column:total_normal_hours;not null;default:0"`
	TotalOT15Hours   float64 `gorm:"column:total_ot_1_5_hours;not null;default:0"`
	TotalOT20Hours   float64 `gorm:"column:total_ot_2_0_hours;not null;default:0"`
	TotalHours       float64 `gorm:"column:total_hours;not null;default:0"`

	Status    string         `gorm:"column:status;type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Worker *WorkerRef `gorm:"foreignKey:WorkerID;references:ID"`
}

func (WeeklyTimesheet) TableName() string {
	return "weekly_timesheets"
}

type WorkerRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (WorkerRef) TableName() string {
	return "workers"
}

// EntryFor returns a pointer into DailyEntries for the given calendar
// date, or nil when the week has no entry for it yet.
func (t *WeeklyTimesheet) EntryFor(date string) *DailyEntry {
	for i := range t.DailyEntries {
		if t.DailyEntries[i].Date == date {
			return &t.DailyEntries[i]
		}
	}
	return nil
}
