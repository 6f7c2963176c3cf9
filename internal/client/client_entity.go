package client

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoundNearest = "nearest"
	RoundUp      = "up"
	RoundDown    = "down"
)

// TimesheetSettings controls how raw clock pairs become paid hour buckets
// for everyone working on this client's projects. Stored as jsonb.
type TimesheetSettings struct {
	MinuteIncrement  int     `json:"minute_increment"`
	RoundingMethod   string  `json:"rounding_method"`
	MinHoursPerDay   float64 `json:"min_hours_per_day"`
	MaxHoursPerDay   float64 `json:"max_hours_per_day"`
	AllowOvertime    bool    `json:"allow_overtime"`
	MaxOTHoursPerDay float64 `json:"max_ot_hours_per_day"`
}

// DefaultTimesheetSettings applies when a client has no configuration or a
// worker has no client chain at all: 30-minute nearest rounding, 8h normal
// cap, 4h overtime cap.
func DefaultTimesheetSettings() TimesheetSettings {
	return TimesheetSettings{
		MinuteIncrement:  30,
		RoundingMethod:   RoundNearest,
		MaxHoursPerDay:   8,
		AllowOvertime:    true,
		MaxOTHoursPerDay: 4,
	}
}

// Normalize replaces missing or out-of-range fields with defaults so the
// hours engine never sees an unusable configuration.
func (s TimesheetSettings) Normalize() TimesheetSettings {
	def := DefaultTimesheetSettings()

	switch s.MinuteIncrement {
	case 1, 5, 6, 10, 15, 30, 60:
	default:
		s.MinuteIncrement = def.MinuteIncrement
	}

	switch s.RoundingMethod {
	case RoundNearest, RoundUp, RoundDown:
	default:
		s.RoundingMethod = def.RoundingMethod
	}

	if s.MaxHoursPerDay <= 0 {
		s.MaxHoursPerDay = def.MaxHoursPerDay
	}
	if s.MinHoursPerDay < 0 {
		s.MinHoursPerDay = 0
	}
	if s.MaxOTHoursPerDay <= 0 {
		s.MaxOTHoursPerDay = def.MaxOTHoursPerDay
	}

	return s
}

// UnmarshalJSON defaults allow_overtime to true when the key is absent,
// so a partial settings blob cannot silently disable overtime. An
// explicit false is kept.
func (s *TimesheetSettings) UnmarshalJSON(data []byte) error {
	type plain TimesheetSettings
	aux := struct {
		*plain
		AllowOvertime *bool `json:"allow_overtime"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.AllowOvertime == nil {
		s.AllowOvertime = true
	} else {
		s.AllowOvertime = *aux.AllowOvertime
	}
	return nil
}

func (s TimesheetSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *TimesheetSettings) Scan(value any) error {
	if value == nil {
		*s = DefaultTimesheetSettings()
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("timesheet settings: unsupported scan type")
		}
		b = []byte(str)
	}
	return json.Unmarshal(b, s)
}

type Client struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID         `gorm:"column:company_id;type:uuid;not null;index"`
	Name         string            `gorm:"column:name;type:varchar(120);not null"`
	ContactEmail string            `gorm:"column:contact_email;type:varchar(120)"`
	Settings     TimesheetSettings `gorm:"column:timesheet_settings;type:jsonb"`
	CreatedAt    time.Time         `gorm:"column:created_at"`
	UpdatedAt    time.Time         `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"column:deleted_at;index"`
}

func (Client) TableName() string {
	return "clients"
}
