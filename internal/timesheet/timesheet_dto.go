package timesheet

import "time"

type DailyEntryPayload struct {
	Date     string     `json:"date" binding:"required,datetime=2006-01-02"`
	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
	LunchOut *time.Time `json:"lunch_out"`
	LunchIn  *time.Time `json:"lunch_in"`

	IsAbsent  bool   `json:"is_absent"`
	LeaveType string `json:"leave_type" binding:"omitempty,oneof=PH AL MC UPL"`

	// Holiday entries carry their paid hours directly since no clocks
	// back them.
	NormalHours *float64 `json:"normal_hours" binding:"omitempty,gte=0"`
}

type UpdateEntryRequest struct {
	Entry DailyEntryPayload `json:"entry" binding:"required"`
}

type DailyEntryResponse struct {
	Date        string  `json:"date"`
	ClockIn     *string `json:"clock_in,omitempty"`
	ClockOut    *string `json:"clock_out,omitempty"`
	LunchOut    *string `json:"lunch_out,omitempty"`
	LunchIn     *string `json:"lunch_in,omitempty"`
	NormalHours float64 `json:"normal_hours"`
	OT15Hours   float64 `json:"ot_1_5_hours"`
	OT20Hours   float64 `json:"ot_2_0_hours"`
	TotalHours  float64 `json:"total_hours"`
	IsAbsent    bool    `json:"is_absent"`
	LeaveType   string  `json:"leave_type,omitempty"`
}

type TimesheetResponse struct {
	ID            string               `json:"id"`
	CompanyID     string               `json:"company_id"`
	WorkerID      string               `json:"worker_id"`
	WorkerName    string               `json:"worker_name,omitempty"`
	WeekStartDate string               `json:"week_start_date"`
	WeekEndDate   string               `json:"week_end_date"`
	DailyEntries  []DailyEntryResponse `json:"daily_entries"`

	TotalNormalHours float64 `json:"total_normal_hours"`
	TotalOT15Hours   float64 `json:"total_ot_1_5_hours"`
	TotalOT20Hours   float64 `json:"total_ot_2_0_hours"`
	TotalHours       float64 `json:"total_hours"`

	Status string `json:"status"`
}
