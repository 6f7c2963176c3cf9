package checkin

import "time"

type RecordRequest struct {
	Action    string     `json:"action" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
	QRCode    *string    `json:"qr_code"`
	Location  *string    `json:"location"`
}

type RecordResponse struct {
	Action  string `json:"action"`
	Time    string `json:"time"`
	Method  string `json:"method"`
	Message string `json:"message"`
}

// StatusResponse reports today's clocks for the calling worker. Every
// field stays nil/false until the first event of the day lands.
type StatusResponse struct {
	HasCheckedIn  bool    `json:"has_checked_in"`
	ClockIn       *string `json:"clock_in"`
	ClockOut      *string `json:"clock_out"`
	LunchOut      *string `json:"lunch_out"`
	LunchIn       *string `json:"lunch_in"`
	CheckInMethod *string `json:"check_in_method"`
}
