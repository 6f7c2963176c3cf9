package attendance

type RecordResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	WorkerID       string  `json:"worker_id"`
	WorkerName     string  `json:"worker_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        *string `json:"clock_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	LunchOut       *string `json:"lunch_out,omitempty"`
	LunchIn        *string `json:"lunch_in,omitempty"`
	CheckInMethod  string  `json:"check_in_method"`
	Location       *string `json:"location,omitempty"`
	Status         string  `json:"status"`
}
