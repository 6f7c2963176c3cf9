package client

type TimesheetSettingsPayload struct {
	MinuteIncrement  int     `json:"minute_increment" binding:"omitempty,oneof=1 5 6 10 15 30 60"`
	RoundingMethod   string  `json:"rounding_method" binding:"omitempty,oneof=nearest up down"`
	MinHoursPerDay   float64 `json:"min_hours_per_day" binding:"gte=0"`
	MaxHoursPerDay   float64 `json:"max_hours_per_day" binding:"gte=0"`
	AllowOvertime    *bool   `json:"allow_overtime"`
	MaxOTHoursPerDay float64 `json:"max_ot_hours_per_day" binding:"gte=0"`
}

type CreateClientRequest struct {
	Name         string                    `json:"name" binding:"required"`
	ContactEmail string                    `json:"contact_email" binding:"omitempty,email"`
	Settings     *TimesheetSettingsPayload `json:"timesheet_settings"`
}

type UpdateClientRequest struct {
	Name         string                    `json:"name" binding:"required"`
	ContactEmail string                    `json:"contact_email" binding:"omitempty,email"`
	Settings     *TimesheetSettingsPayload `json:"timesheet_settings"`
}

type ClientResponse struct {
	ID           string            `json:"id"`
	CompanyID    string            `json:"company_id"`
	Name         string            `json:"name"`
	ContactEmail string            `json:"contact_email,omitempty"`
	Settings     TimesheetSettings `json:"timesheet_settings"`
}
