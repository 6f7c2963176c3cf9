package worker

type CreateWorkerRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"omitempty,email"`
	UserID        *string `json:"user_id"`
	PaymentType   string  `json:"payment_type" binding:"required"`
	MonthlySalary int64   `json:"monthly_salary" binding:"gte=0"`
	HourlyRate    int64   `json:"hourly_rate" binding:"gte=0"`
	UnitRate      int64   `json:"unit_rate" binding:"gte=0"`
	Allowance     int64   `json:"allowance" binding:"gte=0"`
	GroupID       *string `json:"group_id"`
	JobBandID     *string `json:"job_band_id"`
	ProjectID     *string `json:"project_id"`
}

type UpdateWorkerRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"omitempty,email"`
	PaymentType   string  `json:"payment_type" binding:"required"`
	MonthlySalary int64   `json:"monthly_salary" binding:"gte=0"`
	HourlyRate    int64   `json:"hourly_rate" binding:"gte=0"`
	UnitRate      int64   `json:"unit_rate" binding:"gte=0"`
	Allowance     int64   `json:"allowance" binding:"gte=0"`
	GroupID       *string `json:"group_id"`
	JobBandID     *string `json:"job_band_id"`
	ProjectID     *string `json:"project_id"`
}

type WorkerResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	UserID        *string `json:"user_id,omitempty"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email,omitempty"`
	PaymentType   string  `json:"payment_type"`
	MonthlySalary int64   `json:"monthly_salary"`
	HourlyRate    int64   `json:"hourly_rate"`
	UnitRate      int64   `json:"unit_rate"`
	Allowance     int64   `json:"allowance"`
	GroupID       *string `json:"group_id,omitempty"`
	JobBandID     *string `json:"job_band_id,omitempty"`
	ProjectID     *string `json:"project_id,omitempty"`
	Status        string  `json:"status"`
}
