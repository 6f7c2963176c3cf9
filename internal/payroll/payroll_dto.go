package payroll

type GenerateRequest struct {
	WorkerID        string `json:"worker_id" binding:"required,uuid"`
	PeriodStart     string `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd       string `json:"period_end" binding:"required,datetime=2006-01-02"`
	OtherDeductions int64  `json:"other_deductions" binding:"gte=0"`
}

type StatutoryPairResponse struct {
	Employee int64 `json:"employee"`
	Employer int64 `json:"employer"`
}

type PayrollResponse struct {
	ID            string `json:"id"`
	PayrollNumber string `json:"payroll_number"`
	WorkerID      string `json:"worker_id"`
	WorkerName    string `json:"worker_name,omitempty"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`

	NormalHours float64 `json:"normal_hours"`
	OT15Hours   float64 `json:"ot_1_5_hours"`
	OT20Hours   float64 `json:"ot_2_0_hours"`

	GrossPay int64 `json:"gross_pay"`

	EPF   StatutoryPairResponse `json:"epf"`
	SOCSO StatutoryPairResponse `json:"socso"`
	EIS   StatutoryPairResponse `json:"eis"`

	CustomDeductions int64 `json:"custom_deductions"`
	LoanDeductions   int64 `json:"loan_deductions"`
	OtherDeductions  int64 `json:"other_deductions"`
	TotalDeductions  int64 `json:"total_deductions"`
	NetPay           int64 `json:"net_pay"`

	DeductionConfigType   string `json:"deduction_config_type"`
	DeductionConfigSource string `json:"deduction_config_source"`

	Status     string  `json:"status"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	PaidAt     *string `json:"paid_at,omitempty"`
}
