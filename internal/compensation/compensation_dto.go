package compensation

type StatutoryRatesPayload struct {
	Enabled     bool  `json:"enabled"`
	EmployeeBps int64 `json:"employee_rate_bps" binding:"gte=0,lte=10000"`
	EmployerBps int64 `json:"employer_rate_bps" binding:"gte=0,lte=10000"`
}

type CustomDeductionPayload struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=fixed percentage"`
	Amount int64  `json:"amount" binding:"gte=0"`
}

type CreateConfigRequest struct {
	ConfigType string `json:"config_type" binding:"required,oneof=group band"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
	TargetName string `json:"target_name" binding:"required"`

	EPF   StatutoryRatesPayload `json:"epf"`
	SOCSO StatutoryRatesPayload `json:"socso"`
	EIS   StatutoryRatesPayload `json:"eis"`

	CustomDeductions []CustomDeductionPayload `json:"custom_deductions" binding:"dive"`
}

type UpdateConfigRequest struct {
	TargetName string `json:"target_name"`

	EPF   *StatutoryRatesPayload `json:"epf"`
	SOCSO *StatutoryRatesPayload `json:"socso"`
	EIS   *StatutoryRatesPayload `json:"eis"`

	CustomDeductions []CustomDeductionPayload `json:"custom_deductions" binding:"dive"`
}

type ConfigResponse struct {
	ID         string `json:"id"`
	ConfigType string `json:"config_type"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`

	EPF   StatutoryRatesPayload `json:"epf"`
	SOCSO StatutoryRatesPayload `json:"socso"`
	EIS   StatutoryRatesPayload `json:"eis"`

	CustomDeductions []CustomDeductionPayload `json:"custom_deductions"`
}

type CreateLoanRequest struct {
	WorkerID    string `json:"worker_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Principal   int64  `json:"principal" binding:"required,gt=0"`
	Installment int64  `json:"installment" binding:"required,gt=0"`
}

type LoanResponse struct {
	ID               string `json:"id"`
	WorkerID         string `json:"worker_id"`
	Name             string `json:"name"`
	Principal        int64  `json:"principal"`
	RemainingBalance int64  `json:"remaining_balance"`
	Installment      int64  `json:"installment"`
	Status           string `json:"status"`
}
