package payroll_test

import (
	"testing"

	"go-payroll/internal/compensation"
	"go-payroll/internal/payroll"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGrossPay_HourlyWithOvertime(t *testing.T) {
	// RM20.00/h, 8h normal + 2h at 1.5x = 160 + 60 = RM220.00.
	w := worker.Worker{PaymentType: worker.PaymentHourly, HourlyRate: 2000}
	b := timesheet.HourBuckets{NormalHours: 8, OT15Hours: 2, TotalHours: 10}

	assert.Equal(t, int64(22000), payroll.GrossPay(w, b))
}

func TestGrossPay_HourlyDoubleTier(t *testing.T) {
	w := worker.Worker{PaymentType: worker.PaymentHourly, HourlyRate: 1000}
	b := timesheet.HourBuckets{NormalHours: 8, OT15Hours: 2, OT20Hours: 3, TotalHours: 13}

	// 8000 + 3000 + 6000
	assert.Equal(t, int64(17000), payroll.GrossPay(w, b))
}

func TestGrossPay_MonthlyIgnoresHours(t *testing.T) {
	w := worker.Worker{
		PaymentType:   worker.PaymentMonthlySalary,
		MonthlySalary: 350000,
		Allowance:     20000,
	}

	assert.Equal(t, int64(370000), payroll.GrossPay(w, timesheet.HourBuckets{}))
	assert.Equal(t, int64(370000), payroll.GrossPay(w, timesheet.HourBuckets{NormalHours: 40}))
}

func TestGrossPay_UnitBasedUsesUnitRateAndAllowance(t *testing.T) {
	w := worker.Worker{
		PaymentType: worker.PaymentUnitBased,
		HourlyRate:  9999, // must not be used
		UnitRate:    500,
		Allowance:   1000,
	}
	b := timesheet.HourBuckets{NormalHours: 10, TotalHours: 10}

	assert.Equal(t, int64(6000), payroll.GrossPay(w, b))
}

func TestComposeDeductions_PlatformDefaults(t *testing.T) {
	res := compensation.Resolve(worker.Worker{}, nil)
	b := payroll.ComposeDeductions(100000, res, nil, 0)

	// EPF 11%/12%, SOCSO 0.5%/1.75%, EIS 0.2%/0.2% of RM1000.00.
	assert.Equal(t, int64(11000), b.EPF.Employee)
	assert.Equal(t, int64(12000), b.EPF.Employer)
	assert.Equal(t, int64(500), b.SOCSO.Employee)
	assert.Equal(t, int64(1750), b.SOCSO.Employer)
	assert.Equal(t, int64(200), b.EIS.Employee)
	assert.Equal(t, int64(200), b.EIS.Employer)

	// Net pay subtracts employee sides only.
	assert.Equal(t, int64(11700), b.TotalDeductions)
	assert.Equal(t, int64(88300), b.NetPay)
}

func TestComposeDeductions_DisabledStatutoryIsZero(t *testing.T) {
	res := compensation.Resolution{
		Config: compensation.DeductionConfig{
			EPFEnabled:         false,
			EPFEmployeeRateBps: 1100,
			EPFEmployerRateBps: 1200,
		},
	}

	b := payroll.ComposeDeductions(100000, res, nil, 0)
	assert.Equal(t, payroll.StatutoryPair{}, b.EPF)
	assert.Equal(t, int64(100000), b.NetPay)
}

func TestComposeDeductions_CustomFixedAndPercentage(t *testing.T) {
	res := compensation.Resolution{
		Config: compensation.DeductionConfig{
			CustomDeductions: compensation.CustomDeductions{
				{Name: "Uniform", Type: compensation.DeductionFixed, Amount: 1500},
				{Name: "Welfare Fund", Type: compensation.DeductionPercentage, Amount: 100}, // 1%
			},
		},
	}

	b := payroll.ComposeDeductions(100000, res, nil, 0)
	assert.Equal(t, int64(2500), b.CustomDeductions)
	assert.Equal(t, int64(97500), b.NetPay)
}

func TestComposeDeductions_LoanCappedAtRemainingBalance(t *testing.T) {
	loanID := uuid.New()
	loans := []compensation.Loan{
		{ID: loanID, Installment: 5000, RemainingBalance: 3000},
	}

	b := payroll.ComposeDeductions(100000, compensation.Resolution{}, loans, 0)

	assert.Equal(t, int64(3000), b.LoanDeductions)
	if assert.Len(t, b.LoanApplications, 1) {
		app := b.LoanApplications[0]
		assert.Equal(t, loanID.String(), app.LoanID)
		assert.Equal(t, int64(3000), app.Applied)
		assert.Equal(t, int64(0), app.RemainingAfter)
	}
}

func TestComposeDeductions_ExhaustedLoanSkipped(t *testing.T) {
	loans := []compensation.Loan{
		{ID: uuid.New(), Installment: 5000, RemainingBalance: 0},
	}

	b := payroll.ComposeDeductions(100000, compensation.Resolution{}, loans, 0)
	assert.Equal(t, int64(0), b.LoanDeductions)
	assert.Empty(t, b.LoanApplications)
}

func TestComposeDeductions_NetPayIdentity(t *testing.T) {
	res := compensation.Resolve(worker.Worker{}, nil)
	loans := []compensation.Loan{
		{ID: uuid.New(), Installment: 2000, RemainingBalance: 10000},
	}

	b := payroll.ComposeDeductions(123456, res, loans, 700)

	sum := b.EPF.Employee + b.SOCSO.Employee + b.EIS.Employee +
		b.CustomDeductions + b.LoanDeductions + b.OtherDeductions
	assert.Equal(t, sum, b.TotalDeductions)
	assert.Equal(t, int64(123456)-sum, b.NetPay)
}

func TestApplyBpsRoundingViaStatutory(t *testing.T) {
	res := compensation.Resolution{
		Config: compensation.DeductionConfig{
			EPFEnabled:         true,
			EPFEmployeeRateBps: 1100,
		},
	}

	// 11% of 4995 cents = 549.45, half-up to 549.
	b := payroll.ComposeDeductions(4995, res, nil, 0)
	assert.Equal(t, int64(549), b.EPF.Employee)

	// 11% of 5045 cents = 554.95, half-up to 555.
	b = payroll.ComposeDeductions(5045, res, nil, 0)
	assert.Equal(t, int64(555), b.EPF.Employee)
}

func TestPeriodBuckets_FiltersByDateRange(t *testing.T) {
	weeks := []timesheet.WeeklyTimesheet{
		{DailyEntries: timesheet.DailyEntries{
			{Date: "2024-01-31", NormalHours: 8, TotalHours: 8}, // before period
			{Date: "2024-02-01", NormalHours: 8, TotalHours: 8},
			{Date: "2024-02-02", NormalHours: 8, OT15Hours: 2, TotalHours: 10},
		}},
		{DailyEntries: timesheet.DailyEntries{
			{Date: "2024-02-14", NormalHours: 4, TotalHours: 4},
			{Date: "2024-02-15", NormalHours: 8, TotalHours: 8}, // after period
		}},
	}

	b := payroll.PeriodBuckets(weeks, "2024-02-01", "2024-02-14")

	assert.Equal(t, 20.0, b.NormalHours)
	assert.Equal(t, 2.0, b.OT15Hours)
	assert.Equal(t, 22.0, b.TotalHours)
}
