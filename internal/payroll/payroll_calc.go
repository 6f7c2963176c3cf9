package payroll

import (
	"go-payroll/internal/compensation"
	"go-payroll/internal/timesheet"
	"go-payroll/internal/worker"

	"github.com/shopspring/decimal"
)

var (
	otRate15 = decimal.NewFromFloat(1.5)
	otRate20 = decimal.NewFromInt(2)
)

// GrossPay derives cents of gross for one period. Monthly workers are
// paid their salary regardless of hours; hourly and unit workers are
// paid from the bucketed hours at tiered rates. Allowance rides on top
// in both models.
func GrossPay(w worker.Worker, b timesheet.HourBuckets) int64 {
	if w.IsMonthlySalary() {
		return w.MonthlySalary + w.Allowance
	}

	rate := decimal.NewFromInt(w.HourlyRate)
	if w.PaymentType == worker.PaymentUnitBased {
		rate = decimal.NewFromInt(w.UnitRate)
	}

	normal := decimal.NewFromFloat(b.NormalHours).Mul(rate)
	ot15 := decimal.NewFromFloat(b.OT15Hours).Mul(rate).Mul(otRate15)
	ot20 := decimal.NewFromFloat(b.OT20Hours).Mul(rate).Mul(otRate20)

	return normal.Add(ot15).Add(ot20).Round(0).IntPart() + w.Allowance
}

// StatutoryPair is the employee and employer sides of one statutory
// deduction, in cents.
type StatutoryPair struct {
	Employee int64
	Employer int64
}

// LoanApplication records one loan installment taken in a run, with the
// balance it leaves behind.
type LoanApplication struct {
	LoanID         string
	Applied        int64
	RemainingAfter int64
}

// DeductionBreakdown is everything the composer produces for one payroll
// record.
type DeductionBreakdown struct {
	EPF   StatutoryPair
	SOCSO StatutoryPair
	EIS   StatutoryPair

	CustomDeductions int64
	LoanDeductions   int64
	OtherDeductions  int64
	TotalDeductions  int64
	NetPay           int64

	LoanApplications []LoanApplication
}

// ComposeDeductions folds the resolved config, active loans and any
// ad-hoc amount into a breakdown. Net pay subtracts only employee-side
// amounts; employer contributions are carried for reporting.
func ComposeDeductions(gross int64, res compensation.Resolution, loans []compensation.Loan, other int64) DeductionBreakdown {
	cfg := res.Config

	b := DeductionBreakdown{
		EPF:             statutory(gross, cfg.EPFEnabled, cfg.EPFEmployeeRateBps, cfg.EPFEmployerRateBps),
		SOCSO:           statutory(gross, cfg.SOCSOEnabled, cfg.SOCSOEmployeeRateBps, cfg.SOCSOEmployerRateBps),
		EIS:             statutory(gross, cfg.EISEnabled, cfg.EISEmployeeRateBps, cfg.EISEmployerRateBps),
		OtherDeductions: other,
	}

	for _, d := range cfg.CustomDeductions {
		switch d.Type {
		case compensation.DeductionFixed:
			b.CustomDeductions += d.Amount
		case compensation.DeductionPercentage:
			b.CustomDeductions += applyBps(gross, d.Amount)
		}
	}

	for _, l := range loans {
		applied := l.Installment
		if applied > l.RemainingBalance {
			applied = l.RemainingBalance
		}
		if applied <= 0 {
			continue
		}
		b.LoanDeductions += applied
		b.LoanApplications = append(b.LoanApplications, LoanApplication{
			LoanID:         l.ID.String(),
			Applied:        applied,
			RemainingAfter: l.RemainingBalance - applied,
		})
	}

	b.TotalDeductions = b.EPF.Employee + b.SOCSO.Employee + b.EIS.Employee +
		b.CustomDeductions + b.LoanDeductions + b.OtherDeductions
	b.NetPay = gross - b.TotalDeductions
	return b
}

func statutory(gross int64, enabled bool, employeeBps, employerBps int64) StatutoryPair {
	if !enabled {
		return StatutoryPair{}
	}
	return StatutoryPair{
		Employee: applyBps(gross, employeeBps),
		Employer: applyBps(gross, employerBps),
	}
}

// applyBps computes bps/10000 of an amount in cents, rounded half-up.
func applyBps(amount, bps int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(bps)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()
}

// PeriodBuckets sums the hour buckets of every timesheet entry falling
// inside [start, end]. Weeks straddling the period edges contribute only
// their in-period days.
func PeriodBuckets(weeks []timesheet.WeeklyTimesheet, start, end string) timesheet.HourBuckets {
	var total timesheet.HourBuckets
	for _, week := range weeks {
		for _, e := range week.DailyEntries {
			if e.Date < start || e.Date > end {
				continue
			}
			total.NormalHours += e.NormalHours
			total.OT15Hours += e.OT15Hours
			total.OT20Hours += e.OT20Hours
			total.TotalHours += e.TotalHours
		}
	}
	return total
}
