package compensation

import "go-payroll/internal/worker"

// Platform default rates in basis points: EPF 11%/12%, SOCSO 0.5%/1.75%,
// EIS 0.2%/0.2%, everything enabled.
const (
	DefaultEPFEmployeeBps   = 1100
	DefaultEPFEmployerBps   = 1200
	DefaultSOCSOEmployeeBps = 50
	DefaultSOCSOEmployerBps = 175
	DefaultEISEmployeeBps   = 20
	DefaultEISEmployerBps   = 20

	SourceDefault     = "default"
	SourceDefaultName = "Platform Default"
)

// Resolution records which configuration layer won, so payroll rows can
// show where their rates came from.
type Resolution struct {
	Config     DeductionConfig
	SourceType string
	SourceName string
}

// Resolve picks the deduction config for a worker. A group match always
// beats a band match; with neither, platform defaults apply. Pure, so
// the priority rule is testable without any storage.
func Resolve(w worker.Worker, configs []DeductionConfig) Resolution {
	if w.GroupID != nil {
		for _, c := range configs {
			if c.ConfigType == TypeGroup && c.TargetID == *w.GroupID {
				return Resolution{Config: c, SourceType: TypeGroup, SourceName: c.TargetName}
			}
		}
	}
	if w.JobBandID != nil {
		for _, c := range configs {
			if c.ConfigType == TypeBand && c.TargetID == *w.JobBandID {
				return Resolution{Config: c, SourceType: TypeBand, SourceName: c.TargetName}
			}
		}
	}
	return Resolution{
		Config:     defaultConfig(),
		SourceType: SourceDefault,
		SourceName: SourceDefaultName,
	}
}

func defaultConfig() DeductionConfig {
	return DeductionConfig{
		EPFEnabled:           true,
		EPFEmployeeRateBps:   DefaultEPFEmployeeBps,
		EPFEmployerRateBps:   DefaultEPFEmployerBps,
		SOCSOEnabled:         true,
		SOCSOEmployeeRateBps: DefaultSOCSOEmployeeBps,
		SOCSOEmployerRateBps: DefaultSOCSOEmployerBps,
		EISEnabled:           true,
		EISEmployeeRateBps:   DefaultEISEmployeeBps,
		EISEmployerRateBps:   DefaultEISEmployerBps,
	}
}
