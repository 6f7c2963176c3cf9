package compensation_test

import (
	"testing"

	"go-payroll/internal/compensation"
	"go-payroll/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolve_GroupBeatsBand(t *testing.T) {
	groupID := uuid.New()
	bandID := uuid.New()
	w := worker.Worker{GroupID: &groupID, JobBandID: &bandID}

	configs := []compensation.DeductionConfig{
		{ConfigType: compensation.TypeBand, TargetID: bandID, TargetName: "Senior Band", EPFEmployeeRateBps: 900},
		{ConfigType: compensation.TypeGroup, TargetID: groupID, TargetName: "Night Shift", EPFEmployeeRateBps: 800},
	}

	res := compensation.Resolve(w, configs)

	assert.Equal(t, compensation.TypeGroup, res.SourceType)
	assert.Equal(t, "Night Shift", res.SourceName)
	assert.Equal(t, int64(800), res.Config.EPFEmployeeRateBps)
}

func TestResolve_BandWhenNoGroupMatch(t *testing.T) {
	bandID := uuid.New()
	otherGroup := uuid.New()
	w := worker.Worker{GroupID: &otherGroup, JobBandID: &bandID}

	configs := []compensation.DeductionConfig{
		{ConfigType: compensation.TypeGroup, TargetID: uuid.New(), TargetName: "Warehouse"},
		{ConfigType: compensation.TypeBand, TargetID: bandID, TargetName: "Senior Band"},
	}

	res := compensation.Resolve(w, configs)

	assert.Equal(t, compensation.TypeBand, res.SourceType)
	assert.Equal(t, "Senior Band", res.SourceName)
}

func TestResolve_PlatformDefaults(t *testing.T) {
	res := compensation.Resolve(worker.Worker{}, nil)

	assert.Equal(t, compensation.SourceDefault, res.SourceType)
	assert.Equal(t, compensation.SourceDefaultName, res.SourceName)
	assert.True(t, res.Config.EPFEnabled)
	assert.Equal(t, int64(compensation.DefaultEPFEmployeeBps), res.Config.EPFEmployeeRateBps)
	assert.Equal(t, int64(compensation.DefaultEPFEmployerBps), res.Config.EPFEmployerRateBps)
	assert.Equal(t, int64(compensation.DefaultSOCSOEmployeeBps), res.Config.SOCSOEmployeeRateBps)
	assert.Equal(t, int64(compensation.DefaultSOCSOEmployerBps), res.Config.SOCSOEmployerRateBps)
	assert.Equal(t, int64(compensation.DefaultEISEmployeeBps), res.Config.EISEmployeeRateBps)
	assert.Equal(t, int64(compensation.DefaultEISEmployerBps), res.Config.EISEmployerRateBps)
}

func TestResolve_IgnoresNonMatchingLayers(t *testing.T) {
	groupID := uuid.New()
	w := worker.Worker{GroupID: &groupID}

	configs := []compensation.DeductionConfig{
		{ConfigType: compensation.TypeBand, TargetID: groupID, TargetName: "Mislabeled"},
	}

	res := compensation.Resolve(w, configs)
	assert.Equal(t, compensation.SourceDefault, res.SourceType)
}
