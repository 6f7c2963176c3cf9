package timesheet_test

import (
	"testing"
	"time"

	"go-payroll/internal/client"
	"go-payroll/internal/timesheet"

	"github.com/stretchr/testify/assert"
)

func clockAt(day string, hour, min int) *time.Time {
	d, _ := time.Parse("2006-01-02", day)
	t := time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
	return &t
}

func workedEntry(day string, inH, inM, outH, outM int) timesheet.DailyEntry {
	return timesheet.DailyEntry{
		Date:     day,
		ClockIn:  clockAt(day, inH, inM),
		ClockOut: clockAt(day, outH, outM),
	}
}

func defaultSettings() client.TimesheetSettings {
	return client.DefaultTimesheetSettings()
}

func TestComputeHours_MissingClockYieldsZero(t *testing.T) {
	s := defaultSettings()

	noOut := timesheet.DailyEntry{Date: "2024-01-03", ClockIn: clockAt("2024-01-03", 8, 0)}
	assert.Equal(t, timesheet.HourBuckets{}, timesheet.ComputeHours(noOut, s))

	noIn := timesheet.DailyEntry{Date: "2024-01-03", ClockOut: clockAt("2024-01-03", 17, 0)}
	assert.Equal(t, timesheet.HourBuckets{}, timesheet.ComputeHours(noIn, s))
}

func TestComputeHours_AbsentYieldsZero(t *testing.T) {
	e := workedEntry("2024-01-03", 8, 0, 17, 0)
	e.IsAbsent = true
	assert.Equal(t, timesheet.HourBuckets{}, timesheet.ComputeHours(e, defaultSettings()))
}

func TestComputeHours_Deterministic(t *testing.T) {
	e := workedEntry("2024-01-03", 8, 0, 16, 10)
	s := defaultSettings()

	first := timesheet.ComputeHours(e, s)
	second := timesheet.ComputeHours(e, s)
	assert.Equal(t, first, second)
}

func TestComputeHours_NearestRoundingExample(t *testing.T) {
	// 08:00-16:10 is 490 minutes; nearest 30 rounds down to 480 = 8.00h.
	e := workedEntry("2024-01-03", 8, 0, 16, 10)
	b := timesheet.ComputeHours(e, defaultSettings())

	assert.Equal(t, 8.0, b.TotalHours)
	assert.Equal(t, 8.0, b.NormalHours)
	assert.Equal(t, 0.0, b.OT15Hours)
	assert.Equal(t, 0.0, b.OT20Hours)
}

func TestComputeHours_RoundingMethods(t *testing.T) {
	// 07:50 worked = 470 minutes.
	e := workedEntry("2024-01-03", 8, 0, 15, 50)

	up := defaultSettings()
	up.RoundingMethod = client.RoundUp
	assert.Equal(t, 8.0, timesheet.ComputeHours(e, up).TotalHours)

	down := defaultSettings()
	down.RoundingMethod = client.RoundDown
	assert.Equal(t, 7.5, timesheet.ComputeHours(e, down).TotalHours)

	nearest := defaultSettings()
	assert.Equal(t, 8.0, timesheet.ComputeHours(e, nearest).TotalHours)
}

func TestComputeHours_IncrementOneIsPassthrough(t *testing.T) {
	e := workedEntry("2024-01-03", 8, 0, 16, 10)
	s := defaultSettings()
	s.MinuteIncrement = 1

	b := timesheet.ComputeHours(e, s)
	assert.InDelta(t, 490.0/60.0, b.TotalHours, 1e-9)
}

func TestComputeHours_LunchSubtraction(t *testing.T) {
	e := workedEntry("2024-01-03", 8, 0, 17, 0)
	e.LunchOut = clockAt("2024-01-03", 12, 0)
	e.LunchIn = clockAt("2024-01-03", 13, 0)

	b := timesheet.ComputeHours(e, defaultSettings())
	assert.Equal(t, 8.0, b.TotalHours)
}

func TestComputeHours_InvertedLunchSkippedSilently(t *testing.T) {
	e := workedEntry("2024-01-03", 8, 0, 17, 0)
	e.LunchOut = clockAt("2024-01-03", 13, 0)
	e.LunchIn = clockAt("2024-01-03", 12, 0)

	b := timesheet.ComputeHours(e, defaultSettings())
	assert.Equal(t, 9.0, b.TotalHours)
	assert.Equal(t, 8.0, b.NormalHours)
	assert.Equal(t, 1.0, b.OT15Hours)
}

func TestComputeHours_ReanchorsForeignDateComponent(t *testing.T) {
	// Clocks serialized with an unrelated date keep only their wall time.
	in := time.Date(1970, 1, 1, 8, 0, 0, 0, time.UTC)
	out := time.Date(1999, 12, 31, 16, 0, 0, 0, time.UTC)
	e := timesheet.DailyEntry{Date: "2024-01-03", ClockIn: &in, ClockOut: &out}

	b := timesheet.ComputeHours(e, defaultSettings())
	assert.Equal(t, 8.0, b.TotalHours)
}

func TestComputeHours_NegativeDurationClampsToZero(t *testing.T) {
	e := workedEntry("2024-01-03", 17, 0, 8, 0)
	assert.Equal(t, timesheet.HourBuckets{}, timesheet.ComputeHours(e, defaultSettings()))
}

func TestComputeHours_OvertimeTiersAndCaps(t *testing.T) {
	// 08:00-22:00 = 14h; normal capped at 8, OT capped at 4, first two
	// OT hours at 1.5x, rest at 2x.
	e := workedEntry("2024-01-03", 8, 0, 22, 0)
	b := timesheet.ComputeHours(e, defaultSettings())

	assert.Equal(t, 8.0, b.NormalHours)
	assert.Equal(t, 2.0, b.OT15Hours)
	assert.Equal(t, 2.0, b.OT20Hours)
	assert.Equal(t, 12.0, b.TotalHours)
}

func TestComputeHours_NoOvertimePolicyDropsExcess(t *testing.T) {
	e := workedEntry("2024-01-03", 8, 0, 20, 0)
	s := defaultSettings()
	s.AllowOvertime = false

	b := timesheet.ComputeHours(e, s)
	assert.Equal(t, 8.0, b.NormalHours)
	assert.Equal(t, 0.0, b.OT15Hours)
	assert.Equal(t, 0.0, b.OT20Hours)
	assert.Equal(t, 8.0, b.TotalHours)
}

func TestComputeHours_BucketConservation(t *testing.T) {
	cases := []timesheet.DailyEntry{
		workedEntry("2024-01-03", 8, 0, 12, 0),
		workedEntry("2024-01-03", 8, 0, 17, 37),
		workedEntry("2024-01-03", 6, 15, 21, 45),
		workedEntry("2024-01-03", 9, 0, 9, 5),
	}
	s := defaultSettings()

	for _, e := range cases {
		b := timesheet.ComputeHours(e, s)
		assert.InDelta(t, b.TotalHours, b.NormalHours+b.OT15Hours+b.OT20Hours, 1e-9)
		assert.LessOrEqual(t, b.NormalHours, s.MaxHoursPerDay)
		assert.LessOrEqual(t, b.OT15Hours+b.OT20Hours, s.MaxOTHoursPerDay)
	}
}

func TestComputeHours_PublicHolidayIgnoresClocks(t *testing.T) {
	e := workedEntry("2024-01-01", 8, 0, 17, 0)
	e.LeaveType = timesheet.LeavePublicHoliday

	assert.Equal(t, timesheet.HourBuckets{}, timesheet.ComputeHours(e, defaultSettings()))
}

func TestApplyBuckets_PublicHolidayKeepsStoredHours(t *testing.T) {
	e := timesheet.DailyEntry{
		Date:        "2024-01-01",
		LeaveType:   timesheet.LeavePublicHoliday,
		NormalHours: 8,
	}
	timesheet.ApplyBuckets(&e, defaultSettings())

	assert.Equal(t, 8.0, e.NormalHours)
	assert.Equal(t, 8.0, e.TotalHours)
}

func TestWeekStart_SundayBelongsToPreviousWeek(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Sunday, sunday.Weekday())

	got := timesheet.WeekStart(sunday)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStart_MidWeekAndMonday(t *testing.T) {
	wednesday := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), timesheet.WeekStart(wednesday))

	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, timesheet.WeekStart(monday))
}

func TestRecomputeTotals_SumsEntries(t *testing.T) {
	week := &timesheet.WeeklyTimesheet{
		TotalHours: 99, // stale, must be overwritten
		DailyEntries: timesheet.DailyEntries{
			{Date: "2024-01-01", NormalHours: 8, TotalHours: 8},
			{Date: "2024-01-02", NormalHours: 8, OT15Hours: 2, TotalHours: 10},
			{Date: "2024-01-03", IsAbsent: true},
		},
	}

	timesheet.RecomputeTotals(week)

	assert.Equal(t, 16.0, week.TotalNormalHours)
	assert.Equal(t, 2.0, week.TotalOT15Hours)
	assert.Equal(t, 0.0, week.TotalOT20Hours)
	assert.Equal(t, 18.0, week.TotalHours)
}
