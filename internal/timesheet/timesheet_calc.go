package timesheet

import (
	"math"
	"time"

	"go-payroll/internal/client"
)

// HourBuckets is the result of pushing one day's clocks through the
// rounding and bucketing rules.
type HourBuckets struct {
	NormalHours float64
	OT15Hours   float64
	OT20Hours   float64
	TotalHours  float64
}

// ot1.5 covers at most the first two overtime hours; anything beyond
// that is paid at the 2.0 tier.
const ot15TierHours = 2.0

// ComputeHours converts a day's clock pair (plus optional lunch break)
// into hour buckets. It is pure: same entry and settings always yield the
// same buckets. Missing clock-in or clock-out, an absent day, or a public
// holiday all yield zero buckets (holidays keep whatever buckets were
// stored on the entry, which is the caller's concern, not this function's).
func ComputeHours(entry DailyEntry, s client.TimesheetSettings) HourBuckets {
	if entry.IsAbsent || entry.LeaveType == LeavePublicHoliday {
		return HourBuckets{}
	}
	if entry.ClockIn == nil || entry.ClockOut == nil {
		return HourBuckets{}
	}

	s = s.Normalize()

	date, err := time.ParseInLocation("2006-01-02", entry.Date, entry.ClockIn.Location())
	if err != nil {
		return HourBuckets{}
	}

	clockIn := anchorToDate(*entry.ClockIn, date)
	clockOut := anchorToDate(*entry.ClockOut, date)

	workedMinutes := clockOut.Sub(clockIn).Minutes()

	if entry.LunchOut != nil && entry.LunchIn != nil {
		lunchOut := anchorToDate(*entry.LunchOut, date)
		lunchIn := anchorToDate(*entry.LunchIn, date)
		// inverted or zero-length lunch is skipped silently
		if lunchIn.After(lunchOut) {
			workedMinutes -= lunchIn.Sub(lunchOut).Minutes()
		}
	}

	if workedMinutes < 0 {
		workedMinutes = 0
	}

	rounded := roundMinutes(workedMinutes, s.MinuteIncrement, s.RoundingMethod)
	totalHours := rounded / 60

	return bucketHours(totalHours, s)
}

// anchorToDate recombines a timestamp's time-of-day with the entry's
// calendar date. Clock values sometimes arrive serialized with an
// unrelated date component; only the wall time is trusted.
func anchorToDate(t time.Time, date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0,
		date.Location(),
	)
}

func roundMinutes(minutes float64, increment int, method string) float64 {
	if increment <= 1 {
		return minutes
	}
	inc := float64(increment)
	switch method {
	case client.RoundUp:
		return math.Ceil(minutes/inc) * inc
	case client.RoundDown:
		return math.Floor(minutes/inc) * inc
	default: // nearest, half-up
		return math.Floor(minutes/inc+0.5) * inc
	}
}

func bucketHours(totalHours float64, s client.TimesheetSettings) HourBuckets {
	if totalHours < 0 {
		totalHours = 0
	}

	if totalHours <= s.MaxHoursPerDay {
		return HourBuckets{NormalHours: totalHours, TotalHours: totalHours}
	}

	b := HourBuckets{NormalHours: s.MaxHoursPerDay}
	if !s.AllowOvertime {
		// excess hours beyond the cap are dropped, not paid
		b.TotalHours = b.NormalHours
		return b
	}

	ot := math.Min(totalHours-s.MaxHoursPerDay, s.MaxOTHoursPerDay)
	b.OT15Hours = math.Min(ot, ot15TierHours)
	b.OT20Hours = ot - b.OT15Hours
	b.TotalHours = b.NormalHours + b.OT15Hours + b.OT20Hours
	return b
}

// ApplyBuckets runs one entry through the hours engine and writes the
// buckets back onto it. Public-holiday entries keep their stored buckets
// since no clocks back them; absent days zero out inside ComputeHours.
func ApplyBuckets(e *DailyEntry, s client.TimesheetSettings) {
	if e.LeaveType == LeavePublicHoliday {
		e.TotalHours = e.NormalHours + e.OT15Hours + e.OT20Hours
		return
	}
	b := ComputeHours(*e, s)
	e.NormalHours = b.NormalHours
	e.OT15Hours = b.OT15Hours
	e.OT20Hours = b.OT20Hours
	e.TotalHours = b.TotalHours
}

// WeekStart returns the Monday that starts t's week, midnight in t's
// location. Sunday counts as day 7 of the previous week.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday -> previous Monday
	}
	return day.AddDate(0, 0, -offset)
}

// RecomputeTotals resums the persisted totals from the entries. Stored
// totals are never the source of truth.
func RecomputeTotals(t *WeeklyTimesheet) {
	t.TotalNormalHours = 0
	t.TotalOT15Hours = 0
	t.TotalOT20Hours = 0
	t.TotalHours = 0
	for _, e := range t.DailyEntries {
		t.TotalNormalHours += e.NormalHours
		t.TotalOT15Hours += e.OT15Hours
		t.TotalOT20Hours += e.OT20Hours
		t.TotalHours += e.TotalHours
	}
}
