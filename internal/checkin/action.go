package checkin

import (
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/timesheet"
)

// Action is the closed set of clock events a worker can send. Anything
// outside these four values is rejected before touching storage.
type Action string

const (
	ActionClockIn  Action = "clockIn"
	ActionClockOut Action = "clockOut"
	ActionLunchOut Action = "lunchOut"
	ActionLunchIn  Action = "lunchIn"
)

func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionClockIn, ActionClockOut, ActionLunchOut, ActionLunchIn:
		return Action(s), true
	default:
		return "", false
	}
}

func (a Action) Message() string {
	switch a {
	case ActionClockIn:
		return "Clocked in successfully"
	case ActionClockOut:
		return "Clocked out successfully"
	case ActionLunchOut:
		return "Lunch break started"
	case ActionLunchIn:
		return "Lunch break ended"
	default:
		return ""
	}
}

// applyToRecord sets exactly the clock column this action names. A repeat
// of the same action overwrites the previous timestamp, which is the
// worker correcting their own tap.
func (a Action) applyToRecord(rec *attendance.Record, ts time.Time) {
	switch a {
	case ActionClockIn:
		rec.ClockIn = &ts
	case ActionClockOut:
		rec.ClockOut = &ts
	case ActionLunchOut:
		rec.LunchOut = &ts
	case ActionLunchIn:
		rec.LunchIn = &ts
	}
}

func (a Action) applyToEntry(e *timesheet.DailyEntry, ts time.Time) {
	switch a {
	case ActionClockIn:
		e.ClockIn = &ts
	case ActionClockOut:
		e.ClockOut = &ts
	case ActionLunchOut:
		e.LunchOut = &ts
	case ActionLunchIn:
		e.LunchIn = &ts
	}
}
