package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotesSeparator joins notes appended over the life of a record.
const NotesSeparator = "; "

// Attendance is the single record of one employee on one calendar day.
// ClockIn, ClockOut and BreakDuration are offsets from midnight of Date.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	ClockIn       *time.Duration
	ClockOut      *time.Duration
	BreakDuration *time.Duration

	// Derived by HoursCalculator, never set by callers.
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type State string

const (
	StateOpen       State = "open"
	StateClockedIn  State = "clocked_in"
	StateClockedOut State = "clocked_out"
)

// State reports where the record is in the clock-in/clock-out sequence.
// A record without a clock-in is open, whatever else it carries.
func (a Attendance) State() State {
	switch {
	case a.ClockIn == nil:
		return StateOpen
	case a.ClockOut == nil:
		return StateClockedIn
	default:
		return StateClockedOut
	}
}

// AppendNotes adds notes after any existing text. Empty input is ignored.
func (a *Attendance) AppendNotes(notes string) {
	if notes == "" {
		return
	}
	if a.Notes == "" {
		a.Notes = notes
		return
	}
	a.Notes = a.Notes + NotesSeparator + notes
}

// DateOf returns the wall-clock calendar date of t, in t's own location, as
// UTC midnight. Clock timestamps reach it already converted to UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeOfDay returns the wall clock of t as an offset from midnight.
func TimeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
