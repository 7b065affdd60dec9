package attendance

import (
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// hoursPrecision is the number of decimal places kept on derived hours.
const hoursPrecision = 4

var hourNanos = decimal.NewFromInt(int64(time.Hour))

// HoursCalculator splits a worked span into normal and overtime hours.
type HoursCalculator struct {
	NormalHours decimal.Decimal
}

func NewHoursCalculator(normalHoursPerDay int) HoursCalculator {
	return HoursCalculator{NormalHours: decimal.NewFromInt(int64(normalHoursPerDay))}
}

// Apply sets WorkedHours and OvertimeHours from the clock times and break.
// Records missing either clock time are left untouched. Negative spans clamp
// worked hours to zero.
func (c HoursCalculator) Apply(a *attendance.Attendance) {
	if a.ClockIn == nil || a.ClockOut == nil {
		return
	}

	span := *a.ClockOut - *a.ClockIn
	if a.BreakDuration != nil {
		span -= *a.BreakDuration
	}

	raw := decimal.NewFromInt(int64(span)).Div(hourNanos).Round(hoursPrecision)

	if raw.LessThanOrEqual(c.NormalHours) {
		a.WorkedHours = decimal.Max(raw, decimal.Zero)
		a.OvertimeHours = decimal.Zero
		return
	}

	a.WorkedHours = c.NormalHours
	a.OvertimeHours = raw.Sub(c.NormalHours)
}
