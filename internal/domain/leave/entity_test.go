package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveRequest_Overlaps(t *testing.T) {
	existing := LeaveRequest{StartDate: day(time.January, 12), EndDate: day(time.January, 15)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"touching start boundary", day(time.January, 10), day(time.January, 12), true},
		{"touching end boundary", day(time.January, 15), day(time.January, 20), true},
		{"contained", day(time.January, 13), day(time.January, 14), true},
		{"enclosing", day(time.January, 1), day(time.January, 31), true},
		{"before", day(time.January, 10), day(time.January, 11), false},
		{"after", day(time.January, 16), day(time.January, 18), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, existing.Overlaps(c.start, c.end))

			// symmetric
			other := LeaveRequest{StartDate: c.start, EndDate: c.end}
			assert.Equal(t, c.want, other.Overlaps(existing.StartDate, existing.EndDate))
		})
	}
}

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	req := CreateLeaveRequestRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-01-06",
		EndDate:    "2025-01-10",
	}
	assert.NoError(t, req.Validate())
	start, end := req.Dates()
	assert.Equal(t, day(time.January, 6), start)
	assert.Equal(t, day(time.January, 10), end)

	bad := CreateLeaveRequestRequest{LeaveType: "holiday", StartDate: "06/01/2025"}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "employee_id")
	assert.Contains(t, err.Error(), "leave_type")
	assert.Contains(t, err.Error(), "start_date")
	assert.Contains(t, err.Error(), "end_date")
}
