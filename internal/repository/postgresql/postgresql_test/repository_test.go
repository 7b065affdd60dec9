package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/sge-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestEmployee(t *testing.T, ctx context.Context, setup *TestDatabaseSetup, id string) {
	t.Helper()
	_, err := postgresql.NewEmployeeRepository(setup.DB).Create(ctx, employee.Employee{
		ID:        id,
		FullName:  "Employee " + id,
		Email:     id + "@example.com",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestEmployeeRepository_Exists(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	exists, err := repo.Exists(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, exists)

	createTestEmployee(t, ctx, setup, "emp-1")

	exists, err = repo.Exists(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_CreateAndUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	createTestEmployee(t, ctx, setup, "emp-1")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	in := 9 * time.Hour
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := repo.Create(ctx, attendance.Attendance{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       day(2025, time.March, 14),
		ClockIn:    &in,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "att-1")
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.March, 14), got.Date)
	assert.Equal(t, in, *got.ClockIn)
	assert.Nil(t, got.ClockOut)

	out := 18 * time.Hour
	brk := time.Hour
	got.ClockOut = &out
	got.BreakDuration = &brk
	got.WorkedHours = decimal.NewFromInt(8)
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, "att-1")
	require.NoError(t, err)
	assert.Equal(t, out, *reloaded.ClockOut)
	assert.Equal(t, brk, *reloaded.BreakDuration)
	assert.True(t, decimal.NewFromInt(8).Equal(reloaded.WorkedHours))
	assert.True(t, reloaded.OvertimeHours.IsZero())

	err = repo.Update(ctx, attendance.Attendance{ID: "missing"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_DuplicateDay(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	createTestEmployee(t, ctx, setup, "emp-1")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	now := time.Now().UTC()
	record := attendance.Attendance{ID: "att-1", EmployeeID: "emp-1", Date: day(2025, time.March, 14), CreatedAt: now, UpdatedAt: now}
	_, err := repo.Create(ctx, record)
	require.NoError(t, err)

	record.ID = "att-2"
	_, err = repo.Create(ctx, record)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrDuplicateRecord))
}

func TestLeaveRequestRepository_FindByYearAndStatus(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	createTestEmployee(t, ctx, setup, "emp-1")
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	now := time.Now().UTC()
	for _, r := range []leave.LeaveRequest{
		{ID: "lr-1", EmployeeID: "emp-1", LeaveType: leave.LeaveTypeAnnual, StartDate: day(2025, time.January, 6), EndDate: day(2025, time.January, 10), DaysRequested: 5, Status: leave.StatusApproved},
		{ID: "lr-2", EmployeeID: "emp-1", LeaveType: leave.LeaveTypeAnnual, StartDate: day(2024, time.December, 30), EndDate: day(2025, time.January, 2), DaysRequested: 4, Status: leave.StatusApproved},
		{ID: "lr-3", EmployeeID: "emp-1", LeaveType: leave.LeaveTypeSick, StartDate: day(2025, time.March, 3), EndDate: day(2025, time.March, 3), DaysRequested: 1, Status: leave.StatusPending},
	} {
		r.CreatedAt, r.UpdatedAt = now, now
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	approved, err := repo.Find(ctx, leave.LeaveRequestFilter{EmployeeID: "emp-1", Status: leave.StatusApproved, StartYear: 2025})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "lr-1", approved[0].ID)

	approvedAnyYear, err := repo.Find(ctx, leave.LeaveRequestFilter{Status: leave.StatusApproved})
	require.NoError(t, err)
	require.Len(t, approvedAnyYear, 2)
	assert.Equal(t, "lr-2", approvedAnyYear[0].ID)

	pending, err := repo.Find(ctx, leave.LeaveRequestFilter{Status: leave.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Nil(t, pending[0].ReviewedAt)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	boom := errors.New("boom")
	err := postgresql.WithTransaction(ctx, setup.DB, func(ctx context.Context) error {
		_, err := repo.Create(ctx, employee.Employee{ID: "emp-tx", FullName: "Tx", CreatedAt: time.Now().UTC()})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := repo.Exists(ctx, "emp-tx")
	require.NoError(t, err)
	assert.False(t, exists)
}
