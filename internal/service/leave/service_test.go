package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/sge-backend-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-01-01 is a Wednesday.
var fixedNow = time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc  *LeaveServiceImpl
	repo leave.LeaveRequestRepository
}

func newFixture(t *testing.T, employeeIDs ...string) fixture {
	t.Helper()
	return newFixtureWithPolicy(t, false, employeeIDs...)
}

func newFixtureWithPolicy(t *testing.T, enforceTransitions bool, employeeIDs ...string) fixture {
	t.Helper()

	db, err := sqlite.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	empRepo := sqlite.NewEmployeeRepository(db)
	for _, id := range employeeIDs {
		_, err := empRepo.Create(context.Background(), employee.Employee{ID: id, FullName: id, CreatedAt: fixedNow})
		require.NoError(t, err)
	}

	repo := sqlite.NewLeaveRequestRepository(db)
	svc := NewLeaveService(repo, empRepo, NewBalanceLedger(repo, 25), keylock.New(), enforceTransitions).(*LeaveServiceImpl)
	svc.now = func() time.Time { return fixedNow }

	return fixture{svc: svc, repo: repo}
}

// seedApproved stores an approved request directly, bypassing the date checks.
func (f fixture) seedApproved(t *testing.T, id, employeeID string, start, end time.Time, days int) {
	t.Helper()
	_, err := f.repo.Create(context.Background(), leave.LeaveRequest{
		ID:            id,
		EmployeeID:    employeeID,
		LeaveType:     leave.LeaveTypeAnnual,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: days,
		Status:        leave.StatusApproved,
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	})
	require.NoError(t, err)
}

func request(employeeID, start, end string) leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		EmployeeID: employeeID,
		LeaveType:  string(leave.LeaveTypeAnnual),
		StartDate:  start,
		EndDate:    end,
	}
}

func TestCreateLeaveRequest_CountsBusinessDays(t *testing.T) {
	f := newFixture(t, "emp-1")

	resp, err := f.svc.CreateLeaveRequest(context.Background(), request("emp-1", "2025-01-01", "2025-01-07"))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.DaysRequested)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, "2025-01-01", resp.StartDate)
	assert.Nil(t, resp.ReviewedAt)
}

func TestCreateLeaveRequest_InsufficientDays(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	// 20 days already approved this year.
	f.seedApproved(t, "lr-1", "emp-1", d(2025, time.February, 3), d(2025, time.February, 28), 20)

	// 2025-03-03 (Mon) to 2025-03-10 (Mon) is 6 business days.
	_, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-03-03", "2025-03-10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrInsufficientLeaveDays)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "6", appErr.Details["required"])
	assert.Equal(t, "5", appErr.Details["available"])

	// Exactly the remaining five days is allowed.
	resp, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-03-03", "2025-03-07"))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.DaysRequested)
}

func TestCreateLeaveRequest_Validation(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	_, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2024-12-31", "2025-01-02"))
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "start_date")

	_, err = f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-10", "2025-01-09"))
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "end_date")

	_, err = f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{EmployeeID: "emp-1", LeaveType: "holiday", StartDate: "2025-01-10", EndDate: "2025-01-10"})
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "leave_type")

	_, err = f.svc.CreateLeaveRequest(ctx, request("ghost", "2025-01-10", "2025-01-10"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateLeaveRequest_StartingTodayIsAllowed(t *testing.T) {
	f := newFixture(t, "emp-1")

	_, err := f.svc.CreateLeaveRequest(context.Background(), request("emp-1", "2025-01-01", "2025-01-01"))
	assert.NoError(t, err)
}

func TestCreateLeaveRequest_Conflicts(t *testing.T) {
	f := newFixture(t, "emp-1", "emp-2")
	ctx := context.Background()

	_, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end string
		conflict   bool
	}{
		{"shares the last day", "2025-01-10", "2025-01-14", true},
		{"shares the first day", "2025-01-02", "2025-01-06", true},
		{"contained", "2025-01-07", "2025-01-08", true},
		{"ends the day before", "2025-01-02", "2025-01-05", false},
		{"starts the day after", "2025-01-11", "2025-01-13", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			has, err := f.svc.HasConflict(ctx, leave.ConflictCheckRequest{EmployeeID: "emp-1", StartDate: c.start, EndDate: c.end})
			require.NoError(t, err)
			assert.Equal(t, c.conflict, has)
		})
	}

	_, err = f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-08", "2025-01-09"))
	assert.ErrorIs(t, err, leave.ErrConflictingLeaveRequest)

	// Other employees are unaffected.
	_, err = f.svc.CreateLeaveRequest(ctx, request("emp-2", "2025-01-08", "2025-01-09"))
	assert.NoError(t, err)
}

func TestHasConflict_ExcludeID(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	has, err := f.svc.HasConflict(ctx, leave.ConflictCheckRequest{EmployeeID: "emp-1", StartDate: "2025-01-07", EndDate: "2025-01-08", ExcludeID: &created.ID})
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasConflict_RejectedRequestsStillBlock(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: "rejected"})
	require.NoError(t, err)

	has, err := f.svc.HasConflict(ctx, leave.ConflictCheckRequest{EmployeeID: "emp-1", StartDate: "2025-01-07", EndDate: "2025-01-07"})
	require.NoError(t, err)
	assert.True(t, has)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	comments := "enjoy"
	approved, err := f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: "approved", ManagerComments: &comments})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	assert.Equal(t, comments, *approved.ManagerComments)
	require.NotNil(t, approved.ReviewedAt)
	assert.True(t, fixedNow.Equal(*approved.ReviewedAt))

	stored, err := f.svc.GetLeaveRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), stored.Status)

	_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: "missing", Status: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: "archived"})
	assert.ErrorIs(t, err, validator.ErrValidation)
}

func TestUpdateStatus_AnyStatusOverwritesByDefault(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	for _, status := range []string{"pending", "approved", "rejected", "pending", "cancelled", "approved"} {
		resp, err := f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: status})
		require.NoError(t, err, status)
		assert.Equal(t, status, resp.Status)

		stored, err := f.svc.GetLeaveRequest(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
	}
}

func TestUpdateStatus_EnforcedTransitions(t *testing.T) {
	f := newFixtureWithPolicy(t, true, "emp-1")
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: "pending"})
	assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition)

	approved, err := f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)

	for _, status := range []string{"pending", "rejected", "cancelled", "approved"} {
		_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: status})
		assert.ErrorIs(t, err, leave.ErrInvalidStatusTransition, status)
	}

	stored, err := f.svc.GetLeaveRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), stored.Status)
}

func TestApprovalReducesBalance(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	created, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-10"))
	require.NoError(t, err)

	left, err := f.svc.RemainingDays(ctx, "emp-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 25, left, "pending requests do not consume entitlement")

	_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)

	balance, err := f.svc.GetLeaveBalance(ctx, "emp-1", 0)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveBalanceResponse{EmployeeID: "emp-1", Year: 2025, Entitlement: 25, Taken: 5, Remaining: 20}, balance)
}

func TestListing(t *testing.T) {
	f := newFixture(t, "emp-1", "emp-2")
	ctx := context.Background()

	first, err := f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-01-06", "2025-01-07"))
	require.NoError(t, err)
	_, err = f.svc.CreateLeaveRequest(ctx, request("emp-1", "2025-02-03", "2025-02-04"))
	require.NoError(t, err)
	_, err = f.svc.CreateLeaveRequest(ctx, request("emp-2", "2025-01-06", "2025-01-07"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, leave.UpdateStatusRequest{ID: first.ID, Status: "cancelled"})
	require.NoError(t, err)

	mine, err := f.svc.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	cancelled, err := f.svc.ListByStatus(ctx, "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)

	_, err = f.svc.ListByStatus(ctx, "unknown")
	assert.ErrorIs(t, err, validator.ErrValidation)
}
