package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestSelect = `
	SELECT id, employee_id, leave_type, start_date, end_date, days_requested,
		   reason, status, manager_comments, reviewed_at, created_at, updated_at
	FROM leave_requests
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, days_requested,
			reason, status, manager_comments, reviewed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		req.ID,
		req.EmployeeID,
		string(req.LeaveType),
		req.StartDate,
		req.EndDate,
		req.DaysRequested,
		req.Reason,
		string(req.Status),
		req.ManagerComments,
		req.ReviewedAt,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_type = $1, start_date = $2, end_date = $3, days_requested = $4, reason = $5,
			status = $6, manager_comments = $7, reviewed_at = $8, updated_at = $9
		WHERE id = $10
	`

	tag, err := q.Exec(ctx, query,
		string(req.LeaveType),
		req.StartDate,
		req.EndDate,
		req.DaysRequested,
		req.Reason,
		string(req.Status),
		req.ManagerComments,
		req.ReviewedAt,
		req.UpdatedAt,
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by id: %w", err)
	}

	return req, nil
}

// Find implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Find(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != "" {
		add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.StartYear != 0 {
		add("EXTRACT(YEAR FROM start_date) = $%d", filter.StartYear)
	}

	query := leaveRequestSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_date, created_at"

	return r.query(ctx, query, args...)
}

// GetByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.query(ctx, leaveRequestSelect+` WHERE employee_id = $1 ORDER BY start_date, created_at`, employeeID)
}

func (r *leaveRequestRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave request rows: %w", err)
	}

	return requests, nil
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		req               leave.LeaveRequest
		leaveType, status string
	)

	err := row.Scan(
		&req.ID, &req.EmployeeID, &leaveType, &req.StartDate, &req.EndDate, &req.DaysRequested,
		&req.Reason, &status, &req.ManagerComments, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.LeaveType = leave.LeaveType(leaveType)
	req.Status = leave.LeaveStatus(status)
	req.StartDate = req.StartDate.UTC()
	req.EndDate = req.EndDate.UTC()

	return req, nil
}
