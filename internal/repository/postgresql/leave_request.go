package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, total_days, reason,
			status, submitted_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7,
			$8, NOW(),
			NOW(), NOW()
		) RETURNING submitted_at, created_at, updated_at
	`

	request.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays, request.Reason,
		request.Status,
	).Scan(&request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return request, nil
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id,
	lr.start_date, lr.end_date, lr.total_days, lr.reason,
	lr.status, lr.decided_by, lr.decided_at, lr.rejection_reason,
	lr.submitted_at, lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row, withNames bool) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	dest := []interface{}{
		&req.ID, &req.EmployeeID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.TotalDays, &req.Reason,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	}
	var leaveTypeName, employeeName string
	if withNames {
		dest = append(dest, &leaveTypeName, &employeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return leave.LeaveRequest{}, err
	}
	if withNames {
		req.LeaveTypeName = &leaveTypeName
		req.EmployeeName = &employeeName
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

// GetByIDForUpdate locks the request row so concurrent decisions serialize.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
		FOR UPDATE
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

// GetByEmployeeID returns all requests for an employee in submission order.
func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1
		ORDER BY lr.submitted_at ASC, lr.created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// UpdateDecision writes the terminal status of a request.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		request.Status, request.DecidedBy, request.DecidedAt, request.RejectionReason, request.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update decision for leave request %s: %w", request.ID, err)
	}
	return nil
}
