package leave

import (
	"context"
)

// LeaveTypeRepository - interface for the leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// LeaveBalanceRepository - interface for the leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	// GetForUpdate locks the balance row for the duration of the
	// surrounding transaction.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	AddUsedDays(ctx context.Context, balanceID string, days float64) error
	Exists(ctx context.Context, employeeID, leaveTypeID string, year int) (bool, error)
}

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the request row so concurrent decisions
	// serialize on it.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	UpdateDecision(ctx context.Context, request LeaveRequest) error
}
