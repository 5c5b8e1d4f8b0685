package leave

import "context"

// LeaveService is the application surface for leave requests and balances.
type LeaveService interface {
	SubmitRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	DecideRequest(ctx context.Context, req DecideRequestRequest) (LeaveRequestResponse, error)
	GetRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	GetBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
	ListHistory(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
	AccrueBalances(ctx context.Context) error
}
