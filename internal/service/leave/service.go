package leave

import (
	"context"
	"fmt"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.TxManager
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewLeaveService(
	tx database.TxManager,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
	}
}

// GetRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(request), nil
}

// GetBalances implements leave.LeaveService. A zero year means the
// current year.
func (l *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	if year == 0 {
		year = currentYear()
	}

	balances, err := l.LeaveBalanceRepository.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}

	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, balance := range balances {
		responses = append(responses, toLeaveBalanceResponse(balance))
	}

	return responses, nil
}

// ListHistory implements leave.LeaveService. Requests come back in
// submission order, oldest first.
func (l *LeaveServiceImpl) ListHistory(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	requests, err := l.LeaveRequestRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveRequestResponse(request))
	}

	return responses, nil
}

// ListTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return l.LeaveTypeRepository.List(ctx)
}

func toLeaveRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	response := leave.LeaveRequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		LeaveTypeID:     request.LeaveTypeID,
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		TotalDays:       request.TotalDays,
		Reason:          request.Reason,
		Status:          string(request.Status),
		SubmittedAt:     request.SubmittedAt,
		DecidedBy:       request.DecidedBy,
		DecidedAt:       request.DecidedAt,
		RejectionReason: request.RejectionReason,
	}

	if request.EmployeeName != nil {
		response.EmployeeName = *request.EmployeeName
	}
	if request.LeaveTypeName != nil {
		response.LeaveTypeName = *request.LeaveTypeName
	}

	return response
}

func toLeaveBalanceResponse(balance leave.LeaveBalance) leave.LeaveBalanceResponse {
	response := leave.LeaveBalanceResponse{
		ID:            balance.ID,
		EmployeeID:    balance.EmployeeID,
		LeaveTypeID:   balance.LeaveTypeID,
		Year:          balance.Year,
		TotalDays:     balance.TotalDays,
		UsedDays:      balance.UsedDays,
		AvailableDays: balance.AvailableDays,
	}

	if balance.LeaveTypeName != nil {
		response.LeaveTypeName = *balance.LeaveTypeName
	}

	return response
}
