package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

// SubmitRequest implements leave.LeaveService. The request starts out
// pending and touches no balance until it is approved.
func (l *LeaveServiceImpl) SubmitRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := l.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	request := leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   leave.RangeDays(startDate, endDate),
		Reason:      req.Reason,
		Status:      leave.LeaveRequestStatusPending,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	created.EmployeeName = &emp.FullName
	created.LeaveTypeName = &leaveType.Name

	return toLeaveRequestResponse(created), nil
}

// DecideRequest implements leave.LeaveService. Approval deducts the
// requested days from the balance of the start date's year; the row
// locks on the request and the balance keep concurrent decisions from
// double spending it. A rejection never touches the balance.
func (l *LeaveServiceImpl) DecideRequest(ctx context.Context, req leave.DecideRequestRequest) (leave.LeaveRequestResponse, error) {
	var decided leave.LeaveRequest

	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}

		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyDecided
		}

		now := time.Now()
		request.DecidedBy = &req.DecidedBy
		request.DecidedAt = &now

		if req.Approve {
			balance, err := l.LeaveBalanceRepository.GetForUpdate(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
			if err != nil {
				if err == leave.ErrBalanceNotFound {
					return leave.ErrInsufficientBalance
				}
				return err
			}

			if balance.AvailableDays < request.TotalDays {
				return leave.ErrInsufficientBalance
			}

			if err := l.LeaveBalanceRepository.AddUsedDays(ctx, balance.ID, request.TotalDays); err != nil {
				return fmt.Errorf("failed to deduct leave balance: %w", err)
			}

			request.Status = leave.LeaveRequestStatusApproved
		} else {
			request.Status = leave.LeaveRequestStatusRejected
			if req.RejectionReason != "" {
				request.RejectionReason = &req.RejectionReason
			}
		}

		if err := l.LeaveRequestRepository.UpdateDecision(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		decided = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(decided), nil
}
