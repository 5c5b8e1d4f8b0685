package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

// AccrueBalances grants each employee the default quota of every
// active leave type for the current year. Existing balance rows are
// left alone, so the job is safe to run repeatedly.
func (l *LeaveServiceImpl) AccrueBalances(ctx context.Context) error {
	year := currentYear()

	employees, err := l.EmployeeRepository.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	leaveTypes, err := l.LeaveTypeRepository.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leave types: %w", err)
	}

	var granted int
	for _, emp := range employees {
		for _, leaveType := range leaveTypes {
			if !leaveType.IsActive || leaveType.DefaultQuota <= 0 {
				continue
			}

			exists, err := l.LeaveBalanceRepository.Exists(ctx, emp.ID, leaveType.ID, year)
			if err != nil {
				return fmt.Errorf("failed to check leave balance: %w", err)
			}
			if exists {
				continue
			}

			_, err = l.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
				EmployeeID:  emp.ID,
				LeaveTypeID: leaveType.ID,
				Year:        year,
				TotalDays:   leaveType.DefaultQuota,
			})
			if err != nil {
				return fmt.Errorf("failed to create leave balance: %w", err)
			}
			granted++
		}
	}

	if granted > 0 {
		slog.Info("Leave balances accrued", "year", year, "granted", granted)
	}

	return nil
}

func currentYear() int {
	return time.Now().Year()
}
