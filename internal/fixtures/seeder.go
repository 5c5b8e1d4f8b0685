package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

// Every demo account starts with this password.
const defaultPassword = "password123"

type Seeder struct {
	employees employee.EmployeeRepository
	types     leave.LeaveTypeRepository
	balances  leave.LeaveBalanceRepository
}

func NewSeeder(
	employeeRepo employee.EmployeeRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
) *Seeder {
	return &Seeder{
		employees: employeeRepo,
		types:     leaveTypeRepo,
		balances:  leaveBalanceRepo,
	}
}

// Run seeds the default leave types and the demo roster. An installation
// that already has employees is left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	typeIDs, err := s.seedLeaveTypes(ctx)
	if err != nil {
		return err
	}

	existing, err := s.employees.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	year := time.Now().Year()
	for _, seed := range DefaultEmployees() {
		emp, err := s.employees.Create(ctx, employee.Employee{
			FullName:     seed.FullName,
			Email:        seed.Email,
			Department:   seed.Department,
			PasswordHash: string(hash),
			IsApprover:   seed.IsApprover,
		})
		if err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", seed.Email, err)
		}

		for code, days := range seed.Balances {
			typeID, ok := typeIDs[code]
			if !ok {
				continue
			}

			_, err := s.balances.Create(ctx, leave.LeaveBalance{
				EmployeeID:  emp.ID,
				LeaveTypeID: typeID,
				Year:        year,
				TotalDays:   days,
			})
			if err != nil {
				return fmt.Errorf("failed to seed balance %s/%s: %w", seed.Email, code, err)
			}
		}
	}

	slog.Info("Seeded demo employees and balances", "employees", len(DefaultEmployees()), "year", year)
	return nil
}

func (s *Seeder) seedLeaveTypes(ctx context.Context) (map[string]string, error) {
	typeIDs := make(map[string]string)

	for _, leaveType := range DefaultLeaveTypes() {
		existing, err := s.types.GetByCode(ctx, leaveType.Code)
		if err == nil {
			typeIDs[existing.Code] = existing.ID
			continue
		}
		if !errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return nil, fmt.Errorf("failed to look up leave type %s: %w", leaveType.Code, err)
		}

		created, err := s.types.Create(ctx, leaveType)
		if err != nil {
			return nil, fmt.Errorf("failed to seed leave type %s: %w", leaveType.Code, err)
		}
		typeIDs[created.Code] = created.ID
	}

	return typeIDs, nil
}
