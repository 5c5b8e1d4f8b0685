package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year, total_days, used_days,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	balance.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		balance.ID, balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.TotalDays, balance.UsedDays,
	).Scan(&balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to insert leave balance: %w", err)
	}

	balance.AvailableDays = balance.TotalDays - balance.UsedDays
	return balance, nil
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
			   lb.total_days, lb.used_days, lb.total_days - lb.used_days AS available_days,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		var leaveTypeName string
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.TotalDays, &b.UsedDays, &b.AvailableDays,
			&b.CreatedAt, &b.UpdatedAt,
			&leaveTypeName,
		); err != nil {
			return nil, err
		}
		b.LeaveTypeName = &leaveTypeName
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return balances, nil
}

// GetForUpdate locks the balance row until the surrounding transaction ends.
func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   total_days, used_days, total_days - used_days AS available_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		FOR UPDATE
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.TotalDays, &b.UsedDays, &b.AvailableDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return b, nil
}

func (r *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, balanceID string, days float64) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, days, balanceID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to update used days for balance %s: %w", balanceID, err)
	}
	return nil
}

func (r *leaveBalanceRepositoryImpl) Exists(ctx context.Context, employeeID, leaveTypeID string, year int) (bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_balances
			WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(&exists)

	return exists, err
}
