package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			id, name, code, default_quota, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	leaveType.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.Code, leaveType.DefaultQuota, leaveType.IsActive,
	).Scan(&leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to insert leave type: %w", err)
	}

	return leaveType, nil
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, code, default_quota, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.DefaultQuota, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

func (r *leaveTypeRepositoryImpl) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, code, default_quota, is_active, created_at, updated_at
		FROM leave_types
		WHERE code = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, code).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.DefaultQuota, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, code, default_quota, is_active, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Code, &lt.DefaultQuota, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return types, nil
}
