package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		employees = append(employees, emp)
	}
	return employees, nil
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	f.types[leaveType.ID] = leaveType
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	leaveType, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	for _, leaveType := range f.types {
		if leaveType.Code == code {
			return leaveType, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	types := make([]leave.LeaveType, 0, len(f.types))
	for _, leaveType := range f.types {
		types = append(types, leaveType)
	}
	return types, nil
}

type fakeLeaveBalanceRepo struct {
	balances map[string]leave.LeaveBalance
	nextID   int
}

func (f *fakeLeaveBalanceRepo) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	f.nextID++
	balance.ID = fmt.Sprintf("balance-%d", f.nextID)
	balance.AvailableDays = balance.TotalDays - balance.UsedDays
	f.balances[balance.ID] = balance
	return balance, nil
}

func (f *fakeLeaveBalanceRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var balances []leave.LeaveBalance
	for _, balance := range f.balances {
		if balance.EmployeeID == employeeID && balance.Year == year {
			balances = append(balances, balance)
		}
	}
	return balances, nil
}

func (f *fakeLeaveBalanceRepo) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	for _, balance := range f.balances {
		if balance.EmployeeID == employeeID && balance.LeaveTypeID == leaveTypeID && balance.Year == year {
			return balance, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeLeaveBalanceRepo) AddUsedDays(ctx context.Context, balanceID string, days float64) error {
	balance, ok := f.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	balance.UsedDays += days
	balance.AvailableDays = balance.TotalDays - balance.UsedDays
	f.balances[balanceID] = balance
	return nil
}

func (f *fakeLeaveBalanceRepo) Exists(ctx context.Context, employeeID, leaveTypeID string, year int) (bool, error) {
	_, err := f.GetForUpdate(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeLeaveRequestRepo struct {
	requests []leave.LeaveRequest
	nextID   int
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("request-%d", f.nextID)
	request.SubmittedAt = time.Now()
	f.requests = append(f.requests, request)
	return request, nil
}

func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	for _, request := range f.requests {
		if request.ID == id {
			return request, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLeaveRequestRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (f *fakeLeaveRequestRepo) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	for i := range f.requests {
		if f.requests[i].ID == request.ID {
			f.requests[i] = request
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

type serviceFixture struct {
	service   leave.LeaveService
	employees *fakeEmployeeRepo
	types     *fakeLeaveTypeRepo
	balances  *fakeLeaveBalanceRepo
	requests  *fakeLeaveRequestRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	fixture := &serviceFixture{
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{}},
		types:     &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{}},
		balances:  &fakeLeaveBalanceRepo{balances: map[string]leave.LeaveBalance{}},
		requests:  &fakeLeaveRequestRepo{},
	}
	fixture.service = NewLeaveService(fakeTxManager{}, fixture.types, fixture.balances, fixture.requests, fixture.employees)

	fixture.employees.employees["emp-1"] = employee.Employee{
		ID:       "emp-1",
		FullName: "Alice Johnson",
		Email:    "alice@example.com",
	}
	fixture.types.types["type-annual"] = leave.LeaveType{
		ID:           "type-annual",
		Name:         "Annual Leave",
		Code:         "annual",
		DefaultQuota: 15,
		IsActive:     true,
	}

	return fixture
}

func (f *serviceFixture) seedBalance(t *testing.T, days float64, year int) leave.LeaveBalance {
	t.Helper()

	balance, err := f.balances.Create(context.Background(), leave.LeaveBalance{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-annual",
		Year:        year,
		TotalDays:   days,
	})
	require.NoError(t, err)
	return balance
}

func submitRequest(t *testing.T, f *serviceFixture, start, end string) leave.LeaveRequestResponse {
	t.Helper()

	response, err := f.service.SubmitRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-annual",
		StartDate:   start,
		EndDate:     end,
		Reason:      "family trip",
	})
	require.NoError(t, err)
	return response
}

func TestSubmitRequest(t *testing.T) {
	t.Run("creates a pending request with the inclusive day count", func(t *testing.T) {
		fixture := newServiceFixture(t)

		response := submitRequest(t, fixture, "2026-03-02", "2026-03-06")

		assert.Equal(t, string(leave.LeaveRequestStatusPending), response.Status)
		assert.Equal(t, float64(5), response.TotalDays)
		assert.Equal(t, "Alice Johnson", response.EmployeeName)
		assert.Equal(t, "Annual Leave", response.LeaveTypeName)
	})

	t.Run("single day request counts as one day", func(t *testing.T) {
		fixture := newServiceFixture(t)

		response := submitRequest(t, fixture, "2026-03-02", "2026-03-02")

		assert.Equal(t, float64(1), response.TotalDays)
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		fixture := newServiceFixture(t)

		_, err := fixture.service.SubmitRequest(context.Background(), leave.CreateLeaveRequestRequest{
			EmployeeID:  "emp-1",
			LeaveTypeID: "type-annual",
			StartDate:   "2026-03-06",
			EndDate:     "2026-03-02",
		})

		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
		assert.Empty(t, fixture.requests.requests)
	})

	t.Run("rejects an unknown employee", func(t *testing.T) {
		fixture := newServiceFixture(t)

		_, err := fixture.service.SubmitRequest(context.Background(), leave.CreateLeaveRequestRequest{
			EmployeeID:  "emp-ghost",
			LeaveTypeID: "type-annual",
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("rejects an inactive leave type", func(t *testing.T) {
		fixture := newServiceFixture(t)
		fixture.types.types["type-retired"] = leave.LeaveType{
			ID:       "type-retired",
			Name:     "Retired Leave",
			Code:     "retired",
			IsActive: false,
		}

		_, err := fixture.service.SubmitRequest(context.Background(), leave.CreateLeaveRequestRequest{
			EmployeeID:  "emp-1",
			LeaveTypeID: "type-retired",
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
		})

		assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
	})
}

func TestDecideRequest(t *testing.T) {
	t.Run("approval deducts the balance", func(t *testing.T) {
		fixture := newServiceFixture(t)
		balance := fixture.seedBalance(t, 10, 2026)
		request := submitRequest(t, fixture, "2026-03-02", "2026-03-06")

		response, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: request.ID,
			Approve:   true,
			DecidedBy: "mgr-1",
		})
		require.NoError(t, err)

		assert.Equal(t, string(leave.LeaveRequestStatusApproved), response.Status)
		require.NotNil(t, response.DecidedBy)
		assert.Equal(t, "mgr-1", *response.DecidedBy)
		assert.NotNil(t, response.DecidedAt)

		updated := fixture.balances.balances[balance.ID]
		assert.Equal(t, float64(5), updated.UsedDays)
		assert.Equal(t, float64(5), updated.AvailableDays)
	})

	t.Run("approval fails when the balance is short and leaves it untouched", func(t *testing.T) {
		fixture := newServiceFixture(t)
		balance := fixture.seedBalance(t, 10, 2026)
		submitRequest(t, fixture, "2026-03-02", "2026-03-06")

		first := submitRequest(t, fixture, "2026-04-01", "2026-04-05")
		_, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: first.ID,
			Approve:   true,
			DecidedBy: "mgr-1",
		})
		require.NoError(t, err)

		second := submitRequest(t, fixture, "2026-05-04", "2026-05-11")
		_, err = fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: second.ID,
			Approve:   true,
			DecidedBy: "mgr-1",
		})
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

		untouched := fixture.balances.balances[balance.ID]
		assert.Equal(t, float64(5), untouched.AvailableDays)

		pending, err := fixture.requests.GetByID(context.Background(), second.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusPending, pending.Status)
	})

	t.Run("approval without any balance row fails", func(t *testing.T) {
		fixture := newServiceFixture(t)
		request := submitRequest(t, fixture, "2026-03-02", "2026-03-06")

		_, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: request.ID,
			Approve:   true,
			DecidedBy: "mgr-1",
		})

		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("rejection records the reason and keeps the balance", func(t *testing.T) {
		fixture := newServiceFixture(t)
		balance := fixture.seedBalance(t, 10, 2026)
		request := submitRequest(t, fixture, "2026-03-02", "2026-03-06")

		response, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID:       request.ID,
			Approve:         false,
			DecidedBy:       "mgr-1",
			RejectionReason: "project deadline",
		})
		require.NoError(t, err)

		assert.Equal(t, string(leave.LeaveRequestStatusRejected), response.Status)
		require.NotNil(t, response.RejectionReason)
		assert.Equal(t, "project deadline", *response.RejectionReason)

		untouched := fixture.balances.balances[balance.ID]
		assert.Equal(t, float64(10), untouched.AvailableDays)
	})

	t.Run("a decided request cannot be decided again", func(t *testing.T) {
		fixture := newServiceFixture(t)
		fixture.seedBalance(t, 10, 2026)
		request := submitRequest(t, fixture, "2026-03-02", "2026-03-06")

		_, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: request.ID,
			Approve:   false,
			DecidedBy: "mgr-1",
		})
		require.NoError(t, err)

		_, err = fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: request.ID,
			Approve:   true,
			DecidedBy: "mgr-2",
		})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyDecided)
	})

	t.Run("unknown request ID", func(t *testing.T) {
		fixture := newServiceFixture(t)

		_, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: "request-ghost",
			Approve:   true,
			DecidedBy: "mgr-1",
		})

		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestGetBalances(t *testing.T) {
	t.Run("returns the computed available days", func(t *testing.T) {
		fixture := newServiceFixture(t)
		balance := fixture.seedBalance(t, 12, 2026)
		require.NoError(t, fixture.balances.AddUsedDays(context.Background(), balance.ID, 3))

		balances, err := fixture.service.GetBalances(context.Background(), "emp-1", 2026)
		require.NoError(t, err)

		require.Len(t, balances, 1)
		assert.Equal(t, float64(12), balances[0].TotalDays)
		assert.Equal(t, float64(3), balances[0].UsedDays)
		assert.Equal(t, float64(9), balances[0].AvailableDays)
	})

	t.Run("unknown employee", func(t *testing.T) {
		fixture := newServiceFixture(t)

		_, err := fixture.service.GetBalances(context.Background(), "emp-ghost", 2026)

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestListHistory(t *testing.T) {
	t.Run("returns requests in submission order", func(t *testing.T) {
		fixture := newServiceFixture(t)
		fixture.seedBalance(t, 20, 2026)

		first := submitRequest(t, fixture, "2026-03-02", "2026-03-06")
		second := submitRequest(t, fixture, "2026-04-01", "2026-04-03")
		third := submitRequest(t, fixture, "2026-05-04", "2026-05-04")

		_, err := fixture.service.DecideRequest(context.Background(), leave.DecideRequestRequest{
			RequestID: second.ID,
			Approve:   true,
			DecidedBy: "mgr-1",
		})
		require.NoError(t, err)

		history, err := fixture.service.ListHistory(context.Background(), "emp-1")
		require.NoError(t, err)

		require.Len(t, history, 3)
		assert.Equal(t, first.ID, history[0].ID)
		assert.Equal(t, second.ID, history[1].ID)
		assert.Equal(t, third.ID, history[2].ID)
		assert.Equal(t, string(leave.LeaveRequestStatusApproved), history[1].Status)
	})

	t.Run("unknown employee", func(t *testing.T) {
		fixture := newServiceFixture(t)

		_, err := fixture.service.ListHistory(context.Background(), "emp-ghost")

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestAccrueBalances(t *testing.T) {
	fixture := newServiceFixture(t)

	service := fixture.service
	require.NoError(t, service.AccrueBalances(context.Background()))

	year := time.Now().Year()
	balances, err := fixture.balances.GetByEmployeeYear(context.Background(), "emp-1", year)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, float64(15), balances[0].TotalDays)

	// Running it again must not grant a second quota.
	require.NoError(t, service.AccrueBalances(context.Background()))
	balances, err = fixture.balances.GetByEmployeeYear(context.Background(), "emp-1", year)
	require.NoError(t, err)
	require.Len(t, balances, 1)
}
