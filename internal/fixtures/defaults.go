package fixtures

import "github.com/leavehq/leave-backend-go/internal/domain/leave"

// DefaultLeaveTypes returns the leave types every fresh installation
// starts with.
func DefaultLeaveTypes() []leave.LeaveType {
	return []leave.LeaveType{
		{
			Name:         "Sick Leave",
			Code:         "sick",
			DefaultQuota: 10,
			IsActive:     true,
		},
		{
			Name:         "Annual Leave",
			Code:         "annual",
			DefaultQuota: 12,
			IsActive:     true,
		},
		{
			Name:         "Maternity Leave",
			Code:         "maternity",
			DefaultQuota: 90,
			IsActive:     true,
		},
		{
			Name:         "Paternity Leave",
			Code:         "paternity",
			DefaultQuota: 14,
			IsActive:     true,
		},
	}
}

// SeedEmployee is a demo employee with starting balances keyed by leave
// type code.
type SeedEmployee struct {
	FullName   string
	Email      string
	Department string
	IsApprover bool
	Balances   map[string]float64
}

// DefaultEmployees returns the demo roster.
func DefaultEmployees() []SeedEmployee {
	return []SeedEmployee{
		{
			FullName:   "Alice",
			Email:      "alice@company.com",
			Department: "Engineering",
			Balances:   map[string]float64{"sick": 5, "annual": 10},
		},
		{
			FullName:   "Bob",
			Email:      "bob@company.com",
			Department: "Marketing",
			Balances:   map[string]float64{"sick": 8, "annual": 15},
		},
		{
			FullName:   "Charlie",
			Email:      "charlie@company.com",
			Department: "Finance",
			Balances:   map[string]float64{"sick": 7, "annual": 12},
		},
		{
			FullName:   "Diana",
			Email:      "diana@company.com",
			Department: "Human Resources",
			IsApprover: true,
			Balances:   map[string]float64{"sick": 6, "annual": 8, "maternity": 90},
		},
		{
			FullName:   "Ethan",
			Email:      "ethan@company.com",
			Department: "Engineering",
			Balances:   map[string]float64{"sick": 3, "annual": 5},
		},
		{
			FullName:   "Fiona",
			Email:      "fiona@company.com",
			Department: "Sales",
			Balances:   map[string]float64{"sick": 10, "annual": 20},
		},
		{
			FullName:   "George",
			Email:      "george@company.com",
			Department: "Operations",
			Balances:   map[string]float64{"sick": 4, "annual": 6},
		},
		{
			FullName:   "Hannah",
			Email:      "hannah@company.com",
			Department: "Research",
			Balances:   map[string]float64{"sick": 5, "annual": 12},
		},
		{
			FullName:   "Irene",
			Email:      "irene@company.com",
			Department: "Engineering",
			IsApprover: true,
			Balances:   map[string]float64{"sick": 9, "annual": 18, "maternity": 120},
		},
		{
			FullName:   "Jack",
			Email:      "jack@company.com",
			Department: "Legal",
			Balances:   map[string]float64{"sick": 2, "annual": 7},
		},
	}
}
