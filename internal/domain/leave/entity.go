package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID           string
	Name         string
	Code         string
	DefaultQuota float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeaveBalance entity. AvailableDays is computed as TotalDays - UsedDays
// and must never go below zero.
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	Year          int
	TotalDays     float64
	UsedDays      float64
	AvailableDays float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays float64

	Reason string

	Status          LeaveRequestStatus // 'pending', 'approved', 'rejected'
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// RangeDays returns the inclusive calendar length of a date range in days.
func RangeDays(startDate, endDate time.Time) float64 {
	return float64(int(endDate.Sub(startDate).Hours()/24) + 1)
}
