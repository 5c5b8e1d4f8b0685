package leave

import "errors"

var (
	ErrLeaveRequestNotFound       = errors.New("leave request not found")
	ErrLeaveRequestAlreadyDecided = errors.New("leave request already decided")
	ErrInvalidDateRange           = errors.New("end date must not be before start date")
	ErrInsufficientBalance        = errors.New("insufficient leave balance")
	ErrLeaveTypeNotFound          = errors.New("leave type not found")
	ErrLeaveTypeInactive          = errors.New("leave type is inactive")
	ErrBalanceNotFound            = errors.New("leave balance not found")
)
