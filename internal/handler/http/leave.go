package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetBalances(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetMyHistory(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := l.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// When no employee ID is given, the request is for the caller.
	if req.EmployeeID == "" {
		req.EmployeeID = employeeIDFromToken(r)
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.SubmitRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := l.leaveService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decideRequest(w, r, true)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decideRequest(w, r, false)
}

func (l *LeaveHandlerImpl) decideRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var body struct {
		RejectionReason string `json:"rejection_reason"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			slog.Error("decideRequest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	req := leave.DecideRequestRequest{
		RequestID:       requestID,
		Approve:         approve,
		DecidedBy:       employeeIDFromToken(r),
		RejectionReason: body.RejectionReason,
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.DecideRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if approve {
		response.SuccessWithMessage(w, "Leave request approved", result)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	l.balances(w, r, chi.URLParam(r, "id"))
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	l.balances(w, r, employeeIDFromToken(r))
}

func (l *LeaveHandlerImpl) balances(w http.ResponseWriter, r *http.Request, employeeID string) {
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var year int
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Year must be a number", nil)
			return
		}
		year = parsed
	}

	result, err := l.leaveService.GetBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	l.history(w, r, chi.URLParam(r, "id"))
}

// GetMyHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	l.history(w, r, employeeIDFromToken(r))
}

func (l *LeaveHandlerImpl) history(w http.ResponseWriter, r *http.Request, employeeID string) {
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := l.leaveService.ListHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func employeeIDFromToken(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}

	employeeID, _ := claims["employee_id"].(string)
	return employeeID
}
