package assistant

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type SummarizeRequest struct {
	Text string `json:"text"`
}

func (r *SummarizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}
	if len(r.Text) > 4000 {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text must not exceed 4000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type CommandRequest struct {
	Text string `json:"text"`
}

func (r *CommandRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Intent names a parsed natural language command.
type Intent string

const (
	IntentCheckBalance Intent = "check_balance"
	IntentRequestLeave Intent = "request_leave"
	IntentViewHistory  Intent = "view_history"
	IntentError        Intent = "error"
)

// Command is the structured form of a natural language query, as returned
// by the Language Model Gateway.
type Command struct {
	Intent    Intent `json:"intent"`
	LeaveType string `json:"leave_type,omitempty"`
	Days      int    `json:"days,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	Message   string `json:"message,omitempty"`
}
