package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leavehq/leave-backend-go/internal/domain/assistant"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

const summarizeSystemPrompt = "You summarize leave request reasons for managers. " +
	"Reply with a single short sentence capturing why the employee is asking for leave. " +
	"Do not add commentary or advice."

type AssistantServiceImpl struct {
	gateway assistant.Gateway
	leave.LeaveTypeRepository
}

func NewAssistantService(gateway assistant.Gateway, leaveTypeRepo leave.LeaveTypeRepository) assistant.AssistantService {
	return &AssistantServiceImpl{
		gateway:             gateway,
		LeaveTypeRepository: leaveTypeRepo,
	}
}

// SummarizeReason implements assistant.AssistantService. Any failure of
// the completion call, including a missing credential, surfaces as
// assistant.ErrGateway.
func (a *AssistantServiceImpl) SummarizeReason(ctx context.Context, req assistant.SummarizeRequest) (assistant.SummarizeResponse, error) {
	summary, err := a.gateway.Complete(ctx, summarizeSystemPrompt, req.Text)
	if err != nil {
		return assistant.SummarizeResponse{}, fmt.Errorf("%w: %v", assistant.ErrGateway, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return assistant.SummarizeResponse{}, fmt.Errorf("%w: empty completion", assistant.ErrGateway)
	}

	return assistant.SummarizeResponse{Summary: summary}, nil
}

// ParseCommand implements assistant.AssistantService. The model is asked
// for JSON only; anything it returns that does not decode into a known
// intent comes back as an error intent rather than a hard failure.
func (a *AssistantServiceImpl) ParseCommand(ctx context.Context, req assistant.CommandRequest) (assistant.Command, error) {
	leaveTypes, err := a.LeaveTypeRepository.List(ctx)
	if err != nil {
		return assistant.Command{}, fmt.Errorf("failed to list leave types: %w", err)
	}

	typeNames := activeTypeNames(leaveTypes)

	raw, err := a.gateway.Complete(ctx, commandSystemPrompt(typeNames), req.Text)
	if err != nil {
		return assistant.Command{}, fmt.Errorf("%w: %v", assistant.ErrGateway, err)
	}

	var command assistant.Command
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &command); err != nil {
		return assistant.Command{}, fmt.Errorf("%w: malformed completion: %v", assistant.ErrGateway, err)
	}

	return normalizeCommand(command, typeNames), nil
}

func activeTypeNames(leaveTypes []leave.LeaveType) []string {
	names := make([]string, 0, len(leaveTypes))
	for _, leaveType := range leaveTypes {
		if leaveType.IsActive {
			names = append(names, leaveType.Name)
		}
	}
	return names
}

func commandSystemPrompt(typeNames []string) string {
	lines := make([]string, 0, len(typeNames))
	for _, name := range typeNames {
		lines = append(lines, "- "+name)
	}

	var b strings.Builder
	b.WriteString("You are a leave management assistant. Parse user queries for a system with exactly these leave types:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nExtract the following from user queries:\n")
	b.WriteString("1. For balance checks:\n")
	b.WriteString("- Intent: \"check_balance\"\n")
	b.WriteString("- Leave Type: one of the above types or \"all\" for all balances\n")
	b.WriteString("Example: {\"intent\": \"check_balance\", \"leave_type\": \"Sick Leave\"}\n\n")
	b.WriteString("2. For leave requests:\n")
	b.WriteString("- Intent: \"request_leave\"\n")
	b.WriteString("- Leave Type: one of the above types\n")
	b.WriteString("- Days: positive integer\n")
	b.WriteString("- Start Date: YYYY-MM-DD format\n")
	b.WriteString("Example: {\"intent\": \"request_leave\", \"leave_type\": \"Annual Leave\", \"days\": 3, \"start_date\": \"2024-02-01\"}\n\n")
	b.WriteString("3. For viewing history:\n")
	b.WriteString("- Intent: \"view_history\"\n\n")
	b.WriteString("If the query does not match any intent, return {\"intent\": \"error\", \"message\": \"<why>\"}.\n")
	b.WriteString("Return JSON format only. For general balance inquiries use \"all\" as leave_type.")

	return b.String()
}

// normalizeCommand downgrades anything structurally off to the error
// intent instead of trusting the model blindly. Leave type names must
// match a known active type; check_balance also accepts "all".
func normalizeCommand(command assistant.Command, typeNames []string) assistant.Command {
	switch command.Intent {
	case assistant.IntentViewHistory, assistant.IntentError:
		return command
	case assistant.IntentCheckBalance:
		if command.LeaveType != "" && command.LeaveType != "all" && !validator.IsInSlice(command.LeaveType, typeNames) {
			return unknownLeaveType(command.LeaveType)
		}
		return command
	case assistant.IntentRequestLeave:
		if command.LeaveType == "" || command.Days <= 0 || command.StartDate == "" {
			return assistant.Command{
				Intent:  assistant.IntentError,
				Message: "could not extract the leave type, day count and start date from the request",
			}
		}
		if !validator.IsInSlice(command.LeaveType, typeNames) {
			return unknownLeaveType(command.LeaveType)
		}
		return command
	default:
		return assistant.Command{
			Intent:  assistant.IntentError,
			Message: fmt.Sprintf("unrecognized intent %q", command.Intent),
		}
	}
}

func unknownLeaveType(name string) assistant.Command {
	return assistant.Command{
		Intent:  assistant.IntentError,
		Message: fmt.Sprintf("unknown leave type %q", name),
	}
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")

	return strings.TrimSpace(raw)
}
