package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/domain/assistant"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/openai"
)

type fakeGateway struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeGateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeLeaveTypeRepo struct {
	types []leave.LeaveType
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	f.types = append(f.types, leaveType)
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	for _, leaveType := range f.types {
		if leaveType.ID == id {
			return leaveType, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
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
	return f.types, nil
}

func newTestService(gateway assistant.Gateway) assistant.AssistantService {
	repo := &fakeLeaveTypeRepo{types: []leave.LeaveType{
		{ID: "type-sick", Name: "Sick Leave", Code: "sick", IsActive: true},
		{ID: "type-annual", Name: "Annual Leave", Code: "annual", IsActive: true},
	}}
	return NewAssistantService(gateway, repo)
}

func TestSummarizeReason(t *testing.T) {
	t.Run("returns the trimmed completion", func(t *testing.T) {
		gateway := &fakeGateway{reply: "  Employee needs two days off for a family wedding.\n"}
		service := newTestService(gateway)

		response, err := service.SummarizeReason(context.Background(), assistant.SummarizeRequest{
			Text: "My cousin is getting married out of town and I need Thursday and Friday off.",
		})
		require.NoError(t, err)

		assert.Equal(t, "Employee needs two days off for a family wedding.", response.Summary)
		assert.Contains(t, gateway.lastSystem, "summarize leave request reasons")
	})

	t.Run("wraps completion failures as a gateway error", func(t *testing.T) {
		gateway := &fakeGateway{err: errors.New("upstream timeout")}
		service := newTestService(gateway)

		_, err := service.SummarizeReason(context.Background(), assistant.SummarizeRequest{Text: "some reason"})

		assert.ErrorIs(t, err, assistant.ErrGateway)
	})

	t.Run("missing credential surfaces as a gateway error", func(t *testing.T) {
		gateway := &fakeGateway{err: fmt.Errorf("openai: %w", openai.ErrMissingAPIKey)}
		service := newTestService(gateway)

		_, err := service.SummarizeReason(context.Background(), assistant.SummarizeRequest{Text: "some reason"})

		assert.ErrorIs(t, err, assistant.ErrGateway)
	})

	t.Run("empty completion is a gateway error", func(t *testing.T) {
		gateway := &fakeGateway{reply: "   "}
		service := newTestService(gateway)

		_, err := service.SummarizeReason(context.Background(), assistant.SummarizeRequest{Text: "some reason"})

		assert.ErrorIs(t, err, assistant.ErrGateway)
	})
}

func TestParseCommand(t *testing.T) {
	t.Run("decodes a leave request command", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "request_leave", "leave_type": "Annual Leave", "days": 3, "start_date": "2026-09-07"}`}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{
			Text: "I want three days of annual leave starting next Monday",
		})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentRequestLeave, command.Intent)
		assert.Equal(t, "Annual Leave", command.LeaveType)
		assert.Equal(t, 3, command.Days)
		assert.Equal(t, "2026-09-07", command.StartDate)
	})

	t.Run("prompt lists the active leave types", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "view_history"}`}
		service := newTestService(gateway)

		_, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "show my history"})
		require.NoError(t, err)

		assert.Contains(t, gateway.lastSystem, "Sick Leave")
		assert.Contains(t, gateway.lastSystem, "Annual Leave")
	})

	t.Run("strips a markdown code fence", func(t *testing.T) {
		gateway := &fakeGateway{reply: "```json\n{\"intent\": \"check_balance\", \"leave_type\": \"all\"}\n```"}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "check my balances"})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentCheckBalance, command.Intent)
		assert.Equal(t, "all", command.LeaveType)
	})

	t.Run("unknown leave type on a request downgrades to the error intent", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "request_leave", "leave_type": "Casual Leave", "days": 2, "start_date": "2026-09-07"}`}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "two days casual leave"})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentError, command.Intent)
		assert.Contains(t, command.Message, "Casual Leave")
	})

	t.Run("unknown leave type on a balance check downgrades to the error intent", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "check_balance", "leave_type": "Casual Leave"}`}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "casual leave balance"})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentError, command.Intent)
	})

	t.Run("named balance check passes for a known type", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "check_balance", "leave_type": "Sick Leave"}`}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "how many sick leaves do I have"})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentCheckBalance, command.Intent)
		assert.Equal(t, "Sick Leave", command.LeaveType)
	})

	t.Run("incomplete leave request downgrades to the error intent", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "request_leave", "leave_type": "Annual Leave"}`}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "I want some leave"})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentError, command.Intent)
		assert.NotEmpty(t, command.Message)
	})

	t.Run("unknown intent downgrades to the error intent", func(t *testing.T) {
		gateway := &fakeGateway{reply: `{"intent": "order_pizza"}`}
		service := newTestService(gateway)

		command, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "order me a pizza"})
		require.NoError(t, err)

		assert.Equal(t, assistant.IntentError, command.Intent)
	})

	t.Run("malformed JSON is a gateway error", func(t *testing.T) {
		gateway := &fakeGateway{reply: "sure, I'd be happy to help with that!"}
		service := newTestService(gateway)

		_, err := service.ParseCommand(context.Background(), assistant.CommandRequest{Text: "check my balance"})

		assert.ErrorIs(t, err, assistant.ErrGateway)
	})
}
