package assistant

import "context"

// AssistantService turns free text into summaries and structured commands.
type AssistantService interface {
	SummarizeReason(ctx context.Context, req SummarizeRequest) (SummarizeResponse, error)
	ParseCommand(ctx context.Context, req CommandRequest) (Command, error)
}
