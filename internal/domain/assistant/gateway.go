package assistant

import "context"

// Gateway is the external text-completion provider. Text in, text out.
type Gateway interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
