package assistant

import "errors"

var (
	// ErrGateway wraps any failure of the external text-completion call,
	// including a missing or invalid credential.
	ErrGateway = errors.New("language model gateway error")
)
