package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Retry configuration constants
const (
	// RetryInitialDelay is the initial retry delay
	RetryInitialDelay = 2 * time.Second

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// Log message constants
const (
	LogMsgEventPublishFailed  = "Event publish failed, initiating async retry"
	LogMsgEventRetryFailed    = "Event retry failed"
	LogMsgEventRetrySucceeded = "Event retry succeeded"
	LogMsgDeadLetterWrite     = "Event written to dead letter queue"
	LogMsgDeadLetterFailed    = "Failed to write to dead letter file"

	// LogMsgHandlerErrorFormat is used when subscribers return errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Implements exponential backoff: 2s, 4s, 8s, 16s, 32s
// Formula: initialDelay * 2^(attempt-1)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
