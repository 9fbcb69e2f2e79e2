package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPlayerID   = "Invalid player id"

	// Operation error messages
	ErrMsgLoginFailed          = "Failed to log in"
	ErrMsgGetStateFailed       = "Failed to get player state"
	ErrMsgSyncFailed           = "Failed to sync player state"
	ErrMsgGetEventFailed       = "Failed to get daily event"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"

	// Admin error messages
	ErrMsgReloadConfigFailed = "Failed to reload configuration"
	ErrMsgRotateEventFailed  = "Failed to rotate daily event"
	ErrMsgAdminRequired      = "Admin access required"
)
