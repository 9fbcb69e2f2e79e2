package bootstrap

// =============================================================================
// Service Identity
// =============================================================================

const (
	// ServiceName identifies this service in structured log output
	ServiceName = "deepcover-api"
)

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
)

// =============================================================================
// Config Sync Messages
// =============================================================================

const (
	LogMsgSyncingGameConfig   = "Syncing game config from definition files..."
	LogMsgGameConfigSynced    = "Game config synced successfully"
	LogMsgGameConfigUnchanged = "Game config unchanged, sync skipped"

	ErrMsgFailedLoadGameConfig = "failed to load game config"
	ErrMsgInvalidGameConfig    = "invalid game config"
	ErrMsgFailedSyncGameConfig = "failed to sync game config to database"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgGlitchTriggersAttached     = "Glitch triggers attached"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
)
