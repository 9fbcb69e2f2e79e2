package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Daily Rotation Worker
// ============================================================================

// Log messages for daily rotation worker operations
const (
	LogMsgDailyRotationStandby   = "Daily rotation standing by"
	LogMsgDailyRotationApproach  = "Daily rotation scheduled"
	LogMsgDailyRotationStarting  = "Daily rotation starting"
	LogMsgDailyRotationCompleted = "Daily rotation completed"
	LogMsgDailyRotationFailed    = "Daily rotation failed"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
