package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgConflict       = "player state version conflict"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInsufficientStars = "insufficient stars"
	ErrMsgNotEnoughEnergy   = "not enough energy"

	// Task errors
	ErrMsgAlreadyCompleted = "already completed"
	ErrMsgNotYetEligible   = "progress requirement not met"
	ErrMsgNotPurchased     = "task not purchased"

	// Code errors
	ErrMsgInvalidCode = "invalid code"

	// Daily event errors
	ErrMsgComboNotEligible = "daily combo not eligible"
	ErrMsgCipherMismatch   = "cipher word mismatch"

	// Config errors
	ErrMsgUpgradeNotFound = "upgrade not found"
	ErrMsgTaskNotFound    = "task not found"
	ErrMsgBoostNotFound   = "boost not found"
	ErrMsgLootboxNotFound = "lootbox not found"
	ErrMsgCellNotFound    = "cell not found"
	ErrMsgConfigNotFound  = "game config not found"

	// Boost errors
	ErrMsgDailyLimitReached = "daily purchase limit reached"

	// Integrity errors
	ErrMsgStateIntegrity = "state integrity violation"

	// Cell errors
	ErrMsgAlreadyInCell = "player already belongs to a cell"
	ErrMsgNotInCell     = "player does not belong to a cell"

	// Downstream errors
	ErrMsgServiceUnavailable = "service unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrConflict       = errors.New(ErrMsgConflict)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientStars = errors.New(ErrMsgInsufficientStars)
	ErrNotEnoughEnergy   = errors.New(ErrMsgNotEnoughEnergy)

	// Task errors
	ErrAlreadyCompleted = errors.New(ErrMsgAlreadyCompleted)
	ErrNotYetEligible   = errors.New(ErrMsgNotYetEligible)
	ErrNotPurchased     = errors.New(ErrMsgNotPurchased)

	// Code errors
	ErrInvalidCode = errors.New(ErrMsgInvalidCode)

	// Daily event errors
	ErrComboNotEligible = errors.New(ErrMsgComboNotEligible)
	ErrCipherMismatch   = errors.New(ErrMsgCipherMismatch)

	// Config errors
	ErrUpgradeNotFound = errors.New(ErrMsgUpgradeNotFound)
	ErrTaskNotFound    = errors.New(ErrMsgTaskNotFound)
	ErrBoostNotFound   = errors.New(ErrMsgBoostNotFound)
	ErrLootboxNotFound = errors.New(ErrMsgLootboxNotFound)
	ErrCellNotFound    = errors.New(ErrMsgCellNotFound)
	ErrConfigNotFound  = errors.New(ErrMsgConfigNotFound)

	// Boost errors
	ErrDailyLimitReached = errors.New(ErrMsgDailyLimitReached)

	// Integrity errors
	ErrStateIntegrity = errors.New(ErrMsgStateIntegrity)

	// Cell errors
	ErrAlreadyInCell = errors.New(ErrMsgAlreadyInCell)
	ErrNotInCell     = errors.New(ErrMsgNotInCell)

	// Downstream errors
	ErrServiceUnavailable = errors.New(ErrMsgServiceUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
