package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types. Game services publish these after a successful state
// save; the glitch resolver subscribes to evaluate its hidden triggers.
const (
	PlayerLoggedIn   Type = "player.logged_in"
	PlayerTapped     Type = "player.tapped"
	MetaTapped       Type = "player.meta_tapped"
	UpgradePurchased Type = "upgrade.purchased"
	BalanceChanged   Type = "balance.changed"
	GlitchDiscovered Type = "glitch.discovered"
	DailyEventRotated Type = "daily.rotated"
)

// Typed event payloads for type safety

// PlayerLoggedInPayloadV1 is the typed payload for login events
type PlayerLoggedInPayloadV1 struct {
	PlayerID int64 `json:"player_id"`
	LoginAt  int64 `json:"login_at"` // epoch ms
}

// PlayerTappedPayloadV1 is the typed payload for tap batch events
type PlayerTappedPayloadV1 struct {
	PlayerID int64 `json:"player_id"`
	Taps     int   `json:"taps"`
}

// MetaTappedPayloadV1 is the typed payload for hidden-hotspot tap events
type MetaTappedPayloadV1 struct {
	PlayerID int64 `json:"player_id"`
	Count    int   `json:"count"`
}

// UpgradePurchasedPayloadV1 is the typed payload for upgrade purchase events
type UpgradePurchasedPayloadV1 struct {
	PlayerID  int64  `json:"player_id"`
	UpgradeID string `json:"upgrade_id"`
	NewLevel  int    `json:"new_level"`
}

// BalanceChangedPayloadV1 is the typed payload for balance change events
type BalanceChangedPayloadV1 struct {
	PlayerID   int64   `json:"player_id"`
	OldBalance float64 `json:"old_balance"`
	NewBalance float64 `json:"new_balance"`
}

// GlitchDiscoveredPayloadV1 is the typed payload for glitch discovery events
type GlitchDiscoveredPayloadV1 struct {
	PlayerID int64  `json:"player_id"`
	Code     string `json:"code"`
}

// DailyEventRotatedPayloadV1 is the typed payload for daily event rotation
type DailyEventRotatedPayloadV1 struct {
	Day string `json:"day"`
}

// Type-safe event constructors

// NewPlayerLoggedInEvent creates a login event
func NewPlayerLoggedInEvent(playerID int64, loginAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerLoggedIn,
		Payload: PlayerLoggedInPayloadV1{PlayerID: playerID, LoginAt: loginAt.UnixMilli()},
	}
}

// NewPlayerTappedEvent creates a tap batch event
func NewPlayerTappedEvent(playerID int64, taps int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerTapped,
		Payload: PlayerTappedPayloadV1{PlayerID: playerID, Taps: taps},
	}
}

// NewMetaTappedEvent creates a hidden-hotspot tap event
func NewMetaTappedEvent(playerID int64, count int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MetaTapped,
		Payload: MetaTappedPayloadV1{PlayerID: playerID, Count: count},
	}
}

// NewUpgradePurchasedEvent creates an upgrade purchase event
func NewUpgradePurchasedEvent(playerID int64, upgradeID string, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UpgradePurchased,
		Payload: UpgradePurchasedPayloadV1{PlayerID: playerID, UpgradeID: upgradeID, NewLevel: newLevel},
	}
}

// NewBalanceChangedEvent creates a balance change event
func NewBalanceChangedEvent(playerID int64, oldBalance, newBalance float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BalanceChanged,
		Payload: BalanceChangedPayloadV1{PlayerID: playerID, OldBalance: oldBalance, NewBalance: newBalance},
	}
}

// NewGlitchDiscoveredEvent creates a glitch discovery event
func NewGlitchDiscoveredEvent(playerID int64, code string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GlitchDiscovered,
		Payload: GlitchDiscoveredPayloadV1{PlayerID: playerID, Code: code},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; errors are collected, not short-circuited.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
