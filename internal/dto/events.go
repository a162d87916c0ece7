package dto

import (
	"encoding/json"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

// EventEnvelope is the body pushed by operational modules.
type EventEnvelope struct {
	EventType domain.EventType `json:"eventType" binding:"required"`
	Payload   json.RawMessage  `json:"payload" binding:"required"`
}
