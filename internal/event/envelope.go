// Package event defines the change-notification contract shared by the HR
// producer and the hub consumer. Envelopes are values: built once at
// emission, never mutated afterwards.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type enumerates the mutation kinds an envelope can describe.
type Type string

const (
	TypeCreated Type = "EmployeeCreated"
	TypeUpdated Type = "EmployeeUpdated"
	TypeDeleted Type = "EmployeeDeleted"
)

// ErrNoCountry marks an envelope that cannot be routed to a rebuild. The
// consumer drops such envelopes instead of failing them: some producer
// payloads legitimately omit the country.
var ErrNoCountry = errors.New("envelope has no country")

// Payload carries the mutation details nested under "data" on the wire.
type Payload struct {
	// EmployeeID is nullable: a delete of an unknown record has none.
	EmployeeID *int64 `json:"employee_id"`
	// ChangedFields lists the updated field names; empty for create/delete.
	ChangedFields []string `json:"changed_fields"`
	// Employee is the country-filtered post-mutation (or pre-delete)
	// snapshot, nil when no record was available.
	Employee map[string]any `json:"employee"`
}

// Envelope describes one committed employee mutation.
type Envelope struct {
	EventType Type      `json:"event_type"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country"`
	Data      Payload   `json:"data"`
}

// New builds an envelope with a fresh event ID and the current time.
func New(eventType Type, country string, data Payload) Envelope {
	return Envelope{
		EventType: eventType,
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Country:   country,
		Data:      data,
	}
}

// Validate reports whether the envelope can be processed at all.
func (e Envelope) Validate() error {
	if e.Country == "" {
		return ErrNoCountry
	}
	return nil
}

// Marshal encodes the envelope for the queue.
func (e Envelope) Marshal() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope %s: %w", e.EventID, err)
	}
	return b, nil
}

// Unmarshal decodes a queued message back into an envelope.
func Unmarshal(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return e, nil
}
