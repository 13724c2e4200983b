package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Name identifies an event kind, e.g. "product.deleted". Catalog event
// names are declared as typed constants so a payload cannot be published
// under a free-form string.
type Name string

// Event is the wire envelope every catalog event travels in.
type Event struct {
	Event         Name        `json:"event"`
	Version       string      `json:"version"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
	TraceID       string      `json:"traceId"`
	CorrelationID string      `json:"correlationId"`
}

type Headers struct {
	TraceID       string
	CorrelationID string
	Service       string
}

func NewEvent(name Name, version string, payload interface{}, headers Headers) *Event {
	return &Event{
		Event:         name,
		Version:       version,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
		TraceID:       headers.TraceID,
		CorrelationID: headers.CorrelationID,
	}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetRoutingKey derives the broker routing key, e.g.
// "product.deleted.v1".
func (e *Event) GetRoutingKey() string {
	return string(e.Event) + "." + e.Version
}

func GenerateTraceID() string {
	return uuid.New().String()
}

func GenerateCorrelationID() string {
	return uuid.New().String()
}
