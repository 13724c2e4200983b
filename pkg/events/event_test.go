package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoutingKeyCombinesNameAndVersion(t *testing.T) {
	event := NewEvent(ProductDeletedEvent, EventVersionV1, nil, Headers{})
	assert.Equal(t, "product.deleted.v1", event.GetRoutingKey())
}

func TestEventNameMarshalsAsPlainString(t *testing.T) {
	data, err := json.Marshal(ProductDeletedEvent)
	require.NoError(t, err)
	assert.Equal(t, `"product.deleted"`, string(data))
}

func TestEventRoundTripsThroughJSON(t *testing.T) {
	headers := Headers{TraceID: GenerateTraceID(), CorrelationID: GenerateCorrelationID()}
	event := NewEvent(ProductCreatedEvent, EventVersionV1, ProductCreatedPayload{ID: 7, Name: "Mug"}, headers)

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ProductCreatedEvent, decoded.Event)
	assert.Equal(t, headers.TraceID, decoded.TraceID)
	assert.Equal(t, headers.CorrelationID, decoded.CorrelationID)
}
