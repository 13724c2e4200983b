package consumers

import (
	"context"
	"testing"

	"catalog/app/product"
	"catalog/pkg/assets"
	"catalog/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func deletedEvent(id int64, imageURL *string) *events.Event {
	// Payload shaped the way it arrives off the wire.
	payload := map[string]interface{}{"id": id}
	if imageURL != nil {
		payload["imageUrl"] = *imageURL
	}

	return events.NewEvent(
		events.ProductDeletedEvent,
		events.EventVersionV1,
		payload,
		events.Headers{TraceID: events.GenerateTraceID()},
	)
}

func TestImageCleanupDeletesTheOrphanedBlob(t *testing.T) {
	store := assets.NewMemoryStore()
	path, err := store.Write(product.ImageNamespace, "abc_mug.png", []byte("png"))
	require.NoError(t, err)

	handler := NewImageCleanupHandler(store, zap.NewNop())
	err = handler.HandleEvent(context.Background(), deletedEvent(7, &path))

	require.NoError(t, err)
	exists, err := store.Exists(product.ImageNamespace, "abc_mug.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImageCleanupAlreadyAbsentBlobIsANoOp(t *testing.T) {
	store := assets.NewMemoryStore()
	handler := NewImageCleanupHandler(store, zap.NewNop())

	path := assets.LogicalPath(product.ImageNamespace, "gone.png")
	err := handler.HandleEvent(context.Background(), deletedEvent(7, &path))

	assert.NoError(t, err)
}

func TestImageCleanupProductWithoutImageIsANoOp(t *testing.T) {
	store := assets.NewMemoryStore()
	handler := NewImageCleanupHandler(store, zap.NewNop())

	err := handler.HandleEvent(context.Background(), deletedEvent(7, nil))

	assert.NoError(t, err)
}

func TestImageCleanupLogsThroughTheInjectedLogger(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	store := assets.NewMemoryStore()
	path, err := store.Write(product.ImageNamespace, "abc_mug.png", []byte("png"))
	require.NoError(t, err)

	handler := NewImageCleanupHandler(store, zap.New(core))
	require.NoError(t, handler.HandleEvent(context.Background(), deletedEvent(7, &path)))

	entries := observed.FilterMessage("Orphaned product image reclaimed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].ContextMap()["productID"])
}

func TestImageCleanupIgnoresUnknownEvents(t *testing.T) {
	store := assets.NewMemoryStore()
	handler := NewImageCleanupHandler(store, zap.NewNop())

	event := events.NewEvent(
		events.ProductCreatedEvent,
		events.EventVersionV1,
		map[string]interface{}{"id": int64(1)},
		events.Headers{},
	)

	assert.NoError(t, handler.HandleEvent(context.Background(), event))
}
