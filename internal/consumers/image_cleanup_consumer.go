package consumers

import (
	"catalog/app/product"
	"catalog/pkg/assets"
	"catalog/pkg/events"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ImageCleanupHandler reclaims image blobs orphaned by product
// deletion. The synchronous delete path leaves the blob in place and
// publishes product.deleted with the image path; this handler does the
// actual removal.
type ImageCleanupHandler struct {
	assets assets.Store
	logger *zap.Logger
}

func NewImageCleanupHandler(assetStore assets.Store, logger *zap.Logger) *ImageCleanupHandler {
	return &ImageCleanupHandler{
		assets: assetStore,
		logger: logger,
	}
}

func (h *ImageCleanupHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	h.logger.Info("Catalog event received",
		zap.String("event", string(event.Event)),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.ProductDeletedEvent:
		return h.handleProductDeleted(ctx, event)
	default:
		h.logger.Warn("Unknown catalog event type", zap.String("event", string(event.Event)))
		return nil
	}
}

func (h *ImageCleanupHandler) handleProductDeleted(ctx context.Context, event *events.Event) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	var payload events.ProductDeletedPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}

	if payload.ImageURL == nil || *payload.ImageURL == "" {
		h.logger.Debug("Product had no image, nothing to clean up",
			zap.Int64("productID", payload.ID))
		return nil
	}

	fileName := assets.FileName(*payload.ImageURL)
	if err := h.assets.Delete(product.ImageNamespace, fileName); err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			// Already gone, possibly cleaned up by a previous delivery.
			h.logger.Debug("Orphaned image already absent",
				zap.Int64("productID", payload.ID),
				zap.String("imageUrl", *payload.ImageURL))
			return nil
		}
		return fmt.Errorf("failed to delete orphaned image %s: %w", *payload.ImageURL, err)
	}

	h.logger.Info("Orphaned product image reclaimed",
		zap.Int64("productID", payload.ID),
		zap.String("imageUrl", *payload.ImageURL),
	)

	return nil
}
