package product

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

type DeleteProductHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteProductHandler(repository Repository, eventPublisher events.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteProductRequest struct {
	ProductID int64 `params:"id"`
}

type DeleteProductResponse struct {
}

func (h DeleteProductHandler) Handle(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	existing, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Deleting an absent product is a no-op success.
			return nil, httperror.NoContent(
				"product.destroy.success",
				"Product deleted successfully",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"product.destroy.failed",
			"Failed to retrieve product",
			nil,
		)
	}

	if err := h.repository.DeleteProduct(ctx, req.ProductID); err != nil {
		return nil, httperror.InternalServerError(
			"product.destroy.failed",
			"Failed to delete product",
			nil,
		)
	}

	// The image blob stays behind on purpose; the cleanup worker
	// reclaims it from the product.deleted event.
	if existing.ImageURL != nil {
		zap.L().Warn("Product deleted, image blob retained",
			zap.Int64("productID", existing.ID),
			zap.String("imageUrl", *existing.ImageURL),
		)
	}

	h.publishDeleted(ctx, existing)

	return nil, httperror.NoContent(
		"product.destroy.success",
		"Product deleted successfully",
		nil,
	)
}

func (h DeleteProductHandler) publishDeleted(ctx context.Context, p domain.Product) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "catalog",
	}

	event := events.NewEvent(
		events.ProductDeletedEvent,
		events.EventVersionV1,
		events.ProductDeletedPayload{
			ID:        p.ID,
			ImageURL:  p.ImageURL,
			DeletedAt: time.Now(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish product.deleted event",
			zap.Int64("productID", p.ID),
			zap.Error(err),
		)
	}
}
