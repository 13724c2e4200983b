package product

import (
	"catalog/domain"
	"catalog/pkg/assets"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

type UpdateProductHandler struct {
	repository     Repository
	assets         assets.Store
	eventPublisher events.Publisher
}

func NewUpdateProductHandler(repository Repository, assetStore assets.Store, eventPublisher events.Publisher) *UpdateProductHandler {
	return &UpdateProductHandler{
		repository:     repository,
		assets:         assetStore,
		eventPublisher: eventPublisher,
	}
}

type UpdateProductRequest struct {
	ProductID int64 `params:"id" json:"-" form:"-"`
	ProductInput

	// Image is filled from the multipart payload when the request comes
	// over HTTP; tests set it directly.
	Image *ImageUpload `json:"-" form:"-"`
}

type UpdateProductResponse struct {
	Product domain.Product `json:"product"`
}

func (h *UpdateProductHandler) Handle(ctx context.Context, req *UpdateProductRequest) (*UpdateProductResponse, error) {
	existing, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"product.update.not_found",
				"Product not found",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"product.update.failed",
			"Failed to get product",
			nil,
		)
	}

	if err := validateInput(ctx, h.repository, &req.ProductInput, "product.update"); err != nil {
		return nil, err
	}

	image := req.Image
	if image == nil {
		image, err = imageFromContext(ctx, "product.update")
		if err != nil {
			return nil, err
		}
	}

	req.ProductInput.apply(&existing)

	// Replacement order: old blob deleted first, new blob written, row
	// committed last. Only the new-blob write is fatal.
	var oldImageURL string
	if image != nil {
		if existing.ImageURL != nil {
			oldImageURL = *existing.ImageURL
			err := h.assets.Delete(ImageNamespace, assets.FileName(oldImageURL))
			if err != nil && !errors.Is(err, assets.ErrNotFound) {
				zap.L().Warn("Failed to delete old product image",
					zap.Int64("productID", existing.ID),
					zap.String("imageUrl", oldImageURL),
					zap.Error(err),
				)
			}
		}

		path, err := storeImage(h.assets, image, "product.update")
		if err != nil {
			return nil, err
		}
		existing.ImageURL = &path
	}

	if err := h.repository.UpdateProduct(ctx, existing); err != nil {
		if image != nil && existing.ImageURL != nil {
			_ = h.assets.Delete(ImageNamespace, assets.FileName(*existing.ImageURL))
		}
		if errors.Is(err, ErrProductVanished) {
			return nil, httperror.Conflict(
				"product.update.conflict",
				"Product was removed while the update was in flight",
				nil,
			)
		}
		return nil, httperror.InternalServerError(
			"product.update.update_failed",
			"An error occurred while updating the product",
			nil,
		)
	}

	h.publishUpdated(ctx, existing, oldImageURL)

	return &UpdateProductResponse{
		Product: existing,
	}, nil
}

func (h *UpdateProductHandler) publishUpdated(ctx context.Context, p domain.Product, oldImageURL string) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "catalog",
	}

	event := events.NewEvent(
		events.ProductUpdatedEvent,
		events.EventVersionV1,
		events.ProductUpdatedPayload{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			ImageURL:    p.ImageURL,
			UpdatedAt:   time.Now(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish product.updated event",
			zap.Int64("productID", p.ID),
			zap.Error(err),
		)
	}

	if oldImageURL == "" || p.ImageURL == nil {
		return
	}

	replaced := events.NewEvent(
		events.ProductImageReplacedEvent,
		events.EventVersionV1,
		events.ProductImageReplacedPayload{
			ProductID:   p.ID,
			OldImageURL: oldImageURL,
			NewImageURL: *p.ImageURL,
			ReplacedAt:  time.Now(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, replaced, headers); err != nil {
		zap.L().Error("Failed to publish product.image.replaced event",
			zap.Int64("productID", p.ID),
			zap.Error(err),
		)
	}
}
