package product

import (
	"catalog/domain"
	"catalog/pkg/assets"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"time"

	"go.uber.org/zap"
)

type CreateProductHandler struct {
	repository     Repository
	assets         assets.Store
	eventPublisher events.Publisher
}

func NewCreateProductHandler(repository Repository, assetStore assets.Store, eventPublisher events.Publisher) *CreateProductHandler {
	return &CreateProductHandler{
		repository:     repository,
		assets:         assetStore,
		eventPublisher: eventPublisher,
	}
}

type CreateProductRequest struct {
	ProductInput

	// Image is filled from the multipart payload when the request comes
	// over HTTP; tests set it directly.
	Image *ImageUpload `json:"-" form:"-"`
}

type CreateProductResponse struct {
	ID int64 `json:"id"`
}

func (h *CreateProductHandler) Handle(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error) {
	if err := validateInput(ctx, h.repository, &req.ProductInput, "product.create"); err != nil {
		return nil, err
	}

	image := req.Image
	if image == nil {
		var err error
		image, err = imageFromContext(ctx, "product.create")
		if err != nil {
			return nil, err
		}
	}

	p := domain.Product{
		CreatedAt: time.Now(),
	}
	req.ProductInput.apply(&p)

	// The blob is written before the row is inserted; a failed write
	// aborts the create so no row ever references a missing image.
	var imageName string
	if image != nil {
		path, err := storeImage(h.assets, image, "product.create")
		if err != nil {
			return nil, err
		}
		p.ImageURL = &path
		imageName = assets.FileName(path)
	}

	id, err := h.repository.CreateProduct(ctx, p)
	if err != nil {
		if imageName != "" {
			_ = h.assets.Delete(ImageNamespace, imageName)
		}
		return nil, httperror.InternalServerError(
			"product.create.create_failed",
			"An error occurred while creating the product",
			nil,
		)
	}
	p.ID = id

	h.publishCreated(ctx, p)

	return &CreateProductResponse{
		ID: id,
	}, nil
}

func (h *CreateProductHandler) publishCreated(ctx context.Context, p domain.Product) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "catalog",
	}

	event := events.NewEvent(
		events.ProductCreatedEvent,
		events.EventVersionV1,
		events.ProductCreatedPayload{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			ImageURL:    p.ImageURL,
			CreatedAt:   p.CreatedAt,
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CatalogExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish product.created event",
			zap.Int64("productID", p.ID),
			zap.Error(err),
		)
	}
}
