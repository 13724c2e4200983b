package events

import "time"

// Domain constants
const (
	ProductDomain   = "product"
	CatalogExchange = "catalog.product"
)

// Event names
const (
	ProductCreatedEvent       Name = "product.created"
	ProductUpdatedEvent       Name = "product.updated"
	ProductDeletedEvent       Name = "product.deleted"
	ProductImageReplacedEvent Name = "product.image.replaced"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// ProductCreatedPayload represents the payload for product.created
type ProductCreatedPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description *string   `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductUpdatedPayload represents the payload for product.updated
type ProductUpdatedPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description *string   `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	ImageURL    *string   `json:"imageUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductDeletedPayload carries the image path so the cleanup worker
// can reclaim the blob the synchronous delete leaves behind.
type ProductDeletedPayload struct {
	ID        int64     `json:"id"`
	ImageURL  *string   `json:"imageUrl"`
	DeletedAt time.Time `json:"deletedAt"`
}

type ProductImageReplacedPayload struct {
	ProductID   int64     `json:"productId"`
	OldImageURL string    `json:"oldImageUrl"`
	NewImageURL string    `json:"newImageUrl"`
	ReplacedAt  time.Time `json:"replacedAt"`
}
