package product

import (
	"catalog/domain"
	"context"
	"errors"
)

// PageSize is the fixed page window applied to product listings.
const PageSize = 6

// ErrProductVanished reports that the row disappeared between the read
// and the commit of an update.
var ErrProductVanished = errors.New("product vanished")

type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// ParseSortKey maps a raw query value to a sort key, defaulting to
// ascending price.
func ParseSortKey(s string) SortKey {
	if s == string(SortPriceDesc) {
		return SortPriceDesc
	}
	return SortPriceAsc
}

// ListFilter restricts listings. Zero values mean "no restriction";
// both filters are AND-composed when set.
type ListFilter struct {
	CategoryID int64
	Name       string
}

type Repository interface {
	Close() error
	ListProducts(ctx context.Context, filter ListFilter, sort SortKey, limit, offset int) ([]domain.ProductSummary, error)
	CountProducts(ctx context.Context, filter ListFilter) (int, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	GetProductSummary(ctx context.Context, id int64) (domain.ProductSummary, error)
	CreateProduct(ctx context.Context, p domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (domain.Category, error)
}
