package product

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type ListProductsHandler struct {
	repository Repository
}

func NewListProductsHandler(repository Repository) *ListProductsHandler {
	return &ListProductsHandler{
		repository: repository,
	}
}

type ListProductsRequest struct {
	CategoryID int64  `query:"categoryId"`
	Name       string `query:"name"`
	Sort       string `query:"sort"`
	Page       int    `query:"page"`
}

type ListProductsResponse struct {
	Products   []domain.ProductSummary `json:"products"`
	Categories []domain.Category       `json:"categories"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalItems int                     `json:"totalItems"`
	TotalPages int                     `json:"totalPages"`
}

func (h ListProductsHandler) Handle(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	page := max(req.Page, 1)

	filter := ListFilter{Name: req.Name}
	if req.CategoryID > 0 {
		filter.CategoryID = req.CategoryID
	}
	sort := ParseSortKey(req.Sort)

	// The count reflects the filters only, never the page window, so a
	// page beyond the last one still reports correct totals.
	totalItems, err := h.repository.CountProducts(ctx, filter)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.index.count_failed",
			"Failed to count products",
			nil,
		)
	}
	totalPages := (totalItems + PageSize - 1) / PageSize

	offset := (page - 1) * PageSize
	products, err := h.repository.ListProducts(ctx, filter, sort, PageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.index.failed",
			"Failed to retrieve products",
			nil,
		)
	}

	// The full directory backs the category filter menu regardless of
	// the active filters.
	categories, err := h.repository.GetCategories(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.index.categories_failed",
			"Failed to retrieve categories",
			nil,
		)
	}

	return &ListProductsResponse{
		Products:   products,
		Categories: categories,
		Page:       page,
		PageSize:   PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}
