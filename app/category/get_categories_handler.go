package category

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

// Repository is the slice of the store this package needs.
type Repository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
}

type GetCategoriesHandler struct {
	repository Repository
}

func NewGetCategoriesHandler(repository Repository) *GetCategoriesHandler {
	return &GetCategoriesHandler{
		repository: repository,
	}
}

type GetCategoriesRequest struct {
}

type GetCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// Handle returns the complete directory; categories are few and the
// listing backs a filter menu, so there is no pagination.
func (h GetCategoriesHandler) Handle(ctx context.Context, req *GetCategoriesRequest) (*GetCategoriesResponse, error) {
	categories, err := h.repository.GetCategories(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.index.failed",
			"Failed to retrieve categories",
			nil,
		)
	}

	return &GetCategoriesResponse{
		Categories: categories,
	}, nil
}
