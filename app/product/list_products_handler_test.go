package product

import (
	"context"
	"fmt"
	"testing"

	"catalog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) *fakeRepository {
	t.Helper()

	repo := newFakeRepository(
		domain.Category{ID: 1, Name: "Kitchen"},
		domain.Category{ID: 2, Name: "Cups"},
	)

	// Eight "cup" products in category 2, prices 100..800.
	for i := 1; i <= 8; i++ {
		repo.seed(domain.Product{
			Name:       fmt.Sprintf("Coffee cup %d", i),
			Price:      int64(i * 100),
			CategoryID: 2,
		})
	}

	// Noise: wrong category, wrong name.
	repo.seed(domain.Product{Name: "Measuring cup", Price: 50, CategoryID: 1})
	repo.seed(domain.Product{Name: "Teapot", Price: 900, CategoryID: 2})

	return repo
}

func TestListProductsFiltersSortsAndPaginates(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(context.Background(), &ListProductsRequest{
		CategoryID: 2,
		Name:       "cup",
		Sort:       "price_desc",
		Page:       1,
	})

	require.NoError(t, err)
	assert.Equal(t, 8, res.TotalItems)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, PageSize, res.PageSize)

	require.Len(t, res.Products, PageSize)
	for i := 1; i < len(res.Products); i++ {
		assert.GreaterOrEqual(t, res.Products[i-1].Price, res.Products[i].Price)
	}
	assert.Equal(t, int64(800), res.Products[0].Price)
	assert.Equal(t, "Cups", res.Products[0].CategoryName)
}

func TestListProductsSecondPageHoldsTheRemainder(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(context.Background(), &ListProductsRequest{
		CategoryID: 2,
		Name:       "cup",
		Sort:       "price_desc",
		Page:       2,
	})

	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, int64(200), res.Products[0].Price)
	assert.Equal(t, int64(100), res.Products[1].Price)
	assert.Equal(t, 8, res.TotalItems)
	assert.Equal(t, 2, res.TotalPages)
}

func TestListProductsPageBeyondLastIsEmptyWithCorrectTotals(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(context.Background(), &ListProductsRequest{
		CategoryID: 2,
		Name:       "cup",
		Page:       5,
	})

	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Equal(t, 8, res.TotalItems)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 5, res.Page)
}

func TestListProductsSortDirectionReversesTheWindowlessOrder(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	asc, err := handler.Handle(context.Background(), &ListProductsRequest{CategoryID: 2, Name: "cup"})
	require.NoError(t, err)
	desc, err := handler.Handle(context.Background(), &ListProductsRequest{CategoryID: 2, Name: "cup", Sort: "price_desc"})
	require.NoError(t, err)

	assert.Equal(t, int64(100), asc.Products[0].Price)
	assert.Equal(t, int64(800), desc.Products[0].Price)
}

func TestListProductsDefaultsPageToOne(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(context.Background(), &ListProductsRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
}

func TestListProductsAlwaysReturnsTheFullCategoryDirectory(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(context.Background(), &ListProductsRequest{
		CategoryID: 2,
		Name:       "cup",
	})

	require.NoError(t, err)
	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Cups", res.Categories[0].Name)
	assert.Equal(t, "Kitchen", res.Categories[1].Name)
}

func TestListProductsNoFiltersReturnsEverything(t *testing.T) {
	repo := seedCatalog(t)
	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(context.Background(), &ListProductsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, res.TotalItems)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Products, PageSize)
}
