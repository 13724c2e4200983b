package postgres

import (
	"catalog/app/product"
	"catalog/domain"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

type PgRepository struct {
	db          *sqlx.DB
	nameMatchOp string
}

func NewPgRepository(host, database, user, password, port string, caseInsensitiveNames bool) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database,
	))

	// Connection pool configuration
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return NewPgRepositoryWithDB(db, caseInsensitiveNames)
}

// NewPgRepositoryWithDB wraps an already-open connection. Tests use it
// with a mocked driver.
func NewPgRepositoryWithDB(db *sqlx.DB, caseInsensitiveNames bool) *PgRepository {
	nameMatchOp := "LIKE"
	if caseInsensitiveNames {
		nameMatchOp = "ILIKE"
	}

	return &PgRepository{
		db:          db,
		nameMatchOp: nameMatchOp,
	}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

// productFilter builds the WHERE clause shared by the list and count
// queries. Filters are optional and AND-composed; the count query must
// see exactly the same predicates as the list query.
func (r *PgRepository) productFilter(f product.ListFilter) (string, []interface{}) {
	clauses := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		clauses = append(clauses, fmt.Sprintf("p.name %s $%d", r.nameMatchOp, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PgRepository) ListProducts(ctx context.Context, filter product.ListFilter, sort product.SortKey, limit, offset int) ([]domain.ProductSummary, error) {
	where, args := r.productFilter(filter)

	direction := "ASC"
	if sort == product.SortPriceDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.price, p.description, c.name AS category_name, p.image_url
		FROM products p
		JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.price %s
		LIMIT $%d OFFSET $%d`, where, direction, len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	summaries := make([]domain.ProductSummary, 0, limit)
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *PgRepository) CountProducts(ctx context.Context, filter product.ListFilter) (int, error) {
	where, args := r.productFilter(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM products p %s`, where)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PgRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	query := `SELECT id, name, price, description, category_id, image_url, created_at FROM products WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)

	return p, err
}

func (r *PgRepository) GetProductSummary(ctx context.Context, id int64) (domain.ProductSummary, error) {
	var s domain.ProductSummary
	query := `
		SELECT p.id, p.name, p.price, p.description, c.name AS category_name, p.image_url
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`

	err := r.db.GetContext(ctx, &s, query, id)

	return s, err
}

func (r *PgRepository) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	query := `
		INSERT INTO products (name, price, description, category_id, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := r.db.GetContext(ctx, &id, query, p.Name, p.Price, p.Description, p.CategoryID, p.ImageURL, p.CreatedAt)

	return id, err
}

func (r *PgRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			price = :price,
			description = :description,
			category_id = :category_id,
			image_url = :image_url
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The row was deleted between the caller's read and this
		// commit.
		return product.ErrProductVanished
	}

	return nil
}

func (r *PgRepository) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	// No RowsAffected check: deleting an absent row is a no-op.
	_, err := r.db.ExecContext(ctx, query, id)

	return err
}

func (r *PgRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	query := `SELECT id, name FROM categories ORDER BY name ASC`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *PgRepository) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	query := `SELECT id, name FROM categories WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)

	return c, err
}
