package domain

import "time"

// Product is a catalog row. Price is an integer amount of minor units.
// ImageURL, when set, is the logical path of the associated blob.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Price       int64     `db:"price" json:"price"`
	Description *string   `db:"description" json:"description"`
	CategoryID  int64     `db:"category_id" json:"categoryId"`
	ImageURL    *string   `db:"image_url" json:"imageUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ProductSummary is the listing/detail projection. CategoryName is
// always resolved through a join, never stored on the product row.
type ProductSummary struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Price        int64   `db:"price" json:"price"`
	Description  *string `db:"description" json:"description"`
	CategoryName string  `db:"category_name" json:"categoryName"`
	ImageURL     *string `db:"image_url" json:"imageUrl"`
}
