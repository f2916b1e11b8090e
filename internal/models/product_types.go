package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// Nullable columns are pointers so they serialize as null/omitted.
type Product struct {
	ID            int64           `json:"product_id" db:"product_id"`
	Name          string          `json:"product_name" db:"product_name"`
	Description   *string         `json:"description" db:"description"`
	BasePrice     decimal.Decimal `json:"base_price" db:"base_price"`
	CategoryID    *int64          `json:"category_id" db:"category_id"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	ImagePath     *string         `json:"image_path" db:"image_path"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	DateAdded     time.Time       `json:"date_added" db:"date_added"`

	// Joins (populated manually)
	CategoryName *string        `json:"category_name" db:"-"`
	Colors       []ProductColor `json:"colors" db:"-"`
}

// ProductColor is the model for the 'product_colors' table.
type ProductColor struct {
	ID        int64  `json:"color_id" db:"color_id"`
	ProductID int64  `json:"product_id" db:"product_id"`
	Name      string `json:"color_name" db:"color_name"`
	Code      string `json:"color_code" db:"color_code"`
	Available bool   `json:"available" db:"available"`
}

// ColorInput is one entry of the admin form's JSON 'colors' field.
type ColorInput struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
