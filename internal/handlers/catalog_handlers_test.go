package handlers

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productCols = []string{"product_id", "product_name", "description", "base_price", "category_id",
		"stock_quantity", "image_path", "is_active", "date_added", "category_name"}
	colorCols = []string{"color_id", "product_id", "color_name", "color_code", "available"}
	added     = time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
)

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta("WHERE p.is_active = 1 ORDER BY p.date_added DESC")).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(2, "Linen Shirt", "Breathable", "29.99", 1, 8, "/uploads/products/linen.png", true, added, "Shirts").
			AddRow(1, "Plain Tee", nil, "9.50", nil, 0, nil, true, added, nil))
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM product_colors WHERE product_id IN (?, ?) AND available = 1")).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows(colorCols).AddRow(7, 2, "Navy", "#000080", true))

	w := env.do(http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[
		{"product_id":2,"product_name":"Linen Shirt","description":"Breathable","base_price":"29.99","category_id":1,
		 "stock_quantity":8,"image_path":"http://example.com/uploads/products/linen.png","is_active":true,
		 "date_added":"2024-04-02T08:00:00Z","category_name":"Shirts",
		 "colors":[{"color_id":7,"product_id":2,"color_name":"Navy","color_code":"#000080","available":true}]},
		{"product_id":1,"product_name":"Plain Tee","description":null,"base_price":"9.5","category_id":null,
		 "stock_quantity":0,"image_path":null,"is_active":true,"date_added":"2024-04-02T08:00:00Z",
		 "category_name":null,"colors":[]}
	]`, w.Body.String())
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestGetProducts_Filters(t *testing.T) {
	t.Run("category id and escaped search", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectQuery(regexp.QuoteMeta("AND p.category_id = ? AND (p.product_name LIKE ? OR p.description LIKE ?)")).
			WithArgs(3, `%50\% off%`, `%50\% off%`).
			WillReturnRows(sqlmock.NewRows(productCols))

		w := env.do(http.MethodGet, "/api/products?category=3&search=50%25%20off", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `[]`, w.Body.String())
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})

	t.Run("category name", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectQuery(regexp.QuoteMeta("AND c.category_name = ?")).WithArgs("Shirts").
			WillReturnRows(sqlmock.NewRows(productCols))

		w := env.do(http.MethodGet, "/api/products?category=Shirts", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta("WHERE p.product_id = ? AND p.is_active = 1")).WithArgs(2).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(2, "Linen Shirt", nil, "29.99", nil, 8, nil, true, added, nil))
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM product_colors")).WithArgs(2).
		WillReturnRows(sqlmock.NewRows(colorCols))

	w := env.do(http.MethodGet, "/api/products/2", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Linen Shirt", decode(t, w)["product_name"])
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta("WHERE p.product_id = ? AND p.is_active = 1")).WithArgs(404).
		WillReturnRows(sqlmock.NewRows(productCols))

	w := env.do(http.MethodGet, "/api/products/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["error"])
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE is_active = 1 ORDER BY category_name")).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name", "description", "image_path",
			"hover_image_path", "is_active", "created_at"}).
			AddRow(1, "Shirts", nil, "/uploads/products/shirts.png", nil, true, added))

	w := env.do(http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[{"category_id":1,"category_name":"Shirts","description":null,
		"image_path":"http://example.com/uploads/products/shirts.png","hover_image_path":null,
		"is_active":true,"created_at":"2024-04-02T08:00:00Z"}]`, w.Body.String())
}
