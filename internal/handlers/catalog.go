package handlers

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/01moynul/fashionhub/internal/models"
)

const productColumns = `
	SELECT p.product_id, p.product_name, p.description, p.base_price, p.category_id,
	       p.stock_quantity, p.image_path, p.is_active, p.date_added, c.category_name
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.category_id`

// productFilter narrows listProducts. Zero values mean no filtering.
type productFilter struct {
	Category      string
	Search        string
	OnlyAvailable bool
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (h *Handlers) listProducts(ctx context.Context, f productFilter) ([]*models.Product, error) {
	query := productColumns + " WHERE p.is_active = 1"
	var args []interface{}

	if f.Category != "" {
		if id, err := strconv.ParseInt(f.Category, 10, 64); err == nil {
			query += " AND p.category_id = ?"
			args = append(args, id)
		} else {
			query += " AND c.category_name = ?"
			args = append(args, f.Category)
		}
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		query += " AND (p.product_name LIKE ? OR p.description LIKE ?)"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY p.date_added DESC, p.product_id DESC"

	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := h.attachColors(ctx, products, f.OnlyAvailable); err != nil {
		return nil, err
	}
	return products, nil
}

// getProduct returns sql.ErrNoRows for missing or soft-deleted products.
func (h *Handlers) getProduct(ctx context.Context, id int64, onlyAvailable bool) (*models.Product, error) {
	row := h.DB.QueryRowContext(ctx, productColumns+" WHERE p.product_id = ? AND p.is_active = 1", id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	if err := h.attachColors(ctx, []*models.Product{p}, onlyAvailable); err != nil {
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var categoryName sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.CategoryID,
		&p.StockQuantity,
		&p.ImagePath,
		&p.IsActive,
		&p.DateAdded,
		&categoryName,
	); err != nil {
		return nil, err
	}
	if categoryName.Valid {
		p.CategoryName = &categoryName.String
	}
	p.Colors = []models.ProductColor{}
	return &p, nil
}

// attachColors loads the color rows for all products in one query.
func (h *Handlers) attachColors(ctx context.Context, products []*models.Product, onlyAvailable bool) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Product, len(products))
	placeholders := make([]string, 0, len(products))
	args := make([]interface{}, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	query := `SELECT color_id, product_id, color_name, color_code, available
		FROM product_colors
		WHERE product_id IN (` + strings.Join(placeholders, ", ") + `)`
	if onlyAvailable {
		query += " AND available = 1"
	}
	query += " ORDER BY color_id"

	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var col models.ProductColor
		if err := rows.Scan(&col.ID, &col.ProductID, &col.Name, &col.Code, &col.Available); err != nil {
			return err
		}
		if p, ok := byID[col.ProductID]; ok {
			p.Colors = append(p.Colors, col)
		}
	}
	return rows.Err()
}

func (h *Handlers) listCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := h.DB.QueryContext(ctx, `
		SELECT category_id, category_name, description, image_path, hover_image_path, is_active, created_at
		FROM categories
		WHERE is_active = 1
		ORDER BY category_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(
			&cat.ID,
			&cat.Name,
			&cat.Description,
			&cat.ImagePath,
			&cat.HoverImagePath,
			&cat.IsActive,
			&cat.CreatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}
	return categories, rows.Err()
}
