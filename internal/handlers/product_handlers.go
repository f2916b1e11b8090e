package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultColorCode = "#000000"

// --- Inputs ---

// ProductForm is the multipart form for creating or updating a product.
// Numbers arrive as strings and are parsed by parse.
type ProductForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	CategoryID  string `form:"categoryId"`
	Stock       string `form:"stock"`
	Colors      string `form:"colors"`
}

type productInput struct {
	Name        string
	Description interface{}
	Price       decimal.Decimal
	CategoryID  *int64
	Stock       int
	Colors      []models.ColorInput
}

// parse validates the form. The returned string is a client-facing message.
func (f ProductForm) parse() (productInput, string) {
	in := productInput{
		Name:        sanitize(f.Name, 200),
		Description: nullable(sanitize(f.Description, 5000)),
	}
	if in.Name == "" {
		return in, "Product name is required"
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || price.IsNegative() {
		return in, "Price must be a non-negative number"
	}
	in.Price = price.Round(2)

	if s := strings.TrimSpace(f.CategoryID); s != "" && s != "null" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return in, "Invalid category"
		}
		in.CategoryID = &id
	}

	if s := strings.TrimSpace(f.Stock); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return in, "Stock must be a non-negative whole number"
		}
		in.Stock = n
	}

	if s := strings.TrimSpace(f.Colors); s != "" {
		var colors []models.ColorInput
		if err := json.Unmarshal([]byte(s), &colors); err != nil {
			return in, "Colors must be a JSON array of {name, code}"
		}
		for _, col := range colors {
			name := sanitize(col.Name, 50)
			if name == "" {
				continue
			}
			code := strings.TrimSpace(col.Code)
			if !isHexColor(code) {
				code = defaultColorCode
			}
			in.Colors = append(in.Colors, models.ColorInput{Name: name, Code: code})
		}
	}
	return in, ""
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

//
// --- Admin: Product Management ---
//

// AdminGetProducts is the handler for GET /api/admin/products?search=
// Unlike the storefront it includes unavailable colors.
func (h *Handlers) AdminGetProducts(c *gin.Context) {
	products, err := h.listProducts(c.Request.Context(), productFilter{
		Category: sanitize(c.Query("category"), 100),
		Search:   sanitize(c.Query("search"), 100),
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("admin list products")
		fail(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct is the handler for POST /api/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	// 1. --- Bind & Validate Form ---
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, http.StatusBadRequest, "Name and price are required")
		return
	}
	in, msg := form.parse()
	if msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	// 2. --- Save Image ---
	image, ok := h.saveUpload(c, "image")
	if !ok {
		return
	}

	// 3. --- Insert Product & Colors ---
	id, err := h.insertProduct(c.Request.Context(), in, image)
	if err != nil {
		h.discardUpload(image)
		h.Log.Error().Err(err).Msg("create product")
		fail(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.Log.Info().Int64("product_id", id).Msg("product created")
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Product created successfully",
		"productId": id,
	})
}

func (h *Handlers) insertProduct(ctx context.Context, in productInput, image *string) (int64, error) {
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO products (product_name, description, base_price, category_id, stock_quantity, image_path)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.Description, in.Price, in.CategoryID, in.Stock, image)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertColors(ctx, tx, id, in.Colors); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// UpdateProduct is the handler for PUT /api/admin/products/:id
// Colors are replaced only when the form carries a colors field.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, http.StatusBadRequest, "Name and price are required")
		return
	}
	in, msg := form.parse()
	if msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}
	_, replaceColors := c.GetPostForm("colors")

	ctx := c.Request.Context()
	var oldImage *string
	err := h.DB.QueryRowContext(ctx,
		"SELECT image_path FROM products WHERE product_id = ? AND is_active = 1", id).Scan(&oldImage)
	if errors.Is(err, sql.ErrNoRows) {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("product_id", id).Msg("load product")
		fail(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	image, ok := h.saveUpload(c, "image")
	if !ok {
		return
	}

	if err := h.updateProduct(ctx, id, in, image, replaceColors); err != nil {
		h.discardUpload(image)
		h.Log.Error().Err(err).Int64("product_id", id).Msg("update product")
		fail(c, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if image != nil {
		h.discardUpload(oldImage)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully"})
}

func (h *Handlers) updateProduct(ctx context.Context, id int64, in productInput, image *string, replaceColors bool) error {
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE products
		SET product_name = ?, description = ?, base_price = ?, category_id = ?, stock_quantity = ?,
		    image_path = COALESCE(?, image_path)
		WHERE product_id = ?`,
		in.Name, in.Description, in.Price, in.CategoryID, in.Stock, image, id); err != nil {
		return err
	}

	if replaceColors {
		if _, err := tx.ExecContext(ctx, "DELETE FROM product_colors WHERE product_id = ?", id); err != nil {
			return err
		}
		if err := insertColors(ctx, tx, id, in.Colors); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertColors(ctx context.Context, tx *sql.Tx, productID int64, colors []models.ColorInput) error {
	for _, col := range colors {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO product_colors (product_id, color_name, color_code) VALUES (?, ?, ?)",
			productID, col.Name, col.Code); err != nil {
			return err
		}
	}
	return nil
}

// DeleteProduct is the handler for DELETE /api/admin/products/:id
// Products are hidden, not removed, so past order items keep their reference.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"UPDATE products SET is_active = 0 WHERE product_id = ? AND is_active = 1", id)
	if err != nil {
		h.Log.Error().Err(err).Int64("product_id", id).Msg("delete product")
		fail(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	h.Log.Info().Int64("product_id", id).Msg("product deleted")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}
