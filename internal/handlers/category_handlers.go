package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Admin: Category Management ---
//

// CategoryForm is the multipart form for creating or updating a category.
type CategoryForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

// AdminGetCategories is the handler for GET /api/admin/categories
func (h *Handlers) AdminGetCategories(c *gin.Context) {
	categories, err := h.listCategories(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("admin list categories")
		fail(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory is the handler for POST /api/admin/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil || sanitize(form.Name, 100) == "" {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	image, ok := h.saveUpload(c, "image")
	if !ok {
		return
	}
	hover, ok := h.saveUpload(c, "hoverImage")
	if !ok {
		h.discardUpload(image)
		return
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"INSERT INTO categories (category_name, description, image_path, hover_image_path) VALUES (?, ?, ?, ?)",
		sanitize(form.Name, 100), nullable(sanitize(form.Description, 1000)), image, hover)
	if err != nil {
		h.discardUpload(image)
		h.discardUpload(hover)
		h.Log.Error().Err(err).Msg("create category")
		fail(c, http.StatusInternalServerError, "Failed to create category")
		return
	}
	id, _ := result.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Category created successfully",
		"categoryId": id,
	})
}

// UpdateCategory is the handler for PUT /api/admin/categories/:id
// Images are only replaced when a new file is sent.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil || sanitize(form.Name, 100) == "" {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	ctx := c.Request.Context()
	var oldImage, oldHover *string
	err := h.DB.QueryRowContext(ctx,
		"SELECT image_path, hover_image_path FROM categories WHERE category_id = ? AND is_active = 1", id,
	).Scan(&oldImage, &oldHover)
	if errors.Is(err, sql.ErrNoRows) {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("category_id", id).Msg("load category")
		fail(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	image, ok := h.saveUpload(c, "image")
	if !ok {
		return
	}
	hover, ok := h.saveUpload(c, "hoverImage")
	if !ok {
		h.discardUpload(image)
		return
	}

	_, err = h.DB.ExecContext(ctx, `
		UPDATE categories
		SET category_name = ?, description = ?,
		    image_path = COALESCE(?, image_path),
		    hover_image_path = COALESCE(?, hover_image_path)
		WHERE category_id = ?`,
		sanitize(form.Name, 100), nullable(sanitize(form.Description, 1000)), image, hover, id)
	if err != nil {
		h.discardUpload(image)
		h.discardUpload(hover)
		h.Log.Error().Err(err).Int64("category_id", id).Msg("update category")
		fail(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	if image != nil {
		h.discardUpload(oldImage)
	}
	if hover != nil {
		h.discardUpload(oldHover)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully"})
}

// DeleteCategory is the handler for DELETE /api/admin/categories/:id
// It only hides the category; products keep their category_id.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"UPDATE categories SET is_active = 0 WHERE category_id = ? AND is_active = 1", id)
	if err != nil {
		h.Log.Error().Err(err).Int64("category_id", id).Msg("delete category")
		fail(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}

// nullable maps "" to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
