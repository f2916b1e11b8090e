package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Public Catalog Handlers ---
//

// GetCategories is the handler for GET /api/categories
func (h *Handlers) GetCategories(c *gin.Context) {
	categories, err := h.listCategories(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list categories")
		fail(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	for _, cat := range categories {
		cat.ImagePath = fullURL(c, cat.ImagePath)
		cat.HoverImagePath = fullURL(c, cat.HoverImagePath)
	}
	c.JSON(http.StatusOK, categories)
}

// GetProducts is the handler for GET /api/products?category=&search=
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.listProducts(c.Request.Context(), productFilter{
		Category:      sanitize(c.Query("category"), 100),
		Search:        sanitize(c.Query("search"), 100),
		OnlyAvailable: true,
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("list products")
		fail(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	absoluteImages(c, products)
	c.JSON(http.StatusOK, products)
}

// GetProduct is the handler for GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := h.getProduct(c.Request.Context(), id, true)
	if errors.Is(err, sql.ErrNoRows) {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("product_id", id).Msg("get product")
		fail(c, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	absoluteImages(c, []*models.Product{product})
	c.JSON(http.StatusOK, product)
}

func absoluteImages(c *gin.Context, products []*models.Product) {
	for _, p := range products {
		p.ImagePath = fullURL(c, p.ImagePath)
	}
}
