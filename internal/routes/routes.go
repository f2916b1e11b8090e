package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/01moynul/fashionhub/internal/assets"
	"github.com/01moynul/fashionhub/internal/handlers"
	"github.com/01moynul/fashionhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	Logger      zerolog.Logger
	Tokens      middleware.TokenValidator
	Limiter     *middleware.RateLimiter // guards order and contact submissions
	UploadDir   string
	FrontendDir string

	// TrustedProxies may set X-Forwarded-For. When empty the client IP is
	// always the connection's remote address.
	TrustedProxies []string
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		opts.Logger.Error().Err(err).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.Recovery(opts.Logger))
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(middleware.CORS())

	submit := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		submit = opts.Limiter.Middleware()
	}

	api := router.Group("/api")
	{
		// --- Public Routes ---
		api.GET("/health", h.Health)
		api.GET("/categories", h.GetCategories)
		api.GET("/products", h.GetProducts)
		api.GET("/products/:id", h.GetProduct)

		api.POST("/orders", submit, h.PlaceOrder)
		api.POST("/contact", submit, h.SubmitContact)

		api.POST("/admin/login", submit, h.Login)

		// --- Admin Routes (Bearer Token Required) ---
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(opts.Tokens))
		{
			admin.POST("/change-password", h.ChangePassword)
			admin.GET("/dashboard-stats", h.GetDashboardStats)

			admin.GET("/categories", h.AdminGetCategories)
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.GET("/products", h.AdminGetProducts)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)

			admin.GET("/orders", h.ListOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			admin.GET("/contact-messages", h.ListContactMessages)
			admin.PUT("/contact-messages/:id/status", h.UpdateContactStatus)

			admin.POST("/test-email", h.SendTestEmail)
		}
	}

	// --- Uploaded Images ---
	uploads := router.Group(assets.PublicPrefix, uploadHeaders())
	uploads.Static("/", opts.UploadDir)

	// --- Storefront (SPA) ---
	router.NoRoute(spaFallback(opts.FrontendDir))

	return router
}

func uploadHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

// spaFallback serves files from dir and index.html for any other GET so the
// client-side router can take over. Unknown /api paths get a JSON 404.
func spaFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "API route " + p + " not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}
		c.File(index)
	}
}
