package handlers

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/01moynul/fashionhub/internal/email"
	"github.com/01moynul/fashionhub/internal/orders"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OrderPlacer is the order engine as seen by the HTTP layer.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orders.PlaceOrderRequest) (int64, error)
}

// TokenIssuer signs admin tokens after a successful login.
type TokenIssuer interface {
	Issue(adminID int64, username string) (string, error)
}

// ImageStore keeps uploaded catalog images.
type ImageStore interface {
	SaveImage(fh *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB     *sql.DB
	Orders OrderPlacer
	Tokens TokenIssuer
	Images ImageStore
	Mailer email.Notifier
	Log    zerolog.Logger

	background sync.WaitGroup
}

// Wait blocks until background work (contact emails) has finished or ctx is done.
func (h *Handlers) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.background.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handlers) goBackground(fn func()) {
	h.background.Add(1)
	go func() {
		defer h.background.Done()
		fn()
	}()
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// sanitize trims input, drops angle brackets and caps its length in runes.
func sanitize(s string, max int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
	if r := []rune(s); len(r) > max {
		s = string(r[:max])
	}
	return strings.TrimSpace(s)
}

// fullURL turns a stored /uploads path into an absolute URL for the current host.
func fullURL(c *gin.Context, p *string) *string {
	if p == nil || *p == "" {
		return p
	}
	if strings.HasPrefix(*p, "http://") || strings.HasPrefix(*p, "https://") {
		return p
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	u := scheme + "://" + c.Request.Host + *p
	return &u
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

// rowExists distinguishes a missing row from an UPDATE that changed nothing,
// since MySQL reports zero affected rows for both. Lookup errors count as
// present so the caller reports success rather than a false 404.
func (h *Handlers) rowExists(ctx context.Context, query string, id int64) bool {
	var one int
	err := h.DB.QueryRowContext(ctx, query, id).Scan(&one)
	return !errors.Is(err, sql.ErrNoRows)
}
