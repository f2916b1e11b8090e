// Package orders places storefront orders: one order row, one row per cart
// line and the matching stock decrements, committed together or not at all.
package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	DefaultCustomerName = "WhatsApp Customer"
	DefaultColor        = "Default"
)

// LineItem is one cart line as submitted by the storefront.
type LineItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Color     *string         `json:"color"`
	Price     decimal.Decimal `json:"price"`
}

// PlaceOrderRequest is the body of POST /api/orders.
type PlaceOrderRequest struct {
	CustomerName *string             `json:"customerName"`
	TotalAmount  decimal.NullDecimal `json:"totalAmount"`
	Items        []LineItem          `json:"items"`
}

// Service is the order placement engine.
type Service struct {
	store   Store
	log     zerolog.Logger
	timeout time.Duration
}

// NewService returns a Service placing orders through store. A positive timeout
// bounds each placement; the transaction is rolled back when it expires.
func NewService(store Store, logger zerolog.Logger, timeout time.Duration) *Service {
	return &Service{
		store:   store,
		log:     logger.With().Str("component", "orders").Logger(),
		timeout: timeout,
	}
}

// PlaceOrder validates the cart and applies it in a single transaction.
// Lines are processed in the order given, so repeated product IDs see the
// decrements of earlier lines. Nothing is retried.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (int64, error) {
	total, err := validate(req)
	if err != nil {
		return 0, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, s.fail(&StoreFailure{Op: "begin", Err: err})
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error().Err(rbErr).Msg("rollback failed")
		}
	}()

	customer := DefaultCustomerName
	if req.CustomerName != nil && strings.TrimSpace(*req.CustomerName) != "" {
		customer = strings.TrimSpace(*req.CustomerName)
	}

	orderID, err := tx.CreateOrder(ctx, customer, total)
	if err != nil {
		return 0, s.fail(&StoreFailure{Op: "create order", Err: err})
	}

	for _, item := range req.Items {
		stock, found, err := tx.ProductStock(ctx, item.ProductID)
		if err != nil {
			return 0, s.fail(&StoreFailure{Op: "read stock", Err: err})
		}
		if !found {
			return 0, s.fail(&NotFoundError{ProductID: item.ProductID})
		}
		if item.Quantity > stock {
			return 0, s.fail(&InsufficientStockError{ProductID: item.ProductID, Requested: item.Quantity, Available: stock})
		}

		color := DefaultColor
		if item.Color != nil && *item.Color != "" {
			color = *item.Color
		}
		err = tx.AddItem(ctx, models.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			ColorName: color,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
		if err != nil {
			return 0, s.fail(&StoreFailure{Op: "add item", Err: err})
		}

		ok, err := tx.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return 0, s.fail(&StoreFailure{Op: "decrement stock", Err: err})
		}
		if !ok {
			return 0, s.fail(&InsufficientStockError{ProductID: item.ProductID, Requested: item.Quantity, Available: stock})
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, s.fail(&StoreFailure{Op: "commit", Err: err})
	}
	committed = true

	s.log.Info().
		Int64("order_id", orderID).
		Int("items", len(req.Items)).
		Str("total", total.StringFixed(2)).
		Msg("order placed")
	return orderID, nil
}

func (s *Service) fail(err error) error {
	var sf *StoreFailure
	if errors.As(err, &sf) {
		s.log.Error().Err(err).Msg("order placement failed")
	} else {
		s.log.Warn().Err(err).Msg("order rejected")
	}
	return err
}

// maxMoney is the largest value a DECIMAL(10,2) column holds.
var maxMoney = decimal.RequireFromString("99999999.99")

// checkMoney rejects amounts that would be rounded or overflow on insert.
func checkMoney(d decimal.Decimal, field string) error {
	if !d.Equal(d.Round(2)) {
		return &ValidationError{Msg: field + " cannot have more than 2 decimal places"}
	}
	if d.GreaterThan(maxMoney) {
		return &ValidationError{Msg: field + " is too large"}
	}
	return nil
}

// validate checks the cart without touching the store and returns the order
// total: the client's figure when it agrees with the lines, otherwise the
// computed sum when the client sent none.
func validate(req PlaceOrderRequest) (decimal.Decimal, error) {
	if len(req.Items) == 0 {
		return decimal.Zero, &ValidationError{Msg: "No items in order"}
	}

	sum := decimal.Zero
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return decimal.Zero, &ValidationError{Msg: "Each item needs a valid productId"}
		}
		if item.Quantity < 1 {
			return decimal.Zero, &ValidationError{Msg: "Quantity must be at least 1"}
		}
		if item.Price.IsNegative() {
			return decimal.Zero, &ValidationError{Msg: "Price cannot be negative"}
		}
		if err := checkMoney(item.Price, "Price"); err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if sum.GreaterThan(maxMoney) {
		return decimal.Zero, &ValidationError{Msg: "Total amount is too large"}
	}

	if !req.TotalAmount.Valid {
		return sum, nil
	}
	if err := checkMoney(req.TotalAmount.Decimal, "Total amount"); err != nil {
		return decimal.Zero, err
	}
	if !req.TotalAmount.Decimal.Equal(sum) {
		return decimal.Zero, &ValidationError{Msg: "Total amount does not match order items"}
	}
	return sum, nil
}
