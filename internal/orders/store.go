package orders

import (
	"context"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/shopspring/decimal"
)

// Store opens transactional scopes over the catalog and order tables.
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx is one unit of work. Reads through a Tx see its own earlier writes, and
// ProductStock must lock the row until Commit or Rollback.
type Tx interface {
	CreateOrder(ctx context.Context, customerName string, total decimal.Decimal) (int64, error)
	ProductStock(ctx context.Context, productID int64) (stock int, found bool, err error)
	AddItem(ctx context.Context, item models.OrderItem) error
	// DecrementStock subtracts quantity only if enough stock remains and
	// reports whether it did.
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)
	Commit() error
	Rollback() error
}
