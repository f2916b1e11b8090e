package orders

import (
	"context"
	"database/sql"
	"errors"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/shopspring/decimal"
)

// MySQLStore runs placements on InnoDB at READ COMMITTED. Stock reads take a
// row lock (FOR UPDATE) and the decrement is conditional on the remaining
// stock, so two carts can never both consume the last units.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	return &mysqlTx{tx: tx}, nil
}

type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) CreateOrder(ctx context.Context, customerName string, total decimal.Decimal) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO orders (customer_name, total_amount) VALUES (?, ?)",
		customerName, total)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (t *mysqlTx) ProductStock(ctx context.Context, productID int64) (int, bool, error) {
	var stock int
	err := t.tx.QueryRowContext(ctx,
		"SELECT stock_quantity FROM products WHERE product_id = ? AND is_active = 1 FOR UPDATE",
		productID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return stock, true, nil
}

func (t *mysqlTx) AddItem(ctx context.Context, item models.OrderItem) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO order_items (order_id, product_id, color_name, quantity, unit_price) VALUES (?, ?, ?, ?, ?)",
		item.OrderID, item.ProductID, item.ColorName, item.Quantity, item.UnitPrice)
	return err
}

func (t *mysqlTx) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE products SET stock_quantity = stock_quantity - ? WHERE product_id = ? AND stock_quantity >= ?",
		quantity, productID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *mysqlTx) Commit() error {
	return t.tx.Commit()
}

// Rollback is safe to call after Commit.
func (t *mysqlTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
