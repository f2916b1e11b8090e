package orders

import (
	"context"
	"errors"
	"sync"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store. Transactions are fully serialized, which is
// what InnoDB row locks give a cart touching the same products, and each works
// on a private copy that replaces the shared state on Commit.
type memStore struct {
	lock sync.Mutex // held for the lifetime of a transaction

	mu         sync.Mutex // guards the fields below for test inspection
	stock      map[int64]int
	orders     map[int64]models.Order
	items      []models.OrderItem
	nextID     int64
	begins     int
	failOn     map[string]error
	staleReads bool // report more stock than exists, as a read without row locks could
}

func newMemStore(stock map[int64]int) *memStore {
	s := &memStore{
		stock:  map[int64]int{},
		orders: map[int64]models.Order{},
		failOn: map[string]error{},
	}
	for id, n := range stock {
		s.stock[id] = n
	}
	return s
}

func (s *memStore) stockOf(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[id]
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) itemsOf(orderID int64) []models.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OrderItem
	for _, it := range s.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (s *memStore) BeginTx(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.lock.Lock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.begins++
	if err := s.failOn["begin"]; err != nil {
		s.lock.Unlock()
		return nil, err
	}

	tx := &memTx{
		store:  s,
		stock:  map[int64]int{},
		orders: map[int64]models.Order{},
		nextID: s.nextID,
	}
	for id, n := range s.stock {
		tx.stock[id] = n
	}
	return tx, nil
}

type memTx struct {
	store  *memStore
	stock  map[int64]int
	orders map[int64]models.Order
	items  []models.OrderItem
	nextID int64
	done   bool
}

var errTxDone = errors.New("transaction already finished")

func (t *memTx) injected(op string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.store.failOn[op]
}

func (t *memTx) CreateOrder(ctx context.Context, customerName string, total decimal.Decimal) (int64, error) {
	if err := t.injected("create order"); err != nil {
		return 0, err
	}
	t.nextID++
	t.orders[t.nextID] = models.Order{
		ID:           t.nextID,
		CustomerName: customerName,
		TotalAmount:  total,
		Status:       models.OrderStatusPending,
	}
	return t.nextID, nil
}

func (t *memTx) ProductStock(ctx context.Context, productID int64) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if err := t.injected("read stock"); err != nil {
		return 0, false, err
	}
	n, ok := t.stock[productID]
	if ok && t.store.staleReads {
		n += 100
	}
	return n, ok, nil
}

func (t *memTx) AddItem(ctx context.Context, item models.OrderItem) error {
	if err := t.injected("add item"); err != nil {
		return err
	}
	t.items = append(t.items, item)
	return nil
}

func (t *memTx) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	if err := t.injected("decrement stock"); err != nil {
		return false, err
	}
	if t.stock[productID] < quantity {
		return false, nil
	}
	t.stock[productID] -= quantity
	return true, nil
}

func (t *memTx) Commit() error {
	if t.done {
		return errTxDone
	}
	t.done = true
	defer t.store.lock.Unlock()

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.failOn["commit"]; err != nil {
		return err
	}
	t.store.stock = t.stock
	for id, o := range t.orders {
		t.store.orders[id] = o
	}
	t.store.items = append(t.store.items, t.items...)
	t.store.nextID = t.nextID
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.lock.Unlock()
	return nil
}
