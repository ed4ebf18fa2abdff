package ports

import (
	"context"
	"time"

	"github.com/miniorder/order-system/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
//
// Every status mutation goes through a conditional write guarded by the
// expected prior status, so a transition can never be applied twice and a
// terminal state can never be resurrected by a concurrent writer.
type OrderRepository interface {
	// Create inserts a new order and returns it with its allocated ID.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// FindByID retrieves an order by id, scoped to its owner. A missing
	// order and an order owned by someone else are indistinguishable: both
	// return domain.ErrOrderNotFound.
	FindByID(ctx context.Context, id, ownerID int64) (*domain.Order, error)

	// ListByOwner returns all orders owned by ownerID, newest first
	// (descending created_at). An empty status means no status filter.
	ListByOwner(ctx context.Context, ownerID int64, status domain.OrderStatus) ([]domain.Order, error)

	// UpdateStatus applies "set status = to where id, owner and status = from"
	// and reports whether the precondition matched. A false result with a nil
	// error means another writer moved the order first.
	UpdateStatus(ctx context.Context, id, ownerID int64, from, to domain.OrderStatus, at time.Time) (bool, error)

	// AdvanceAll transitions every order currently in from to to, touching
	// updated_at, and returns the number of orders mutated. When olderThan is
	// positive only orders whose updated_at is at least that old are eligible.
	AdvanceAll(ctx context.Context, from, to domain.OrderStatus, olderThan time.Duration, at time.Time) (int64, error)
}
