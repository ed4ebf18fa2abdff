package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/miniorder/order-system/internal/core/domain"
	"github.com/miniorder/order-system/internal/core/ports"
)

// cancelAttempts bounds how often a cancel is retried after losing a
// conditional-update race against the sweep. Two reads are enough: after one
// lost race the order is either still cancellable (processing) or terminal.
const cancelAttempts = 2

// OrderService is the order lifecycle engine. All status mutations pass
// through it; the repository enforces each transition as a conditional write
// guarded by the expected prior status.
type OrderService struct {
	repo          ports.OrderRepository
	logger        zerolog.Logger
	processAfter  time.Duration // min age before pending -> processing; 0 = immediate
	completeAfter time.Duration // min age before processing -> completed; 0 = immediate
}

// SweepThresholds configures how long an order must sit in a state before
// the sweep advances it. Zero values advance everything eligible each sweep.
type SweepThresholds struct {
	ProcessAfter  time.Duration
	CompleteAfter time.Duration
}

func NewOrderService(repo ports.OrderRepository, thresholds SweepThresholds, logger zerolog.Logger) *OrderService {
	return &OrderService{
		repo:          repo,
		logger:        logger,
		processAfter:  thresholds.ProcessAfter,
		completeAfter: thresholds.CompleteAfter,
	}
}

// CreateOrder validates the input and persists a new pending order with
// created_at == updated_at.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, fmt.Errorf("%w: product name must not be empty", domain.ErrInvalidOrderInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidOrderInput)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:      input.OwnerID,
		ProductName: input.ProductName,
		Amount:      input.Amount,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.OwnerID).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().
		Int64("order_id", created.ID).
		Int64("user_id", created.UserID).
		Str("product", created.ProductName).
		Msg("order created")

	return created, nil
}

// ListOrders returns the owner's orders, newest first, optionally filtered
// by status. An unknown status filter value is rejected.
func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) ([]domain.Order, error) {
	var status domain.OrderStatus
	if input.StatusFilter != "" {
		parsed, err := domain.ParseOrderStatus(input.StatusFilter)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidOrderInput, input.StatusFilter)
		}
		status = parsed
	}

	orders, err := s.repo.ListByOwner(ctx, input.OwnerID, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.OwnerID).Msg("failed to list orders")
		return nil, err
	}
	return orders, nil
}

// CancelOrder moves an order owned by ownerID to cancelled. It only
// succeeds from pending or processing; completed and cancelled are terminal.
//
// The write is conditional on the status observed at read time. When the
// precondition fails the sweep moved the order concurrently: the order is
// re-read and, if it is still cancellable, the cancel is retried. A cancel
// racing a sweep therefore lands in exactly one of {cancelled, processing}
// and never resurrects a terminal state.
func (s *OrderService) CancelOrder(ctx context.Context, ownerID, orderID int64) (*domain.Order, error) {
	for attempt := 0; attempt < cancelAttempts; attempt++ {
		order, err := s.repo.FindByID(ctx, orderID, ownerID)
		if err != nil {
			return nil, err
		}

		if !order.Status.CanTransitionTo(domain.StatusCancelled) {
			return nil, fmt.Errorf("cancel order %d: %w (from %s)", orderID, domain.ErrInvalidTransition, order.Status)
		}

		now := time.Now().UTC()
		ok, err := s.repo.UpdateStatus(ctx, orderID, ownerID, order.Status, domain.StatusCancelled, now)
		if err != nil {
			s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to cancel order")
			return nil, err
		}
		if ok {
			order.Status = domain.StatusCancelled
			order.UpdatedAt = now
			s.logger.Info().Int64("order_id", orderID).Int64("user_id", ownerID).Msg("order cancelled")
			return order, nil
		}

		s.logger.Debug().Int64("order_id", orderID).Msg("cancel lost conditional update, re-reading")
	}

	// Both attempts lost the race; the order must have reached a terminal
	// state in between.
	return nil, fmt.Errorf("cancel order %d: %w (moved concurrently)", orderID, domain.ErrInvalidTransition)
}

// AdvancePendingOrders is the batch sweep. The completion pass runs before
// the pending pass so a single sweep never moves an order two steps:
//
//	processing -> completed   (orders processed by a previous sweep)
//	pending    -> processing  (orders created since)
//
// Each pass is one conditional multi-document update keyed on the prior
// status, making the sweep idempotent per order: a second sweep with no
// intervening creates mutates the pending set of the first one only.
// Returns the total number of orders advanced.
func (s *OrderService) AdvancePendingOrders(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	completed, err := s.repo.AdvanceAll(ctx, domain.StatusProcessing, domain.StatusCompleted, s.completeAfter, now)
	if err != nil {
		return 0, fmt.Errorf("advance processing orders: %w", err)
	}

	processing, err := s.repo.AdvanceAll(ctx, domain.StatusPending, domain.StatusProcessing, s.processAfter, now)
	if err != nil {
		return completed, fmt.Errorf("advance pending orders: %w", err)
	}

	if completed+processing > 0 {
		s.logger.Info().
			Int64("to_processing", processing).
			Int64("to_completed", completed).
			Msg("sweep advanced orders")
	}

	return completed + processing, nil
}
