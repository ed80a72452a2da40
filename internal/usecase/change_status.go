package usecase

import (
	"context"
	"fmt"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
)

// ChangeOrderStatus is the admin-side status overwrite. Unlike the
// original system it refuses unknown statuses and illegal transitions.
type ChangeOrderStatus struct {
	orders OrderRepo
	cache  OrderCache
	status StatusPublisher
}

func NewChangeOrderStatus(orders OrderRepo, cache OrderCache, status StatusPublisher) *ChangeOrderStatus {
	return &ChangeOrderStatus{orders: orders, cache: cache, status: status}
}

func (uc *ChangeOrderStatus) Execute(ctx context.Context, orderID int64, statusID int) error {
	to := domain.Status(statusID)
	if !to.Known() {
		return fmt.Errorf("%w: %s (%d)", ErrValidation, domain.ErrUnknownStatus, statusID)
	}

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	from := domain.Status(order.StatusID)
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s: %s -> %s", ErrValidation, domain.ErrInvalidTransition, from.Name(), to.Name())
	}

	if err := uc.orders.UpdateStatus(ctx, orderID, statusID); err != nil {
		return err
	}

	l := logging.FromCtx(ctx)
	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, orderID, statusID); err != nil {
			l.Warn("order status cache write failed", "order_id", orderID, "err", err)
		}
	}
	if uc.status != nil {
		msg := OrderStatusChangedMsg{OrderID: orderID, FromStatus: int(from), ToStatus: statusID, Source: "admin"}
		if err := uc.status.PublishStatusChanged(ctx, msg); err != nil {
			l.Warn("status change publish failed", "order_id", orderID, "err", err)
		}
	}
	return nil
}
