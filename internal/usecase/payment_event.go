package usecase

import (
	"context"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
	"github.com/google/uuid"
)

// EventCheckoutCompleted is the only provider event kind this system
// applies; everything else is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is a verified provider callback, already parsed by the
// webhook handler. Raw holds the exact body bytes for audit.
type PaymentEvent struct {
	ID            string
	Kind          string
	OrderID       int64
	TransactionID string
	Raw           []byte
}

// ApplyPaymentEvent turns a verified completion event into the order
// status transition and the payment settlement. The two effects are
// independent: either may fail without blocking the other, and neither
// failure reaches the provider.
type ApplyPaymentEvent struct {
	orders   OrderRepo
	payments PaymentRepo
	cache    OrderCache
	events   EventPublisher
	status   StatusPublisher
}

func NewApplyPaymentEvent(orders OrderRepo, payments PaymentRepo, cache OrderCache, events EventPublisher, status StatusPublisher) *ApplyPaymentEvent {
	return &ApplyPaymentEvent{orders: orders, payments: payments, cache: cache, events: events, status: status}
}

func (uc *ApplyPaymentEvent) Execute(ctx context.Context, ev PaymentEvent) {
	l := logging.FromCtx(ctx).With("event_id", ev.ID, "order_id", ev.OrderID)

	if ev.Kind != EventCheckoutCompleted {
		l.Info("ignoring provider event", "kind", ev.Kind)
		return
	}

	// Dedup marker saves duplicate work; the conditional settle update
	// below is what actually guarantees idempotency. Only events whose
	// effects went through cleanly are ever marked, so a redelivery
	// after a failed attempt gets a full retry.
	if uc.cache != nil && ev.ID != "" {
		seen, err := uc.cache.EventProcessed(ctx, ev.ID)
		if err == nil && seen {
			l.Info("duplicate provider event, skipping")
			return
		}
	}

	// Prefer the guarded transition when the repo supports it, so a
	// replayed event against an already-Confirmed order writes nothing.
	type updater interface {
		UpdateStatusIf(ctx context.Context, id int64, from, to int) (bool, error)
	}
	confirmed := false
	confirmErred := false
	if u, ok := any(uc.orders).(updater); ok {
		moved, err := u.UpdateStatusIf(ctx, ev.OrderID, int(domain.StatusPendingPayment), int(domain.StatusConfirmed))
		if err != nil {
			confirmErred = true
			l.Error("order confirm failed", "err", err)
		} else {
			confirmed = moved
			if !moved {
				l.Info("order not pending payment, status untouched")
			}
		}
	} else if err := uc.orders.UpdateStatus(ctx, ev.OrderID, int(domain.StatusConfirmed)); err != nil {
		confirmErred = true
		l.Error("order confirm failed", "err", err)
	} else {
		confirmed = true
	}

	applied, err := uc.payments.Settle(ctx, ev.OrderID, ev.TransactionID, ev.Raw)
	settleErred := err != nil
	if err != nil {
		l.Error("payment settle failed", "err", err)
	} else if !applied {
		l.Info("payment already settled, no-op")
	}

	if uc.cache != nil && ev.ID != "" && !confirmErred && !settleErred {
		if err := uc.cache.MarkEventProcessed(ctx, ev.ID); err != nil {
			l.Warn("event dedup marker write failed", "err", err)
		}
	}

	if !confirmed {
		return
	}
	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, ev.OrderID, int(domain.StatusConfirmed)); err != nil {
			l.Warn("order status cache write failed", "err", err)
		}
	}
	if uc.events != nil {
		msg := OrderConfirmedMsg{EventID: uuid.NewString(), OrderID: ev.OrderID, TransactionID: ev.TransactionID}
		if err := uc.events.PublishOrderConfirmed(ctx, msg); err != nil {
			l.Warn("order.confirmed publish failed", "err", err)
		}
	}
	if uc.status != nil {
		msg := OrderStatusChangedMsg{
			OrderID:    ev.OrderID,
			FromStatus: int(domain.StatusPendingPayment),
			ToStatus:   int(domain.StatusConfirmed),
			Source:     "webhook",
		}
		if err := uc.status.PublishStatusChanged(ctx, msg); err != nil {
			l.Warn("status change publish failed", "err", err)
		}
	}
}
