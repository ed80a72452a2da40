package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
	"github.com/google/uuid"
)

type CreateOrderInput struct {
	CustomerID        int64
	ShippingAddressID int64
	PaymentMethodID   int64
	ShippingMethodID  int64
	Items             []domain.OrderItem
	Notes             string
}

type CreateOrder struct {
	orders OrderRepo
	events EventPublisher
	cache  OrderCache
}

func NewCreateOrder(orders OrderRepo, events EventPublisher, cache OrderCache) *CreateOrder {
	return &CreateOrder{orders: orders, events: events, cache: cache}
}

// Execute validates the input, computes the derived monetary fields and
// persists the order, its line items, and the pending payment record as
// one atomic unit. The returned record carries the joined lookup names.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*OrderRecord, error) {
	if in.CustomerID == 0 || in.ShippingAddressID == 0 || in.PaymentMethodID == 0 || in.ShippingMethodID == 0 {
		return nil, fmt.Errorf("%w: missing order references", ErrValidation)
	}
	if err := domain.ValidateItems(in.Items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	subtotal, tax, total := domain.ComputeTotals(in.Items)

	rec := &NewOrder{
		CustomerID:        in.CustomerID,
		ShippingAddressID: in.ShippingAddressID,
		PaymentMethodID:   in.PaymentMethodID,
		ShippingMethodID:  in.ShippingMethodID,
		StatusID:          int(domain.StatusPendingPayment),
		Subtotal:          subtotal,
		Tax:               tax,
		Total:             total,
		TrackingCode:      NewTrackingCode(),
		Notes:             in.Notes,
	}
	for _, it := range in.Items {
		rec.Items = append(rec.Items, OrderItemRecord{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  domain.Round2(it.UnitPrice * float64(it.Quantity)),
		})
	}

	id, err := uc.orders.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	out, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load created order: %w", err)
	}

	l := logging.FromCtx(ctx)
	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, id, out.StatusID); err != nil {
			l.Warn("order status cache write failed", "order_id", id, "err", err)
		}
	}
	if uc.events != nil {
		msg := OrderCreatedMsg{
			EventID:      uuid.NewString(),
			OrderID:      id,
			CustomerID:   in.CustomerID,
			Total:        total,
			TrackingCode: rec.TrackingCode,
		}
		if err := uc.events.PublishOrderCreated(ctx, msg); err != nil {
			l.Warn("order.created publish failed", "order_id", id, "err", err)
		}
	}

	return out, nil
}

// NewTrackingCode builds the human-readable code the original system
// used: PED-<unix millis>-<5 random chars, uppercase>.
func NewTrackingCode() string {
	rnd := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("%s%d-%s", domain.TrackingCodePrefix, time.Now().UnixMilli(), rnd)
}
