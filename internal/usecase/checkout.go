package usecase

import (
	"context"
	"fmt"
	"strconv"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
)

// StartCheckout builds a hosted-checkout session for an order and
// returns the provider's redirect URL. It mutates no local state.
type StartCheckout struct {
	orders    OrderRepo
	customers CustomerRepo
	provider  CheckoutProvider

	currency   string
	successURL string
	cancelURL  string
}

func NewStartCheckout(orders OrderRepo, customers CustomerRepo, provider CheckoutProvider, currency, successURL, cancelURL string) *StartCheckout {
	return &StartCheckout{
		orders:     orders,
		customers:  customers,
		provider:   provider,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (uc *StartCheckout) Execute(ctx context.Context, orderID int64) (string, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	email, err := uc.customers.EmailByCustomerID(ctx, order.CustomerID)
	if err != nil {
		return "", fmt.Errorf("resolve customer email: %w", err)
	}

	req := CheckoutRequest{
		Reference:     strconv.FormatInt(order.ID, 10),
		Currency:      uc.currency,
		CustomerEmail: email,
		SuccessURL:    uc.successURL,
		CancelURL:     uc.cancelURL,
	}
	// One provider line per order line item, priced at the snapshot
	// unit price. Shipping cost is not sent as a line.
	for _, it := range order.Items {
		req.Lines = append(req.Lines, CheckoutLine{
			Name:            it.ProductName,
			UnitAmountCents: domain.Cents(it.UnitPrice),
			Quantity:        it.Quantity,
		})
	}

	url, err := uc.provider.CreateSession(ctx, req)
	if err != nil {
		return "", err
	}
	return url, nil
}
