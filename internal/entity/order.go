package domain

import "errors"

// Status is the order lifecycle state. Values match the seeded
// order_statuses rows so the id travels unchanged through the API.
type Status int

const (
	StatusPendingPayment Status = 1
	StatusConfirmed      Status = 2
	StatusPreparing      Status = 3
	StatusShipped        Status = 4
	StatusDelivered      Status = 5
	StatusCancelled      Status = 6
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidItems      = errors.New("invalid order items")
)

var statusNames = map[Status]string{
	StatusPendingPayment: "Pendiente de pago",
	StatusConfirmed:      "Confirmado",
	StatusPreparing:      "En preparación",
	StatusShipped:        "Enviado",
	StatusDelivered:      "Entregado",
	StatusCancelled:      "Cancelado",
}

// transitions holds the allowed forward edges. Terminal states have none.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered},
}

func (s Status) Known() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) Name() string { return statusNames[s] }

// CanTransition reports whether s -> to is an allowed edge.
func (s Status) CanTransition(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// TaxRate is the IVA applied on the item subtotal at order creation.
const TaxRate = 0.16

type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// ValidateItems enforces the creation preconditions: at least one item,
// positive quantities, non-negative snapshot prices.
func ValidateItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range items {
		if it.ProductID == 0 || it.Quantity <= 0 || it.UnitPrice < 0 {
			return ErrInvalidItems
		}
	}
	return nil
}

// ComputeTotals derives the monetary fields from the item snapshot.
// Shipping cost is not part of the order total.
func ComputeTotals(items []OrderItem) (subtotal, tax, total float64) {
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	subtotal = Round2(subtotal)
	tax = Round2(subtotal * TaxRate)
	total = Round2(subtotal + tax)
	return subtotal, tax, total
}
