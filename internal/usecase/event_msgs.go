package usecase

// Published on the order.events exchange for the notification worker.

type OrderCreatedMsg struct {
	EventID      string  `json:"eventId"`
	OrderID      int64   `json:"orderId"`
	CustomerID   int64   `json:"customerId"`
	Total        float64 `json:"total"`
	TrackingCode string  `json:"trackingCode"`
}

type OrderConfirmedMsg struct {
	EventID       string `json:"eventId"`
	OrderID       int64  `json:"orderId"`
	TransactionID string `json:"transactionId"`
}

// Published on the analytics topic whenever an order's status changes.
type OrderStatusChangedMsg struct {
	OrderID    int64  `json:"orderId"`
	FromStatus int    `json:"fromStatus,omitempty"`
	ToStatus   int    `json:"toStatus"`
	Source     string `json:"source"` // "webhook" | "admin"
}
