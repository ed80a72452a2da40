package usecase

import (
	"context"
	"time"
)

// Persistence shapes (kept out of domain).

type OrderRecord struct {
	ID                int64
	CustomerID        int64
	ShippingAddressID int64
	PaymentMethodID   int64
	ShippingMethodID  int64
	StatusID          int
	Subtotal          float64
	Tax               float64
	Total             float64
	TrackingCode      string
	Notes             string
	CreatedAt         time.Time

	// Joined lookups, populated on reads.
	StatusName         string
	PaymentMethodName  string
	ShippingMethodName string
	ShippingCost       float64
	Address            *AddressRecord
	Items              []OrderItemRecord
}

type OrderItemRecord struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
	ProductName string
	ImageURL    string
}

type NewOrder struct {
	CustomerID        int64
	ShippingAddressID int64
	PaymentMethodID   int64
	ShippingMethodID  int64
	StatusID          int
	Subtotal          float64
	Tax               float64
	Total             float64
	TrackingCode      string
	Notes             string
	Items             []OrderItemRecord
}

type PaymentRecord struct {
	ID              int64
	OrderID         int64
	PaymentMethodID int64
	Amount          float64
	Status          string
	TransactionID   string
	RawPayload      []byte
	CreatedAt       time.Time
}

type AddressRecord struct {
	ID           int64   `json:"direccion_id"`
	CustomerID   int64   `json:"cliente_id"`
	Kind         string  `json:"tipo"`
	Street       string  `json:"calle"`
	ExteriorNo   string  `json:"numero_exterior"`
	InteriorNo   string  `json:"numero_interior"`
	Neighborhood string  `json:"colonia"`
	City         string  `json:"ciudad"`
	State        string  `json:"estado"`
	PostalCode   string  `json:"codigo_postal"`
	Country      string  `json:"pais"`
	References   string  `json:"referencias"`
}

type OrderRepo interface {
	// Create persists the order, its line items, and the pending payment
	// record in one transaction and returns the new order id.
	Create(ctx context.Context, o *NewOrder) (int64, error)
	GetByID(ctx context.Context, id int64) (*OrderRecord, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]OrderRecord, error)
	UpdateStatus(ctx context.Context, id int64, statusID int) error
}

type PaymentRepo interface {
	// Settle transitions the order's payment from pending to completed.
	// Returns false when no pending record matched (already settled or
	// never created); that is a no-op, not an error.
	Settle(ctx context.Context, orderID int64, transactionID string, rawPayload []byte) (bool, error)
	GetByOrder(ctx context.Context, orderID int64) (*PaymentRecord, error)
}

// CheckoutProvider is the hosted-checkout payment provider.

type CheckoutLine struct {
	Name            string
	UnitAmountCents int64
	Quantity        int
}

type CheckoutRequest struct {
	// Reference is the opaque correlation token (the order id) the
	// provider echoes back unchanged in its completion event.
	Reference     string
	Currency      string
	CustomerEmail string
	Lines         []CheckoutLine
	SuccessURL    string
	CancelURL     string
}

type CheckoutProvider interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (redirectURL string, err error)
}

// EventPublisher pushes order lifecycle events to the broker for the
// external notification worker. Best-effort on the hot path.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error
	PublishOrderConfirmed(ctx context.Context, msg OrderConfirmedMsg) error
}

// StatusPublisher feeds the analytics topic with status changes.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
}

// OrderCache is a read-side cache plus the webhook event dedup marker.
// The conditional settle update remains the correctness guarantee; the
// marker only saves duplicate work. An event id is marked only after a
// clean apply, so a redelivery of a failed attempt runs again.
type OrderCache interface {
	SetStatus(ctx context.Context, orderID int64, statusID int) error
	GetStatus(ctx context.Context, orderID int64) (int, bool, error)
	EventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}

type CustomerRepo interface {
	CreateAccount(ctx context.Context, acc *NewAccount) (*UserRecord, error)
	FindUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone string) (*UserRecord, error)
	PasswordHashByUserID(ctx context.Context, userID int64) (string, error)
	UpdatePassword(ctx context.Context, userID int64, hash string) error
	EmailByCustomerID(ctx context.Context, customerID int64) (string, error)
}

type NewAccount struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
}

type UserRecord struct {
	UserID       int64  `json:"usuario_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	UserType     string `json:"tipo_usuario"`
	CustomerID   int64  `json:"cliente_id"`
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	Phone        string `json:"telefono"`
}

type AddressRepo interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]AddressRecord, error)
	Create(ctx context.Context, a *AddressRecord) (*AddressRecord, error)
	Update(ctx context.Context, a *AddressRecord) error
	Delete(ctx context.Context, id int64) error
}

type ProductRecord struct {
	ID           int64           `json:"producto_id"`
	CategoryID   int64           `json:"categoria_id"`
	CategoryName string          `json:"categoria_nombre,omitempty"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion"`
	Price        float64         `json:"precio"`
	ImageURL     string          `json:"imagen_url"`
	Reviews      []ReviewRecord  `json:"resenas,omitempty"`
}

type ReviewRecord struct {
	ID           int64     `json:"resena_id"`
	ProductID    int64     `json:"producto_id"`
	CustomerID   int64     `json:"cliente_id"`
	OrderID      int64     `json:"pedido_id"`
	Rating       int       `json:"puntuacion"`
	Comment      string    `json:"comentario"`
	CustomerName string    `json:"cliente_nombre,omitempty"`
	CreatedAt    time.Time `json:"fecha"`
}

type CategoryRecord struct {
	ID       int64  `json:"categoria_id"`
	ParentID *int64 `json:"categoria_padre_id"`
	Name     string `json:"nombre"`
}

type MethodRecord struct {
	ID   int64   `json:"id"`
	Name string  `json:"nombre"`
	Cost float64 `json:"costo,omitempty"`
}

type CatalogRepo interface {
	ListProducts(ctx context.Context, categoryID int64) ([]ProductRecord, error)
	GetProduct(ctx context.Context, id int64) (*ProductRecord, error)
	ListCategories(ctx context.Context) ([]CategoryRecord, error)
	ListShippingMethods(ctx context.Context) ([]MethodRecord, error)
	ListPaymentMethods(ctx context.Context) ([]MethodRecord, error)
	CreateReview(ctx context.Context, r *ReviewRecord) (int64, error)
}
