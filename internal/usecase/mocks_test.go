package usecase

import (
	"context"
	"errors"
)

var errMockNotWired = errors.New("mock not wired")

// Function-field mocks, one per port.

type MockOrderRepo struct {
	CreateFunc         func(ctx context.Context, o *NewOrder) (int64, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*OrderRecord, error)
	ListByCustomerFunc func(ctx context.Context, customerID int64) ([]OrderRecord, error)
	UpdateStatusFunc   func(ctx context.Context, id int64, statusID int) error
	UpdateStatusIfFunc func(ctx context.Context, id int64, from, to int) (bool, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *NewOrder) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return 0, errMockNotWired
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*OrderRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errMockNotWired
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]OrderRecord, error) {
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, customerID)
	}
	return nil, errMockNotWired
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int64, statusID int) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, statusID)
	}
	return errMockNotWired
}

func (m *MockOrderRepo) UpdateStatusIf(ctx context.Context, id int64, from, to int) (bool, error) {
	if m.UpdateStatusIfFunc != nil {
		return m.UpdateStatusIfFunc(ctx, id, from, to)
	}
	return false, errMockNotWired
}

// PlainOrderRepo has no guarded update, to exercise the fallback path.
type PlainOrderRepo struct {
	MockOrderRepo
}

func (m *PlainOrderRepo) UpdateStatusIf() {} // shadows the method with a different signature

type MockPaymentRepo struct {
	SettleFunc     func(ctx context.Context, orderID int64, transactionID string, rawPayload []byte) (bool, error)
	GetByOrderFunc func(ctx context.Context, orderID int64) (*PaymentRecord, error)
}

func (m *MockPaymentRepo) Settle(ctx context.Context, orderID int64, transactionID string, rawPayload []byte) (bool, error) {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, orderID, transactionID, rawPayload)
	}
	return false, errMockNotWired
}

func (m *MockPaymentRepo) GetByOrder(ctx context.Context, orderID int64) (*PaymentRecord, error) {
	if m.GetByOrderFunc != nil {
		return m.GetByOrderFunc(ctx, orderID)
	}
	return nil, errMockNotWired
}

type MockCustomerRepo struct {
	EmailByCustomerIDFunc func(ctx context.Context, customerID int64) (string, error)
}

func (m *MockCustomerRepo) CreateAccount(context.Context, *NewAccount) (*UserRecord, error) {
	return nil, errMockNotWired
}
func (m *MockCustomerRepo) FindUserByEmail(context.Context, string) (*UserRecord, error) {
	return nil, errMockNotWired
}
func (m *MockCustomerRepo) UpdateCustomer(context.Context, int64, string, string, string) (*UserRecord, error) {
	return nil, errMockNotWired
}
func (m *MockCustomerRepo) PasswordHashByUserID(context.Context, int64) (string, error) {
	return "", errMockNotWired
}
func (m *MockCustomerRepo) UpdatePassword(context.Context, int64, string) error {
	return errMockNotWired
}
func (m *MockCustomerRepo) EmailByCustomerID(ctx context.Context, customerID int64) (string, error) {
	if m.EmailByCustomerIDFunc != nil {
		return m.EmailByCustomerIDFunc(ctx, customerID)
	}
	return "", errMockNotWired
}

type MockProvider struct {
	CreateSessionFunc func(ctx context.Context, req CheckoutRequest) (string, error)
}

func (m *MockProvider) CreateSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, req)
	}
	return "", errMockNotWired
}

type MockPublisher struct {
	Created   []OrderCreatedMsg
	Confirmed []OrderConfirmedMsg
	Err       error
}

func (m *MockPublisher) PublishOrderCreated(_ context.Context, msg OrderCreatedMsg) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = append(m.Created, msg)
	return nil
}

func (m *MockPublisher) PublishOrderConfirmed(_ context.Context, msg OrderConfirmedMsg) error {
	if m.Err != nil {
		return m.Err
	}
	m.Confirmed = append(m.Confirmed, msg)
	return nil
}

type MockStatusPublisher struct {
	Changes []OrderStatusChangedMsg
	Err     error
}

func (m *MockStatusPublisher) PublishStatusChanged(_ context.Context, msg OrderStatusChangedMsg) error {
	if m.Err != nil {
		return m.Err
	}
	m.Changes = append(m.Changes, msg)
	return nil
}

type MockCache struct {
	Statuses map[int64]int
	Seen     map[string]bool
	Err      error
}

func NewMockCache() *MockCache {
	return &MockCache{Statuses: map[int64]int{}, Seen: map[string]bool{}}
}

func (m *MockCache) SetStatus(_ context.Context, orderID int64, statusID int) error {
	if m.Err != nil {
		return m.Err
	}
	m.Statuses[orderID] = statusID
	return nil
}

func (m *MockCache) GetStatus(_ context.Context, orderID int64) (int, bool, error) {
	if m.Err != nil {
		return 0, false, m.Err
	}
	id, ok := m.Statuses[orderID]
	return id, ok, nil
}

func (m *MockCache) EventProcessed(_ context.Context, eventID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.Seen[eventID], nil
}

func (m *MockCache) MarkEventProcessed(_ context.Context, eventID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Seen[eventID] = true
	return nil
}
