package http

import (
	"context"
	"errors"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

var errNotWired = errors.New("mock not wired")

type fakeOrderRepo struct {
	CreateFunc         func(ctx context.Context, o *usecase.NewOrder) (int64, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*usecase.OrderRecord, error)
	ListByCustomerFunc func(ctx context.Context, customerID int64) ([]usecase.OrderRecord, error)
	UpdateStatusFunc   func(ctx context.Context, id int64, statusID int) error
	UpdateStatusIfFunc func(ctx context.Context, id int64, from, to int) (bool, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *usecase.NewOrder) (int64, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, o)
	}
	return 0, errNotWired
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*usecase.OrderRecord, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, errNotWired
}

func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]usecase.OrderRecord, error) {
	if f.ListByCustomerFunc != nil {
		return f.ListByCustomerFunc(ctx, customerID)
	}
	return nil, errNotWired
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, statusID int) error {
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, id, statusID)
	}
	return errNotWired
}

func (f *fakeOrderRepo) UpdateStatusIf(ctx context.Context, id int64, from, to int) (bool, error) {
	if f.UpdateStatusIfFunc != nil {
		return f.UpdateStatusIfFunc(ctx, id, from, to)
	}
	return false, errNotWired
}

type fakePaymentRepo struct {
	SettleFunc func(ctx context.Context, orderID int64, transactionID string, rawPayload []byte) (bool, error)
}

func (f *fakePaymentRepo) Settle(ctx context.Context, orderID int64, transactionID string, rawPayload []byte) (bool, error) {
	if f.SettleFunc != nil {
		return f.SettleFunc(ctx, orderID, transactionID, rawPayload)
	}
	return false, errNotWired
}

func (f *fakePaymentRepo) GetByOrder(context.Context, int64) (*usecase.PaymentRecord, error) {
	return nil, errNotWired
}

type fakeCustomerRepo struct {
	CreateAccountFunc        func(ctx context.Context, acc *usecase.NewAccount) (*usecase.UserRecord, error)
	FindUserByEmailFunc      func(ctx context.Context, email string) (*usecase.UserRecord, error)
	UpdateCustomerFunc       func(ctx context.Context, customerID int64, firstName, lastName, phone string) (*usecase.UserRecord, error)
	PasswordHashByUserIDFunc func(ctx context.Context, userID int64) (string, error)
	UpdatePasswordFunc       func(ctx context.Context, userID int64, hash string) error
	EmailByCustomerIDFunc    func(ctx context.Context, customerID int64) (string, error)
}

func (f *fakeCustomerRepo) CreateAccount(ctx context.Context, acc *usecase.NewAccount) (*usecase.UserRecord, error) {
	if f.CreateAccountFunc != nil {
		return f.CreateAccountFunc(ctx, acc)
	}
	return nil, errNotWired
}

func (f *fakeCustomerRepo) FindUserByEmail(ctx context.Context, email string) (*usecase.UserRecord, error) {
	if f.FindUserByEmailFunc != nil {
		return f.FindUserByEmailFunc(ctx, email)
	}
	return nil, errNotWired
}

func (f *fakeCustomerRepo) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone string) (*usecase.UserRecord, error) {
	if f.UpdateCustomerFunc != nil {
		return f.UpdateCustomerFunc(ctx, customerID, firstName, lastName, phone)
	}
	return nil, errNotWired
}

func (f *fakeCustomerRepo) PasswordHashByUserID(ctx context.Context, userID int64) (string, error) {
	if f.PasswordHashByUserIDFunc != nil {
		return f.PasswordHashByUserIDFunc(ctx, userID)
	}
	return "", errNotWired
}

func (f *fakeCustomerRepo) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	if f.UpdatePasswordFunc != nil {
		return f.UpdatePasswordFunc(ctx, userID, hash)
	}
	return errNotWired
}

func (f *fakeCustomerRepo) EmailByCustomerID(ctx context.Context, customerID int64) (string, error) {
	if f.EmailByCustomerIDFunc != nil {
		return f.EmailByCustomerIDFunc(ctx, customerID)
	}
	return "", errNotWired
}

type fakeProvider struct {
	CreateSessionFunc func(ctx context.Context, req usecase.CheckoutRequest) (string, error)
}

func (f *fakeProvider) CreateSession(ctx context.Context, req usecase.CheckoutRequest) (string, error) {
	if f.CreateSessionFunc != nil {
		return f.CreateSessionFunc(ctx, req)
	}
	return "", errNotWired
}
