package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
)

func validCreateInput() CreateOrderInput {
	return CreateOrderInput{
		CustomerID:        7,
		ShippingAddressID: 3,
		PaymentMethodID:   1,
		ShippingMethodID:  2,
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 2, UnitPrice: 25.00},
			{ProductID: 11, Quantity: 1, UnitPrice: 50.00},
		},
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	uc := NewCreateOrder(&MockOrderRepo{}, nil, nil)

	t.Run("missing references", func(t *testing.T) {
		in := validCreateInput()
		in.ShippingAddressID = 0
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		in := validCreateInput()
		in.Items = nil
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})

	t.Run("bad quantity", func(t *testing.T) {
		in := validCreateInput()
		in.Items[0].Quantity = 0
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})
}

func TestCreateOrder_PersistsDerivedFields(t *testing.T) {
	var stored *NewOrder
	repo := &MockOrderRepo{
		CreateFunc: func(_ context.Context, o *NewOrder) (int64, error) {
			stored = o
			return 42, nil
		},
		GetByIDFunc: func(_ context.Context, id int64) (*OrderRecord, error) {
			return &OrderRecord{ID: id, StatusID: int(domain.StatusPendingPayment), Total: 116.00}, nil
		},
	}
	events := &MockPublisher{}
	cache := NewMockCache()
	uc := NewCreateOrder(repo, events, cache)

	out, err := uc.Execute(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 42 {
		t.Fatalf("want order id 42, got %d", out.ID)
	}

	if stored == nil {
		t.Fatal("order never reached the repo")
	}
	if stored.Subtotal != 100.00 || stored.Tax != 16.00 || stored.Total != 116.00 {
		t.Errorf("totals = %.2f/%.2f/%.2f, want 100.00/16.00/116.00", stored.Subtotal, stored.Tax, stored.Total)
	}
	if stored.StatusID != int(domain.StatusPendingPayment) {
		t.Errorf("status = %d, want pending payment", stored.StatusID)
	}
	if !strings.HasPrefix(stored.TrackingCode, domain.TrackingCodePrefix) {
		t.Errorf("tracking code %q lacks prefix", stored.TrackingCode)
	}
	if len(stored.Items) != 2 || stored.Items[0].Subtotal != 50.00 {
		t.Errorf("line items not snapshotted: %+v", stored.Items)
	}

	if cache.Statuses[42] != int(domain.StatusPendingPayment) {
		t.Error("status cache not primed")
	}
	if len(events.Created) != 1 || events.Created[0].OrderID != 42 {
		t.Errorf("order.created not published: %+v", events.Created)
	}
}

func TestCreateOrder_RepoErrorPropagates(t *testing.T) {
	boom := errors.New("deadlock")
	repo := &MockOrderRepo{
		CreateFunc: func(context.Context, *NewOrder) (int64, error) { return 0, boom },
	}
	uc := NewCreateOrder(repo, &MockPublisher{}, NewMockCache())

	if _, err := uc.Execute(context.Background(), validCreateInput()); !errors.Is(err, boom) {
		t.Fatalf("want wrapped repo error, got %v", err)
	}
}

func TestCreateOrder_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := &MockOrderRepo{
		CreateFunc: func(context.Context, *NewOrder) (int64, error) { return 9, nil },
		GetByIDFunc: func(_ context.Context, id int64) (*OrderRecord, error) {
			return &OrderRecord{ID: id, StatusID: int(domain.StatusPendingPayment)}, nil
		},
	}
	events := &MockPublisher{Err: errors.New("broker down")}
	cache := NewMockCache()
	cache.Err = errors.New("redis down")
	uc := NewCreateOrder(repo, events, cache)

	out, err := uc.Execute(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("side effect failures must not surface: %v", err)
	}
	if out.ID != 9 {
		t.Fatalf("want order id 9, got %d", out.ID)
	}
}

func TestNewTrackingCode(t *testing.T) {
	code := NewTrackingCode()
	rest, ok := strings.CutPrefix(code, domain.TrackingCodePrefix)
	if !ok {
		t.Fatalf("code %q lacks prefix %q", code, domain.TrackingCodePrefix)
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 2 || len(parts[1]) != 5 {
		t.Fatalf("code %q not in <millis>-<5 chars> form", code)
	}
	if parts[1] != strings.ToUpper(parts[1]) {
		t.Errorf("suffix %q not uppercase", parts[1])
	}
	if NewTrackingCode() == code {
		t.Error("two codes collided")
	}
}
