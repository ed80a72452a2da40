package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
)

func orderRouter(repo *fakeOrderRepo) *gin.Engine {
	create := usecase.NewCreateOrder(repo, nil, nil)
	change := usecase.NewChangeOrderStatus(repo, nil, nil)
	h := NewOrderHandler(create, change, repo, nil)

	r := gin.New()
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:id", h.GetOrderByID)
	r.GET("/orders/:id/status", h.GetOrderStatus)
	r.PUT("/orders/:id/status", h.UpdateStatus)
	r.GET("/customers/:id/orders", h.ListCustomerOrders)
	return r
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("computes totals and returns the stored order", func(t *testing.T) {
		repo := &fakeOrderRepo{
			CreateFunc: func(_ context.Context, o *usecase.NewOrder) (int64, error) {
				if o.Subtotal != 100.00 || o.Tax != 16.00 || o.Total != 116.00 {
					t.Errorf("totals = %.2f/%.2f/%.2f", o.Subtotal, o.Tax, o.Total)
				}
				return 42, nil
			},
			GetByIDFunc: func(_ context.Context, id int64) (*usecase.OrderRecord, error) {
				return &usecase.OrderRecord{
					ID:           id,
					CustomerID:   7,
					StatusID:     1,
					StatusName:   "Pendiente de pago",
					Subtotal:     100.00,
					Tax:          16.00,
					Total:        116.00,
					TrackingCode: "PED-1700000000000-AB12C",
					CreatedAt:    time.Now(),
				}, nil
			},
		}

		body := `{
			"customer_id": 7,
			"shipping_address_id": 3,
			"payment_method_id": 1,
			"shipping_method_id": 2,
			"items": [
				{"product_id": 10, "quantity": 2, "precio": 25.00},
				{"product_id": 11, "quantity": 1, "precio": 50.00}
			]
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		orderRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body)
		}
		var resp struct {
			Success bool `json:"success"`
			Order   struct {
				ID           int64   `json:"order_id"`
				StatusID     int     `json:"status_id"`
				Total        float64 `json:"total"`
				TrackingCode string  `json:"tracking_code"`
			} `json:"order"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if !resp.Success || resp.Order.ID != 42 || resp.Order.Total != 116.00 {
			t.Errorf("response = %+v", resp)
		}
		if !strings.HasPrefix(resp.Order.TrackingCode, "PED-") {
			t.Errorf("tracking code = %q", resp.Order.TrackingCode)
		}
	})

	t.Run("missing fields rejected before any persistence", func(t *testing.T) {
		repo := &fakeOrderRepo{
			CreateFunc: func(context.Context, *usecase.NewOrder) (int64, error) {
				t.Fatal("invalid request must not reach the repo")
				return 0, nil
			},
		}

		for _, body := range []string{
			`{}`,
			`{"customer_id": 7, "shipping_address_id": 3, "payment_method_id": 1, "shipping_method_id": 2, "items": []}`,
			`{"customer_id": 7, "shipping_address_id": 3, "payment_method_id": 1, "shipping_method_id": 2, "items": [{"product_id": 10, "quantity": 0, "precio": 5}]}`,
			`not json`,
		} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			orderRouter(repo).ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("body %q: status = %d, want 400", body, w.Code)
			}
		}
	})
}

func TestGetOrderByIDEndpoint(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetByIDFunc: func(_ context.Context, id int64) (*usecase.OrderRecord, error) {
				return nil, fmt.Errorf("order %d: %w", id, usecase.ErrNotFound)
			},
		}
		w := httptest.NewRecorder()
		orderRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/99", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		orderRouter(&fakeOrderRepo{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestListCustomerOrdersEndpoint_EmptyIsNotAnError(t *testing.T) {
	repo := &fakeOrderRepo{
		ListByCustomerFunc: func(context.Context, int64) ([]usecase.OrderRecord, error) {
			return []usecase.OrderRecord{}, nil
		},
	}
	w := httptest.NewRecorder()
	orderRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers/123/orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("body = %s, want empty array", w.Body)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	t.Run("illegal transition", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetByIDFunc: func(_ context.Context, id int64) (*usecase.OrderRecord, error) {
				return &usecase.OrderRecord{ID: id, StatusID: 5}, nil // delivered
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/orders/8/status", strings.NewReader(`{"estado_id": 4}`))
		req.Header.Set("Content-Type", "application/json")
		orderRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("applies", func(t *testing.T) {
		repo := &fakeOrderRepo{
			GetByIDFunc: func(_ context.Context, id int64) (*usecase.OrderRecord, error) {
				return &usecase.OrderRecord{ID: id, StatusID: 2}, nil // confirmed
			},
			UpdateStatusFunc: func(_ context.Context, _ int64, statusID int) error {
				if statusID != 3 {
					t.Errorf("wrote status %d, want 3", statusID)
				}
				return nil
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/orders/8/status", strings.NewReader(`{"estado_id": 3}`))
		req.Header.Set("Content-Type", "application/json")
		orderRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body)
		}
	})
}

func TestGetOrderStatusEndpoint_FallsBackToDatabase(t *testing.T) {
	repo := &fakeOrderRepo{
		GetByIDFunc: func(_ context.Context, id int64) (*usecase.OrderRecord, error) {
			return &usecase.OrderRecord{ID: id, StatusID: 2, StatusName: "Confirmado"}, nil
		},
	}
	w := httptest.NewRecorder()
	orderRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/42/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		OrderID    int64  `json:"order_id"`
		StatusID   int    `json:"status_id"`
		StatusName string `json:"status_name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.OrderID != 42 || resp.StatusID != 2 || resp.StatusName != "Confirmado" {
		t.Errorf("response = %+v", resp)
	}
}
