package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

func sessionRequest() usecase.CheckoutRequest {
	return usecase.CheckoutRequest{
		Reference:     "77",
		Currency:      "mxn",
		CustomerEmail: "ana@example.com",
		SuccessURL:    "https://shop/ok",
		CancelURL:     "https://shop/cancel",
		Lines: []usecase.CheckoutLine{
			{Name: "Garrafón 20L", UnitAmountCents: 3550, Quantity: 2},
		},
	}
}

func TestClientCreateSession(t *testing.T) {
	t.Run("sends the form and returns the redirect url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
				t.Errorf("%s %s", r.Method, r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
				t.Errorf("authorization = %q", got)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatal(err)
			}
			if r.PostForm.Get("client_reference_id") != "77" {
				t.Errorf("client_reference_id = %q", r.PostForm.Get("client_reference_id"))
			}
			if r.PostForm.Get("line_items[0][price_data][unit_amount]") != "3550" {
				t.Errorf("unit_amount = %q", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			}
			if r.PostForm.Get("line_items[0][price_data][currency]") != "mxn" {
				t.Errorf("currency = %q", r.PostForm.Get("line_items[0][price_data][currency]"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "cs_abc", "url": "https://pay.example.com/s/abc"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sk_test_123", time.Second)
		url, err := c.CreateSession(context.Background(), sessionRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://pay.example.com/s/abc" {
			t.Fatalf("url = %q", url)
		}
	})

	t.Run("provider error message surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error": {"message": "card declined"}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sk_test_123", time.Second)
		_, err := c.CreateSession(context.Background(), sessionRequest())
		if !errors.Is(err, usecase.ErrUpstream) {
			t.Fatalf("want ErrUpstream, got %v", err)
		}
		if !strings.Contains(err.Error(), "card declined") {
			t.Errorf("error %q lacks provider message", err)
		}
	})

	t.Run("non-json response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sk_test_123", time.Second)
		if _, err := c.CreateSession(context.Background(), sessionRequest()); !errors.Is(err, usecase.ErrUpstream) {
			t.Fatalf("want ErrUpstream, got %v", err)
		}
	})

	t.Run("unreachable provider", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", "sk_test_123", 200*time.Millisecond)
		if _, err := c.CreateSession(context.Background(), sessionRequest()); !errors.Is(err, usecase.ErrUpstream) {
			t.Fatalf("want ErrUpstream, got %v", err)
		}
	})

	t.Run("missing redirect url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "cs_abc"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sk_test_123", time.Second)
		if _, err := c.CreateSession(context.Background(), sessionRequest()); !errors.Is(err, usecase.ErrUpstream) {
			t.Fatalf("want ErrUpstream, got %v", err)
		}
	})
}
