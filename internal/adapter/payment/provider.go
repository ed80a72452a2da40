package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

// Client talks to the hosted-checkout payment provider. The create-call
// is a form-encoded POST; the provider answers with the redirect URL
// the customer is sent to.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateSession(ctx context.Context, req usecase.CheckoutRequest) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", req.Reference)
	form.Set("customer_email", req.CustomerEmail)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	for i, l := range req.Lines {
		p := fmt.Sprintf("line_items[%d]", i)
		form.Set(p+"[quantity]", strconv.Itoa(l.Quantity))
		form.Set(p+"[price_data][currency]", req.Currency)
		form.Set(p+"[price_data][unit_amount]", strconv.FormatInt(l.UnitAmountCents, 10))
		form.Set(p+"[price_data][product_data][name]", l.Name)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", usecase.ErrUpstream, err)
	}

	var sr sessionResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("%w: bad response (%d)", usecase.ErrUpstream, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := sr.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", usecase.ErrUpstream, msg)
	}
	if sr.URL == "" {
		return "", fmt.Errorf("%w: response missing redirect url", usecase.ErrUpstream)
	}
	return sr.URL, nil
}

var _ usecase.CheckoutProvider = (*Client)(nil)
