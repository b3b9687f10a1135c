package paidcall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/logging"
)

// Client is the HTTP executor for a single paid-service provider. Each
// request carries the payment token and the declared price so the
// provider can settle the call.
type Client struct {
	client       *resty.Client
	paymentToken string
	log          *logging.Logger
}

// NewClient creates an executor for the provider at baseURL.
func NewClient(baseURL, paymentToken string, log *logging.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "paytrader/1.0")

	return &Client{
		client:       client,
		paymentToken: paymentToken,
		log:          log,
	}
}

// Call performs one paid request. On a 402 the provider rejected the
// payment; that is surfaced as a TransportError like any other remote
// rejection.
func (c *Client) Call(ctx context.Context, endpoint string, cost decimal.Decimal, method string, payload interface{}) (*Result, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("X-Payment", c.paymentToken).
		SetHeader("X-Payment-Amount", cost.String())

	if payload != nil {
		req.SetBody(payload)
	}

	var resp *resty.Response
	var err error
	switch method {
	case MethodGet:
		resp, err = req.Get(endpoint)
	case MethodPost:
		resp, err = req.Post(endpoint)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{
			Endpoint: endpoint,
			Status:   resp.StatusCode(),
			Err:      fmt.Errorf("%s", resp.String()),
		}
	}

	result := &Result{
		Data:      json.RawMessage(resp.Body()),
		RequestID: resp.Header().Get("X-Request-Id"),
		Duration:  resp.Time(),
	}

	c.log.Debug("paid call completed",
		logging.String("endpoint", endpoint),
		logging.String("cost", cost.String()),
		logging.String("request_id", result.RequestID),
		logging.Duration("duration", result.Duration),
	)

	return result, nil
}

// ServiceInfo describes one advertised paid service.
type ServiceInfo struct {
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	Method      string `json:"method"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// Discover fetches the provider's service catalog. Discovery itself is
// free and does not go through the ledger.
func (c *Client) Discover(ctx context.Context) ([]ServiceInfo, error) {
	resp, err := c.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return nil, &TransportError{Endpoint: "/", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{Endpoint: "/", Status: resp.StatusCode(), Err: fmt.Errorf("%s", resp.String())}
	}

	var catalog struct {
		Services []ServiceInfo `json:"services"`
	}
	if err := json.Unmarshal(resp.Body(), &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse service catalog: %w", err)
	}
	return catalog.Services, nil
}
