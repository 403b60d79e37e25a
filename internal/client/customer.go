package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fairdesk/fairdesk-go/internal/middleware"
	"github.com/fairdesk/fairdesk-go/internal/model"
)

// maxResponseBytes caps how much of a customer store response is read.
const maxResponseBytes = 1 << 20

var (
	ErrCustomerNotFound = errors.New("customer not found in customer store")
	ErrUnexpectedStatus = errors.New("unexpected status from customer store")
)

// TokenSource returns the bearer token attached to outbound requests.
type TokenSource func() (string, error)

// CustomerClient talks to the customer service over its REST contract.
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// NewCustomerClient creates a client for the customer store at baseURL,
// e.g. "http://customer-service:8080/api". token may be nil.
func NewCustomerClient(baseURL string, httpClient *http.Client, token TokenSource) *CustomerClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CustomerClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      token,
	}
}

// GetCustomer fetches GET /customers/{id}.
func (c *CustomerClient) GetCustomer(ctx context.Context, id int64) (*model.CustomerResponse, error) {
	var customer model.CustomerResponse
	if err := c.do(ctx, http.MethodGet, customerPath(id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCredentials sends PATCH /customers/{id}/credentials with the new credential map.
func (c *CustomerClient) UpdateCredentials(ctx context.Context, id int64, creds map[string]string) (*model.CustomerResponse, error) {
	body := model.CredentialUpdateRequest{Credentials: creds}

	var customer model.CustomerResponse
	if err := c.do(ctx, http.MethodPatch, customerPath(id)+"/credentials", body, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func customerPath(id int64) string {
	return "/customers/" + strconv.FormatInt(id, 10)
}

func (c *CustomerClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID, ok := middleware.RequestIDFromContext(ctx); ok {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}
	if c.token != nil {
		token, err := c.token()
		if err != nil {
			return fmt.Errorf("creating service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("calling customer store", "method", method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrCustomerNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}

	return nil
}
