package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// Client talks to the ledger backend. It keeps no state between calls:
// every call is a fresh round trip with no retries and no caching.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*Client)

// WithToken attaches "Authorization: Bearer <token>" to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "client")
	return c
}

func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var result []ledger.Account
	if err := c.list(ctx, ledger.ResourceAccounts, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	var result []ledger.Transaction
	if err := c.list(ctx, ledger.ResourceTransactions, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListInvoices(ctx context.Context) ([]ledger.Invoice, error) {
	var result []ledger.Invoice
	if err := c.list(ctx, ledger.ResourceInvoices, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateAccount(ctx context.Context, in ledger.AccountInput) (*ledger.Account, error) {
	balance := decimal.Zero
	if in.Balance != nil {
		balance = *in.Balance
	}
	body := map[string]any{
		"name":    in.Name,
		"type":    in.Type,
		"balance": json.Number(balance.String()),
	}
	if in.Code != "" {
		body["code"] = in.Code
	}
	if in.Description != "" {
		body["description"] = in.Description
	}
	var result ledger.Account
	if err := c.create(ctx, ledger.ResourceAccounts, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in ledger.TransactionInput) (*ledger.Transaction, error) {
	status := in.Status
	if status == "" {
		status = ledger.StatusPending
	}
	body := map[string]any{
		"date":           in.Date,
		"description":    in.Description,
		"debit_account":  in.DebitAccount,
		"credit_account": in.CreditAccount,
		"amount":         json.Number(in.Amount.String()),
		"status":         status,
	}
	if in.Reference != "" {
		body["reference"] = in.Reference
	}
	var result ledger.Transaction
	if err := c.create(ctx, ledger.ResourceTransactions, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateInvoice(ctx context.Context, in ledger.InvoiceInput) (*ledger.Invoice, error) {
	body := map[string]any{
		"invoice_number": in.InvoiceNumber,
		"client":         in.Client,
		"date":           in.Date,
		"amount":         json.Number(in.Amount.String()),
		"status":         in.Status,
	}
	var result ledger.Invoice
	if err := c.create(ctx, ledger.ResourceInvoices, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchSnapshot loads accounts, transactions and invoices concurrently.
// If any of the three fails the whole fetch fails; no partial snapshot is
// returned.
func (c *Client) FetchSnapshot(ctx context.Context) (*ledger.Snapshot, error) {
	var snap ledger.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := c.ListAccounts(gctx)
		snap.Accounts = accounts
		return err
	})
	g.Go(func() error {
		txns, err := c.ListTransactions(gctx)
		snap.Transactions = txns
		return err
	})
	g.Go(func() error {
		invoices, err := c.ListInvoices(gctx)
		snap.Invoices = invoices
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.FetchedAt = time.Now()
	return &snap, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/"+string(ledger.ResourceAccounts), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// listEnvelope is the {"success": ..., "data": [...]} wrapper some backend
// builds put around collections.
type listEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) list(ctx context.Context, res ledger.Resource, result any) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/"+string(res), nil)
	if err != nil {
		return err
	}

	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		c.log.Warn("list failed", "resource", res, "status", status)
		return &ledger.FetchFailedError{Resource: res, StatusCode: status}
	}

	data := bytes.TrimSpace(body)
	switch {
	case len(data) > 0 && data[0] == '[':
	case len(data) > 0 && data[0] == '{':
		var env listEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return &ledger.MalformedResponseError{Resource: res, Err: err}
		}
		inner := bytes.TrimSpace(env.Data)
		if len(inner) == 0 || inner[0] != '[' {
			return &ledger.MalformedResponseError{Resource: res}
		}
		data = inner
	default:
		return &ledger.MalformedResponseError{Resource: res}
	}

	if err := json.Unmarshal(data, result); err != nil {
		return &ledger.MalformedResponseError{Resource: res, Err: err}
	}
	return nil
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) create(ctx context.Context, res ledger.Resource, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/"+string(res), bytes.NewReader(payload))
	if err != nil {
		return err
	}

	status, respBody, err := c.do(req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		msg := fmt.Sprintf("server responded with status %d", status)
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		c.log.Warn("create rejected", "resource", res, "status", status, "message", msg)
		return &ledger.ValidationRejectedError{Resource: res, StatusCode: status, ServerMessage: msg}
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &ledger.MalformedResponseError{Resource: res}
	}
	if err := json.Unmarshal(trimmed, result); err != nil {
		return &ledger.MalformedResponseError{Resource: res, Err: err}
	}
	c.log.Info("created", "resource", res, "status", status)
	return nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("request", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	return resp.StatusCode, body, nil
}
