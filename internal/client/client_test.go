package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonvc/ledgerdash/internal/client"
	"github.com/simonvc/ledgerdash/internal/ledger"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestListAccounts_BareArray(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/accounts", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Cash","type":"Asset","balance":500.25},{"id":2,"name":"Rent","type":"Expense","balance":"120"}]`))
	})

	c := client.New(srv.URL + "/api")
	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Cash", accounts[0].Name)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("500.25")))
	assert.Equal(t, ledger.AccountTypeExpense, accounts[1].Type)
}

func TestListTransactions_DataEnvelope(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":9,"date":"2024-01-01","description":"x","debit_account":2,"credit_account":1,"amount":120,"status":"posted"}]}`))
	})

	txns, err := client.New(srv.URL).ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, int64(2), txns[0].DebitAccount)
	assert.Equal(t, ledger.StatusPosted, txns[0].Status)
}

func TestList_BearerHeader(t *testing.T) {
	var got atomic.Value
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	_, err := client.New(srv.URL, client.WithToken("s3cret")).ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", got.Load())

	_, err = client.New(srv.URL).ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got.Load())
}

func TestList_FetchFailed(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token missing"}`))
	})

	_, err := client.New(srv.URL).ListInvoices(context.Background())
	var ff *ledger.FetchFailedError
	require.True(t, errors.As(err, &ff))
	assert.Equal(t, ledger.ResourceInvoices, ff.Resource)
	assert.Equal(t, http.StatusUnauthorized, ff.StatusCode)
	assert.ErrorIs(t, err, ledger.ErrFetchFailed)
}

func TestList_MalformedResponse(t *testing.T) {
	bodies := map[string]string{
		"scalar":            `"hello"`,
		"html":              `<html></html>`,
		"object no data":    `{"accounts":[]}`,
		"data not an array": `{"data":{"id":1}}`,
		"wrong shape":       `[{"id":"one"}]`,
		"empty":             ``,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := client.New(srv.URL).ListAccounts(context.Background())
			var mr *ledger.MalformedResponseError
			require.True(t, errors.As(err, &mr), "got %v", err)
			assert.Equal(t, ledger.ResourceAccounts, mr.Resource)
			assert.ErrorIs(t, err, ledger.ErrMalformedResponse)
		})
	}
}

func TestCreateTransaction_Body(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":17,"message":"Transaction created successfully"}`))
	})

	created, err := client.New(srv.URL).CreateTransaction(context.Background(), ledger.TransactionInput{
		Date:          "2024-03-01",
		Description:   "Supplies",
		DebitAccount:  4,
		CreditAccount: 1,
		Amount:        decimal.RequireFromString("42.10"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17), created.ID)
	// The server does not echo submitted fields.
	assert.Empty(t, created.Description)

	assert.Equal(t, "2024-03-01", body["date"])
	assert.Equal(t, float64(4), body["debit_account"])
	assert.Equal(t, float64(1), body["credit_account"])
	assert.Equal(t, 42.1, body["amount"])
	assert.Equal(t, "pending", body["status"])
	_, hasRef := body["reference"]
	assert.False(t, hasRef)
}

func TestCreateAccount_ZeroBalanceSent(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3}`))
	})

	zero := decimal.Zero
	_, err := client.New(srv.URL).CreateAccount(context.Background(), ledger.AccountInput{
		Name: "Petty Cash", Code: "1003", Type: ledger.AccountTypeAsset, Balance: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), body["balance"])
	assert.Equal(t, "1003", body["code"])
	assert.Equal(t, "Asset", body["type"])
}

func TestCreate_ValidationRejected(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Invoice number already exists"}`, "Invoice number already exists"},
		{"no error field", http.StatusInternalServerError, `{"message":"boom"}`, "server responded with status 500"},
		{"not json", http.StatusBadGateway, `bad gateway`, "server responded with status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.New(srv.URL).CreateInvoice(context.Background(), ledger.InvoiceInput{
				InvoiceNumber: "INV-1", Client: "Acme", Date: "2024-01-01",
				Amount: decimal.NewFromInt(10), Status: ledger.InvoicePaid,
			})
			var vr *ledger.ValidationRejectedError
			require.True(t, errors.As(err, &vr))
			assert.Equal(t, tt.wantMsg, vr.ServerMessage)
			assert.Equal(t, tt.status, vr.StatusCode)
			assert.Equal(t, ledger.ResourceInvoices, vr.Resource)
		})
	}
}

func TestFetchSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Cash","type":"Asset","balance":500}]`))
	})
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"invoice_number":"INV-1","client":"Acme","date":"2024-01-01","amount":5,"status":"paid"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	snap, err := client.New(srv.URL).FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 1)
	assert.Empty(t, snap.Transactions)
	assert.Len(t, snap.Invoices, 1)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestFetchSnapshot_AnyFailureFailsJoin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	snap, err := client.New(srv.URL).FetchSnapshot(context.Background())
	assert.Nil(t, snap)
	var ff *ledger.FetchFailedError
	require.True(t, errors.As(err, &ff))
	assert.Equal(t, ledger.ResourceTransactions, ff.Resource)
}

func TestList_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).ListAccounts(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ledger.ErrFetchFailed)
}

type countingTransport struct {
	calls atomic.Int32
}

func (ct *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ct.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestWithHTTPClient(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	ct := &countingTransport{}

	_, err := client.New(srv.URL, client.WithHTTPClient(&http.Client{Transport: ct})).ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), ct.calls.Load())
}
