package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pocket-ledger/internal/api"
	"pocket-ledger/internal/api/handlers"
	"pocket-ledger/internal/dto"
	"pocket-ledger/internal/models"
	"pocket-ledger/internal/service"
	"pocket-ledger/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore keeps rows in insertion order, mirroring the repository contract.
type memStore struct {
	rows []*models.Transaction
}

func (s *memStore) Create(_ context.Context, tx *models.Transaction) error {
	s.rows = append(s.rows, tx)
	return nil
}

func (s *memStore) ListBySession(_ context.Context, sessionID string) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range s.rows {
		if tx.SessionID == sessionID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memStore) GetBySessionAndID(_ context.Context, sessionID string, id uuid.UUID) (*models.Transaction, error) {
	for _, tx := range s.rows {
		if tx.SessionID == sessionID && tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (s *memStore) SumBySession(_ context.Context, sessionID string) (int64, error) {
	var sum int64
	for _, tx := range s.rows {
		if tx.SessionID == sessionID {
			sum += tx.Amount
		}
	}
	return sum, nil
}

// failStore simulates a storage fault on every operation.
type failStore struct{}

var errStorage = errors.New("connection refused")

func (failStore) Create(context.Context, *models.Transaction) error { return errStorage }

func (failStore) ListBySession(context.Context, string) ([]*models.Transaction, error) {
	return nil, errStorage
}

func (failStore) GetBySessionAndID(context.Context, string, uuid.UUID) (*models.Transaction, error) {
	return nil, errStorage
}

func (failStore) SumBySession(context.Context, string) (int64, error) { return 0, errStorage }

func newTestAppWithStore(store service.TransactionStore) *fiber.App {
	sessionCfg := config.SessionConfig{
		CookieName: "sessionId",
		TTL:        7 * 24 * time.Hour,
	}
	logger := zap.NewNop()
	svc := service.NewTransactionService(store, logger)
	handler := handlers.NewTransactionHandler(svc, sessionCfg, logger)
	return api.SetupRouter(handler, sessionCfg, config.ServerConfig{}, logger)
}

func newTestApp() *fiber.App {
	return newTestAppWithStore(&memStore{})
}

func postJSON(t *testing.T, app *fiber.App, path, body string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "sessionId" {
			return c
		}
	}
	t.Fatal("no sessionId cookie in response")
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return out
}

func TestCreateTransaction(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Errorf("expected empty body, got %q", body)
	}

	cookie := sessionCookie(t, resp)
	if cookie.Value == "" {
		t.Error("minted session cookie has empty value")
	}
	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", cookie.Path)
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("cookie max-age = %d, want 7 days", cookie.MaxAge)
	}
}

func TestCreateReusesExistingSession(t *testing.T) {
	app := newTestApp()

	first := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, first)

	second := postJSON(t, app, "/transactions", `{"title":"Boletos","amount":4000,"type":"debit"}`, cookie)
	if second.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", second.StatusCode)
	}
	for _, c := range second.Cookies() {
		if c.Name == "sessionId" {
			t.Error("create with an existing session must not mint a new cookie")
		}
	}
}

func TestCreateValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"amount":100,"type":"credit"}`},
		{"missing amount", `{"title":"Coffee","type":"debit"}`},
		{"missing type", `{"title":"Coffee","amount":100}`},
		{"type outside enum", `{"title":"Coffee","amount":100,"type":"transfer"}`},
		{"amount wrong type", `{"title":"Coffee","amount":"100","type":"credit"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			resp := postJSON(t, app, "/transactions", tt.body, nil)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			for _, c := range resp.Cookies() {
				if c.Name == "sessionId" {
					t.Error("rejected create must not mint a session cookie")
				}
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	app := newTestApp()

	created := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	resp := getJSON(t, app, "/transactions", cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	list := decode[dto.ListTransactionsResponse](t, resp)
	if len(list.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list.Transactions))
	}
	got := list.Transactions[0]
	if got.Title != "Salario" || got.Amount != 6000 {
		t.Errorf("got %+v, want title Salario amount 6000", got)
	}
}

func TestListWithoutSessionIsUnauthorized(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/transactions", "/transactions/summary", "/transactions/" + uuid.NewString()} {
		resp := getJSON(t, app, path, nil)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestGetTransactionByID(t *testing.T) {
	app := newTestApp()

	created := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	list := decode[dto.ListTransactionsResponse](t, getJSON(t, app, "/transactions", cookie))
	if len(list.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list.Transactions))
	}
	id := list.Transactions[0].ID

	resp := getJSON(t, app, "/transactions/"+id, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[dto.GetTransactionResponse](t, resp)
	if got.Transaction == nil {
		t.Fatal("expected a transaction, got null")
	}
	if got.Transaction.Title != "Salario" || got.Transaction.Amount != 6000 {
		t.Errorf("got %+v, want title Salario amount 6000", got.Transaction)
	}
}

func TestGetUnknownIDReturnsNull(t *testing.T) {
	app := newTestApp()

	created := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	resp := getJSON(t, app, "/transactions/"+uuid.NewString(), cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[dto.GetTransactionResponse](t, resp)
	if got.Transaction != nil {
		t.Errorf("expected null transaction, got %+v", got.Transaction)
	}
}

func TestGetMalformedIDIsBadRequest(t *testing.T) {
	app := newTestApp()

	created := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	resp := getJSON(t, app, "/transactions/not-a-uuid", cookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSummary(t *testing.T) {
	app := newTestApp()

	created := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)
	postJSON(t, app, "/transactions", `{"title":"Boletos","amount":4000,"type":"debit"}`, cookie)

	resp := getJSON(t, app, "/transactions/summary", cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[dto.SummaryResponse](t, resp)
	if got.Summary.Amount != 2000 {
		t.Errorf("summary = %d, want 2000", got.Summary.Amount)
	}
}

// A storage fault must never leave a request unanswered: every endpoint
// answers 500, and a failed create mints no cookie.
func TestStorageFaultIsInternalError(t *testing.T) {
	app := newTestAppWithStore(failStore{})
	cookie := &http.Cookie{Name: "sessionId", Value: uuid.NewString()}

	resp := postJSON(t, app, "/transactions", `{"title":"Salario","amount":6000,"type":"credit"}`, nil)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("POST status = %d, want 500", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sessionId" {
			t.Error("failed create must not mint a session cookie")
		}
	}

	for _, path := range []string{"/transactions", "/transactions/summary", "/transactions/" + uuid.NewString()} {
		resp := getJSON(t, app, path, cookie)
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Errorf("GET %s status = %d, want 500", path, resp.StatusCode)
		}
	}
}

func TestSessionIsolation(t *testing.T) {
	app := newTestApp()

	first := postJSON(t, app, "/transactions", `{"title":"Mine","amount":100,"type":"credit"}`, nil)
	firstCookie := sessionCookie(t, first)

	second := postJSON(t, app, "/transactions", `{"title":"Theirs","amount":200,"type":"credit"}`, nil)
	secondCookie := sessionCookie(t, second)

	list := decode[dto.ListTransactionsResponse](t, getJSON(t, app, "/transactions", secondCookie))
	if len(list.Transactions) != 1 || list.Transactions[0].Title != "Theirs" {
		t.Errorf("second session sees %+v, want only its own transaction", list.Transactions)
	}

	mine := decode[dto.ListTransactionsResponse](t, getJSON(t, app, "/transactions", firstCookie))
	if len(mine.Transactions) != 1 {
		t.Fatalf("first session sees %d transactions, want 1", len(mine.Transactions))
	}
	otherID := list.Transactions[0].ID
	got := decode[dto.GetTransactionResponse](t, getJSON(t, app, "/transactions/"+otherID, firstCookie))
	if got.Transaction != nil {
		t.Error("a transaction of another session must read as null")
	}

	summary := decode[dto.SummaryResponse](t, getJSON(t, app, "/transactions/summary", firstCookie))
	if summary.Summary.Amount != 100 {
		t.Errorf("first session summary = %d, want 100", summary.Summary.Amount)
	}
}
