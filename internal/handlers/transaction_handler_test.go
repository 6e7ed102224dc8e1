package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/validator"
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.DELETE("/transactions", handler.ClearTransactions)
	r.GET("/categories", handler.GetCategories)
	r.GET("/balance", handler.GetBalance)
	r.POST("/balance/snapshots", handler.CreateBalanceSnapshot)
	r.POST("/demo-data", handler.SeedDemoData)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockLedgerService{
			addTransactionFn: func(amount, category, date string, kind models.TransactionKind, storeName, item string, tags []string, quantity float64) (*models.Transaction, error) {
				if amount != "12.50" || item != "Milk" || kind != models.TransactionKindExpense {
					t.Errorf("unexpected args: amount=%q item=%q kind=%q", amount, item, kind)
				}
				return &models.Transaction{Base: models.Base{ID: 1}, Item: item, Amount: 1250, Kind: kind}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, http.MethodPost, "/transactions",
			`{"item":"Milk","amount":"12.50","kind":"expense","date":"05-01-2024","category":"Groceries","tags":["Dairy"]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects unknown kind at binding", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))

		rec := doRequest(r, http.MethodPost, "/transactions",
			`{"item":"Milk","amount":"1.00","kind":"transfer","date":"05-01-2024"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrInvalidInput.Code)
	})

	t.Run("rejects malformed date at binding", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))

		rec := doRequest(r, http.MethodPost, "/transactions",
			`{"item":"Milk","amount":"1.00","kind":"expense","date":"2024-15-03"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("propagates service errors", func(t *testing.T) {
		svc := &mockLedgerService{
			addTransactionFn: func(_, _, _ string, _ models.TransactionKind, _, _ string, _ []string, _ float64) (*models.Transaction, error) {
				return nil, apperrors.ErrInvalidAmount
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, http.MethodPost, "/transactions",
			`{"item":"Milk","amount":"nope","kind":"expense","date":"05-01-2024"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrInvalidAmount.Code)
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes pagination and category filter", func(t *testing.T) {
		var gotPage pagination.PageRequest
		var gotCategory string
		svc := &mockLedgerService{
			getTransactionsPageFn: func(page pagination.PageRequest, category string) (*pagination.PageResponse[models.Transaction], error) {
				gotPage, gotCategory = page, category
				resp := pagination.NewPageResponse([]models.Transaction{{Item: "Milk"}}, 2, 5, 11)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, http.MethodGet, "/transactions?page=2&page_size=5&category=Groceries", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 || gotCategory != "Groceries" {
			t.Errorf("page = %+v, category = %q", gotPage, gotCategory)
		}
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))
		rec := doRequest(r, http.MethodGet, "/transactions?page=-1", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestTransactionHandler_ClearTransactions(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		cleared := false
		svc := &mockLedgerService{clearAllDataFn: func() error { cleared = true; return nil }}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, http.MethodDelete, "/transactions", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if cleared {
			t.Error("ledger cleared without confirmation")
		}
	})

	t.Run("clears with confirm=true", func(t *testing.T) {
		cleared := false
		svc := &mockLedgerService{clearAllDataFn: func() error { cleared = true; return nil }}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, http.MethodDelete, "/transactions?confirm=true", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !cleared {
			t.Error("ledger not cleared")
		}
	})
}

func TestTransactionHandler_GetBalance(t *testing.T) {
	svc := &mockLedgerService{getBalanceFn: func() (int64, error) { return 74950, nil }}
	r := setupTransactionRouter(NewTransactionHandler(svc))

	rec := doRequest(r, http.MethodGet, "/balance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["balance"].(float64) != 74950 {
		t.Errorf("balance = %v, want 74950", result["balance"])
	}
}

func TestTransactionHandler_SeedDemoData(t *testing.T) {
	svc := &mockLedgerService{seedDemoDataFn: func() (int, error) { return 42, nil }}
	r := setupTransactionRouter(NewTransactionHandler(svc))

	rec := doRequest(r, http.MethodPost, "/demo-data", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if result := parseJSON(t, rec); result["inserted"].(float64) != 42 {
		t.Errorf("inserted = %v, want 42", result["inserted"])
	}
}
