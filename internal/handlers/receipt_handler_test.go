package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/receipt"
)

// --- mocks ---

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, image []byte, mimeType string) (string, error)
}

func (m *mockAnalyzer) AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (string, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, image, mimeType)
	}
	return "", nil
}

func setupReceiptRouter(handler *ReceiptHandler) *gin.Engine {
	r := gin.New()
	r.POST("/receipts/analyze", handler.AnalyzeReceipt)
	r.POST("/receipts/confirm", handler.ConfirmReceipt)
	return r
}

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "receipt.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// --- tests ---

func TestReceiptHandler_AnalyzeReceipt(t *testing.T) {
	modelReply := "Here you go:\n" +
		`[{"Item": "Milk", "Tags": "Dairy", "Quantity": "1", "Amount": "1.50", "Category": "Groceries", "Store Name": "Lidl", "Date": "05-01-2024"}]` +
		"\nEnjoy."

	t.Run("returns candidates without touching the ledger", func(t *testing.T) {
		ledgerTouched := false
		ledger := &mockLedgerService{
			addTransactionFn: func(_, _, _ string, _ models.TransactionKind, _, _ string, _ []string, _ float64) (*models.Transaction, error) {
				ledgerTouched = true
				return &models.Transaction{}, nil
			},
		}
		analyzer := &mockAnalyzer{
			analyzeFn: func(_ context.Context, image []byte, _ string) (string, error) {
				if len(image) == 0 {
					t.Error("analyzer received empty image")
				}
				return modelReply, nil
			},
		}
		handler := NewReceiptHandler(analyzer, receipt.NewRegexExtractor(), ledger)
		r := setupReceiptRouter(handler)

		body, contentType := multipartImage(t, "image", []byte("fake-jpeg-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/receipts/analyze", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		records := result["records"].([]interface{})
		if len(records) != 1 {
			t.Fatalf("records = %v", records)
		}
		first := records[0].(map[string]interface{})
		if first["item"] != "Milk" || first["amount"].(float64) != 150 {
			t.Errorf("record = %v", first)
		}
		if ledgerTouched {
			t.Error("analysis must not write to the ledger")
		}
	})

	t.Run("missing file rejected", func(t *testing.T) {
		handler := NewReceiptHandler(&mockAnalyzer{}, receipt.NewRegexExtractor(), &mockLedgerService{})
		r := setupReceiptRouter(handler)

		rec := doRequest(r, http.MethodPost, "/receipts/analyze", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unparseable model output yields 422", func(t *testing.T) {
		analyzer := &mockAnalyzer{
			analyzeFn: func(_ context.Context, _ []byte, _ string) (string, error) {
				return "I could not read this receipt.", nil
			},
		}
		handler := NewReceiptHandler(analyzer, receipt.NewRegexExtractor(), &mockLedgerService{})
		r := setupReceiptRouter(handler)

		body, contentType := multipartImage(t, "image", []byte("fake"))
		req := httptest.NewRequest(http.MethodPost, "/receipts/analyze", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrExtractionFailed.Code)
	})

	t.Run("vision failure yields 502", func(t *testing.T) {
		analyzer := &mockAnalyzer{
			analyzeFn: func(_ context.Context, _ []byte, _ string) (string, error) {
				return "", apperrors.ErrVisionFailed
			},
		}
		handler := NewReceiptHandler(analyzer, receipt.NewRegexExtractor(), &mockLedgerService{})
		r := setupReceiptRouter(handler)

		body, contentType := multipartImage(t, "image", []byte("fake"))
		req := httptest.NewRequest(http.MethodPost, "/receipts/analyze", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("status = %d, want 502", rec.Code)
		}
	})
}

func TestReceiptHandler_ConfirmReceipt(t *testing.T) {
	t.Run("writes each reviewed record as an expense", func(t *testing.T) {
		var gotAmounts []string
		var gotKinds []models.TransactionKind
		ledger := &mockLedgerService{
			addTransactionFn: func(amount, _, _ string, kind models.TransactionKind, _, item string, _ []string, _ float64) (*models.Transaction, error) {
				gotAmounts = append(gotAmounts, amount)
				gotKinds = append(gotKinds, kind)
				return &models.Transaction{Item: item, Kind: kind}, nil
			},
		}
		handler := NewReceiptHandler(&mockAnalyzer{}, receipt.NewRegexExtractor(), ledger)
		r := setupReceiptRouter(handler)

		rec := doRequest(r, http.MethodPost, "/receipts/confirm",
			`{"records":[`+
				`{"item":"Milk","amount":150,"date":"05-01-2024","category":"Groceries","tags":["Dairy"],"quantity":1},`+
				`{"item":"Bread","amount":300,"date":"05-01-2024","category":"Groceries"}`+
				`]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if len(gotAmounts) != 2 || gotAmounts[0] != "1.50" || gotAmounts[1] != "3.00" {
			t.Errorf("amounts = %v, want [1.50 3.00]", gotAmounts)
		}
		for _, kind := range gotKinds {
			if kind != models.TransactionKindExpense {
				t.Errorf("kind = %q, want expense", kind)
			}
		}
	})

	t.Run("empty record list rejected", func(t *testing.T) {
		handler := NewReceiptHandler(&mockAnalyzer{}, receipt.NewRegexExtractor(), &mockLedgerService{})
		r := setupReceiptRouter(handler)

		rec := doRequest(r, http.MethodPost, "/receipts/confirm", `{"records":[]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
