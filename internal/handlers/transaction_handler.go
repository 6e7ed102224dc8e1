package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/services"
)

// TransactionHandler handles ledger-related requests.
type TransactionHandler struct {
	ledgerService services.LedgerServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerService services.LedgerServicer) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Item      string                 `json:"item" binding:"required,max=200"`
	Tags      []string               `json:"tags"`
	Quantity  float64                `json:"quantity" binding:"omitempty,gte=0"`
	Amount    string                 `json:"amount" binding:"required"`
	Category  string                 `json:"category" binding:"max=100"`
	Kind      models.TransactionKind `json:"kind" binding:"required,transaction_kind"`
	StoreName string                 `json:"store_name" binding:"max=200"`
	Date      string                 `json:"date" binding:"required,ledger_date"`
}

// CreateTransaction appends a new transaction to the ledger
// @Summary     Create a transaction
// @Description Record a new income or expense row in the ledger
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.ledgerService.AddTransaction(
		req.Amount,
		req.Category,
		req.Date,
		req.Kind,
		req.StoreName,
		req.Item,
		req.Tags,
		req.Quantity,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists transactions newest first
// @Summary     List transactions
// @Description Paginated ledger listing, newest first, optionally filtered by category
// @Tags        transactions
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Page size (default 20, max 100)"
// @Param       category  query string false "Filter by category name"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.GetTransactionsPage(page, c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearTransactions deletes every transaction
// @Summary     Clear the ledger
// @Description Delete all transactions and their tag links. Categories and notes survive. Requires confirm=true.
// @Tags        transactions
// @Produce     json
// @Param       confirm query string true "Must be 'true'"
// @Success     200 {object} map[string]string "Ledger cleared"
// @Failure     400 {object} ErrorResponse "Missing confirmation"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [delete]
func (h *TransactionHandler) ClearTransactions(c *gin.Context) {
	if c.Query("confirm") != "true" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "confirm=true is required"))
		return
	}

	if err := h.ledgerService.ClearAllData(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All transactions deleted"})
}

// GetCategories lists category names
// @Summary     List categories
// @Description Category names in insertion order, seed list first
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string][]string "Category names"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *TransactionHandler) GetCategories(c *gin.Context) {
	categories, err := h.ledgerService.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetBalance returns the current financial position
// @Summary     Current balance
// @Description Signed balance over the whole ledger, plus loan and savings totals, in cents
// @Tags        balance
// @Produce     json
// @Success     200 {object} map[string]int64 "Balance figures"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance [get]
func (h *TransactionHandler) GetBalance(c *gin.Context) {
	balance, err := h.ledgerService.GetBalance()
	if err != nil {
		respondWithError(c, err)
		return
	}
	loans, err := h.ledgerService.GetLoanTotal()
	if err != nil {
		respondWithError(c, err)
		return
	}
	savings, err := h.ledgerService.GetSavingsTotal()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": balance,
		"loans":   loans,
		"savings": savings,
	})
}

// CreateBalanceSnapshot stores the current balance
// @Summary     Snapshot the balance
// @Description Persist the current computed balance for later auditing
// @Tags        balance
// @Produce     json
// @Success     201 {object} models.BalanceSnapshot "Snapshot created"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance/snapshots [post]
func (h *TransactionHandler) CreateBalanceSnapshot(c *gin.Context) {
	snapshot, err := h.ledgerService.RecordBalanceSnapshot()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"snapshot": snapshot})
}

// SeedDemoData populates an empty ledger with sample rows
// @Summary     Seed demo data
// @Description Insert ~30 days of randomized sample transactions. No-op when the ledger already has rows.
// @Tags        transactions
// @Produce     json
// @Success     201 {object} map[string]int "Rows inserted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /demo-data [post]
func (h *TransactionHandler) SeedDemoData(c *gin.Context) {
	inserted, err := h.ledgerService.SeedDemoData()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}
