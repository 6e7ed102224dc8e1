package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/money"
	"tally/internal/receipt"
	"tally/internal/services"
	"tally/internal/vision"
)

// maxReceiptImageBytes caps uploads at 10 MiB.
const maxReceiptImageBytes = 10 << 20

// ReceiptHandler handles receipt analysis requests. Analysis only produces
// candidates; nothing reaches the ledger until the user confirms the
// reviewed records.
type ReceiptHandler struct {
	analyzer      vision.Analyzer
	extractor     receipt.Extractor
	ledgerService services.LedgerServicer
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(analyzer vision.Analyzer, extractor receipt.Extractor, ledgerService services.LedgerServicer) *ReceiptHandler {
	return &ReceiptHandler{analyzer: analyzer, extractor: extractor, ledgerService: ledgerService}
}

// AnalyzeReceipt extracts transaction candidates from a receipt image
// @Summary     Analyze a receipt
// @Description Send a receipt image through the vision model and parse the reply into transaction candidates for review
// @Tags        receipts
// @Accept      multipart/form-data
// @Produce     json
// @Param       image formData file true "Receipt image (JPEG or PNG)"
// @Success     200 {object} receipt.Result "Candidates and per-record rejections"
// @Failure     400 {object} ErrorResponse "Invalid upload"
// @Failure     422 {object} ErrorResponse "No parseable transaction array in the model output"
// @Failure     502 {object} ErrorResponse "Vision model failure"
// @Router      /receipts/analyze [post]
func (h *ReceiptHandler) AnalyzeReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "image file is required"))
		return
	}
	if fileHeader.Size > maxReceiptImageBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "image exceeds 10 MiB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptImageBytes))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	text, err := h.analyzer.AnalyzeReceipt(c.Request.Context(), image, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.extractor.Extract(text)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConfirmRecord is one reviewed candidate ready to be written.
type ConfirmRecord struct {
	Item      string   `json:"item" binding:"required,max=200"`
	Tags      []string `json:"tags"`
	Quantity  float64  `json:"quantity" binding:"omitempty,gte=0"`
	Amount    int64    `json:"amount" binding:"required,gt=0"`
	Category  string   `json:"category" binding:"max=100"`
	StoreName string   `json:"store_name" binding:"max=200"`
	Date      string   `json:"date" binding:"required,ledger_date"`
}

// ConfirmReceiptRequest carries the reviewed records to persist.
type ConfirmReceiptRequest struct {
	Records []ConfirmRecord `json:"records" binding:"required,min=1,dive"`
}

// ConfirmReceipt writes reviewed candidates to the ledger
// @Summary     Confirm receipt records
// @Description Persist the reviewed records as expense transactions. Amounts are cents.
// @Tags        receipts
// @Accept      json
// @Produce     json
// @Param       request body ConfirmReceiptRequest true "Reviewed records"
// @Success     201 {object} map[string][]models.Transaction "Created transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receipts/confirm [post]
func (h *ReceiptHandler) ConfirmReceipt(c *gin.Context) {
	var req ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created := make([]models.Transaction, 0, len(req.Records))
	for _, record := range req.Records {
		transaction, err := h.ledgerService.AddTransaction(
			money.Format(record.Amount),
			record.Category,
			record.Date,
			models.TransactionKindExpense,
			record.StoreName,
			record.Item,
			record.Tags,
			record.Quantity,
		)
		if err != nil {
			respondWithError(c, err)
			return
		}
		created = append(created, *transaction)
	}

	c.JSON(http.StatusCreated, gin.H{"transactions": created})
}
