package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/dates"
	apperrors "tally/internal/errors"
	"tally/internal/services"
)

// NoteHandler handles calendar note requests.
type NoteHandler struct {
	ledgerService services.LedgerServicer
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(ledgerService services.LedgerServicer) *NoteHandler {
	return &NoteHandler{ledgerService: ledgerService}
}

// CreateNoteRequest represents the request payload for creating a note
type CreateNoteRequest struct {
	Date  string `json:"date" binding:"required,ledger_date"`
	Text  string `json:"text" binding:"required,max=2000"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// CreateNote attaches a note to a calendar date
// @Summary     Create a note
// @Description Attach a free-text note with a display color to a calendar date
// @Tags        notes
// @Accept      json
// @Produce     json
// @Param       request body CreateNoteRequest true "Note details"
// @Success     201 {object} models.Note "Note created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	day, err := dates.ParseLedgerDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	note, err := h.ledgerService.AddNote(day, req.Text, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// GetNotes lists the notes on a calendar date
// @Summary     List notes
// @Description All notes on the given date, oldest first
// @Tags        notes
// @Produce     json
// @Param       date query string true "Calendar date (DD-MM-YYYY or YYYY-MM-DD)"
// @Success     200 {object} map[string][]models.Note "Notes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes [get]
func (h *NoteHandler) GetNotes(c *gin.Context) {
	day, err := parseDateQuery(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notes, err := h.ledgerService.GetNotes(day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// DeleteNote removes a note by id
// @Summary     Delete a note
// @Description Remove a single note. 404 when no note has the given id.
// @Tags        notes
// @Produce     json
// @Param       id path int true "Note ID"
// @Success     200 {object} map[string]string "Note deleted"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Note not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteNote(noteID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

// GetNoteDates lists dates carrying notes
// @Summary     Dates with notes
// @Description Distinct calendar dates with at least one note, ascending
// @Tags        notes
// @Produce     json
// @Success     200 {object} map[string][]string "Dates"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes/dates [get]
func (h *NoteHandler) GetNoteDates(c *gin.Context) {
	noteDates, err := h.ledgerService.GetDatesWithNotes()
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]string, 0, len(noteDates))
	for _, d := range noteDates {
		out = append(out, d.Format(dates.LayoutISO))
	}
	c.JSON(http.StatusOK, gin.H{"dates": out})
}
