package delivery

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	emaildomain "maildash-backend/internal/email/domain"
	"maildash-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

// EmailHandler handles email-related HTTP requests
type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// csvColumns is the fixed export layout; Body is deliberately excluded.
var csvColumns = []string{"id", "sender", "subject", "summary", "category", "createdAt", "updatedAt"}

// ListEmails returns stored emails newest-first, optionally filtered by category
// GET /api/emails?category=Invoice
func (h *EmailHandler) ListEmails(c *gin.Context) {
	emails, err := h.emailUsecase.List(c.Query("category"))
	if err != nil {
		log.Printf("[ERROR] Fetching emails: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emails"})
		return
	}

	c.JSON(http.StatusOK, emails)
}

// IngestEmails runs the summarization workflow over the seed batch
// POST /api/emails/ingest
func (h *EmailHandler) IngestEmails(c *gin.Context) {
	created, err := h.emailUsecase.Ingest(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] Ingesting emails: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest emails"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ingested and summarized emails",
		"count":   len(created),
		"data":    created,
	})
}

// ResummarizeEmail recomputes summary and category for one record
// POST /api/emails/:id/resummarize
func (h *EmailHandler) ResummarizeEmail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	email, err := h.emailUsecase.Resummarize(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, emaildomain.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		log.Printf("[ERROR] Resummarizing email %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resummarize email"})
		return
	}

	c.JSON(http.StatusOK, email)
}

// DeleteEmail removes one record
// DELETE /api/emails/:id
func (h *EmailHandler) DeleteEmail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.emailUsecase.Delete(id); err != nil {
		if errors.Is(err, emaildomain.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		log.Printf("[ERROR] Deleting email %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "id": id})
}

// ExportCSV dumps all records as a CSV attachment
// GET /api/emails/export
func (h *EmailHandler) ExportCSV(c *gin.Context) {
	emails, err := h.emailUsecase.Export()
	if err != nil {
		log.Printf("[ERROR] Exporting emails: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export CSV"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="email_summaries.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvColumns)
	for _, email := range emails {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(email.ID), 10),
			email.Sender,
			email.Subject,
			email.Summary,
			email.Category,
			email.CreatedAt.Format(time.RFC3339),
			email.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email id"})
		return 0, false
	}
	return uint(id), true
}
