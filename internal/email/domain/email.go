package domain

import "time"

// Categories the summarizer may assign. Anything outside this set is
// normalized to CategoryGeneral before a record is written.
const (
	CategoryMeeting        = "Meeting"
	CategoryInvoice        = "Invoice"
	CategorySupportRequest = "Support Request"
	CategoryPromotion      = "Promotion"
	CategoryGeneral        = "General"
)

// CategoryAll is the list-filter sentinel meaning "no filter".
const CategoryAll = "All"

// ValidCategory reports whether category belongs to the fixed set.
func ValidCategory(category string) bool {
	switch category {
	case CategoryMeeting, CategoryInvoice, CategorySupportRequest, CategoryPromotion, CategoryGeneral:
		return true
	}
	return false
}

// Email is a stored email together with its AI-generated summary.
// Sender, Subject and Body never change after creation; Summary,
// Category and UpdatedAt are rewritten on every resummarize.
type Email struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Sender    string    `json:"sender" gorm:"not null"`
	Subject   string    `json:"subject" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Summary   string    `json:"summary" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Email) TableName() string {
	return "emails"
}

// RawEmail is an unsummarized source email fed into the ingest workflow.
type RawEmail struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
