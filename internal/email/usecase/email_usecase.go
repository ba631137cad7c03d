package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	emaildomain "maildash-backend/internal/email/domain"
	"maildash-backend/internal/email/repository"
	"maildash-backend/pkg/ai"
)

// EmailUsecase sequences the summarization workflows over the record store.
type EmailUsecase interface {
	// Ingest summarizes and stores the configured raw-email batch,
	// returning every created record.
	Ingest(ctx context.Context) ([]emaildomain.Email, error)
	// Resummarize recomputes summary and category for one stored record.
	Resummarize(ctx context.Context, id uint) (*emaildomain.Email, error)
	// List returns stored records newest-first, optionally filtered by
	// category ("" and "All" mean no filter).
	List(category string) ([]emaildomain.Email, error)
	// Export returns all stored records newest-first.
	Export() ([]emaildomain.Email, error)
	// Delete removes one stored record.
	Delete(id uint) error
}

// emailUsecase implements EmailUsecase interface
type emailUsecase struct {
	emailRepo  repository.EmailRepository
	summarizer ai.SummarizerService
	batch      []emaildomain.RawEmail
}

// NewEmailUsecase creates a new instance of emailUsecase. The batch is
// the set of raw emails Ingest will process.
func NewEmailUsecase(emailRepo repository.EmailRepository, summarizer ai.SummarizerService, batch []emaildomain.RawEmail) EmailUsecase {
	return &emailUsecase{
		emailRepo:  emailRepo,
		summarizer: summarizer,
		batch:      batch,
	}
}

// Ingest processes the batch strictly in order: item N+1 is not
// summarized before item N's insert completes. The first failure aborts
// the run; records inserted before that point stay in the store.
func (u *emailUsecase) Ingest(ctx context.Context) ([]emaildomain.Email, error) {
	created := make([]emaildomain.Email, 0, len(u.batch))
	for _, raw := range u.batch {
		result, err := u.summarizer.SummarizeEmail(ctx, ai.EmailInput{
			Sender:  raw.Sender,
			Subject: raw.Subject,
			Body:    raw.Body,
		})
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", raw.Subject, err)
		}

		email := emaildomain.Email{
			Sender:   raw.Sender,
			Subject:  raw.Subject,
			Body:     raw.Body,
			Summary:  result.Summary,
			Category: result.Category,
		}
		if err := u.emailRepo.Create(&email); err != nil {
			return nil, fmt.Errorf("insert %q: %w", raw.Subject, err)
		}
		created = append(created, email)
	}

	log.Printf("Ingested and summarized %d emails", len(created))
	return created, nil
}

func (u *emailUsecase) Resummarize(ctx context.Context, id uint) (*emaildomain.Email, error) {
	email, err := u.emailRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find email %d: %w", id, err)
	}
	if email == nil {
		return nil, emaildomain.ErrEmailNotFound
	}

	result, err := u.summarizer.SummarizeEmail(ctx, ai.EmailInput{
		Sender:  email.Sender,
		Subject: email.Subject,
		Body:    email.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize email %d: %w", id, err)
	}

	email.Summary = result.Summary
	email.Category = result.Category
	email.UpdatedAt = time.Now()
	if err := u.emailRepo.Update(email); err != nil {
		return nil, fmt.Errorf("update email %d: %w", id, err)
	}
	return email, nil
}

func (u *emailUsecase) List(category string) ([]emaildomain.Email, error) {
	return u.emailRepo.List(category)
}

func (u *emailUsecase) Export() ([]emaildomain.Email, error) {
	return u.emailRepo.List("")
}

func (u *emailUsecase) Delete(id uint) error {
	deleted, err := u.emailRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("delete email %d: %w", id, err)
	}
	if !deleted {
		return emaildomain.ErrEmailNotFound
	}
	return nil
}
