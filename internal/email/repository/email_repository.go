package repository

import (
	"errors"

	"gorm.io/gorm"

	emaildomain "maildash-backend/internal/email/domain"
)

// EmailRepository defines storage operations for email records
type EmailRepository interface {
	// Create inserts a new record; the store assigns the id and timestamps.
	Create(email *emaildomain.Email) error
	// FindByID retrieves one record, or nil when the id is unknown.
	FindByID(id uint) (*emaildomain.Email, error)
	// List returns records newest-first. An empty category or the "All"
	// sentinel disables filtering.
	List(category string) ([]emaildomain.Email, error)
	// Update persists modified summary fields and refreshes UpdatedAt.
	Update(email *emaildomain.Email) error
	// Delete removes one record and reports whether a row was deleted.
	Delete(id uint) (bool, error)
}

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) Create(email *emaildomain.Email) error {
	return r.db.Create(email).Error
}

func (r *emailRepository) FindByID(id uint) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.First(&email, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) List(category string) ([]emaildomain.Email, error) {
	// Secondary id ordering keeps the result stable when records share
	// a creation timestamp.
	query := r.db.Order("created_at DESC, id DESC")
	if category != "" && category != emaildomain.CategoryAll {
		query = query.Where("category = ?", category)
	}

	var emails []emaildomain.Email
	if err := query.Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) Update(email *emaildomain.Email) error {
	return r.db.Save(email).Error
}

func (r *emailRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&emaildomain.Email{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
