package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tablemate/waiterd/models"
)

// FAQService reads the frequently-asked-questions table.
type FAQService struct {
	DB *gorm.DB
}

func NewFAQService(db *gorm.DB) *FAQService {
	return &FAQService{DB: db}
}

// Keys lists every FAQ topic key.
func (s *FAQService) Keys() ([]string, error) {
	var keys []string
	if err := s.DB.Model(&models.FAQ{}).Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list faq keys: %w", err)
	}
	return keys, nil
}

// Value returns the answer stored under key.
func (s *FAQService) Value(key string) (string, error) {
	var entry models.FAQ
	err := s.DB.Where(map[string]interface{}{"key": key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", NotFoundError{Message: fmt.Sprintf("FAQ key '%s' not found.", key)}
	}
	if err != nil {
		return "", fmt.Errorf("find faq entry: %w", err)
	}
	return entry.Value, nil
}
