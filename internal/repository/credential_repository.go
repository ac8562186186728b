package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/model"
)

// CredentialRepository defines credential persistence operations.
type CredentialRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID, providerID string) (*model.Credential, error)
}

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// FindByUser finds the credential of the given provider linked to a user.
func (r *credentialRepository) FindByUser(ctx context.Context, userID uuid.UUID, providerID string) (*model.Credential, error) {
	var credential model.Credential
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		First(&credential).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}
