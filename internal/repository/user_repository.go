package repository

import (
	"context"

	"gorm.io/gorm"

	"workspace/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	CreateWithCredential(ctx context.Context, user *model.User, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithCredential inserts the user and its password credential in one transaction.
func (r *userRepository) CreateWithCredential(ctx context.Context, user *model.User, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		credential := &model.Credential{
			UserID:       user.ID,
			ProviderID:   model.ProviderCredential,
			PasswordHash: passwordHash,
		}
		return tx.Create(credential).Error
	})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
