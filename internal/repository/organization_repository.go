package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/model"
)

// OrganizationRepository defines organization persistence operations.
type OrganizationRepository interface {
	CreateWithOwner(ctx context.Context, org *model.Organization, ownerID uuid.UUID) (*model.OrganizationMember, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error)
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository.
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

// CreateWithOwner inserts the organization and the owner membership of its
// creator atomically.
func (r *organizationRepository) CreateWithOwner(ctx context.Context, org *model.Organization, ownerID uuid.UUID) (*model.OrganizationMember, error) {
	var owner *model.OrganizationMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		owner = &model.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         ownerID,
			Role:           model.RoleOwner,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

// ListForUser lists the organizations the user belongs to with the user's role.
func (r *organizationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error) {
	var memberships []model.OrganizationMember
	if err := r.db.WithContext(ctx).Preload("Organization").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	organizations := make([]model.OrganizationWithRole, 0, len(memberships))
	for _, m := range memberships {
		if m.Organization == nil {
			continue
		}
		organizations = append(organizations, model.OrganizationWithRole{
			Organization: *m.Organization,
			Role:         m.Role,
		})
	}
	return organizations, nil
}
