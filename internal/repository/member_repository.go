package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/model"
)

// MemberRepository defines membership persistence operations.
type MemberRepository interface {
	FindByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error)
	FindByIDInOrganization(ctx context.Context, id, orgID uuid.UUID) (*model.OrganizationMember, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.OrganizationMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new membership repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// FindByUserAndOrganization finds the unique membership of a user in an organization.
func (r *memberRepository) FindByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error) {
	var member model.OrganizationMember
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDInOrganization finds a membership by ID, scoped to the organization.
func (r *memberRepository) FindByIDInOrganization(ctx context.Context, id, orgID uuid.UUID) (*model.OrganizationMember, error) {
	var member model.OrganizationMember
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByOrganization lists members with their public user fields, oldest first.
func (r *memberRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.OrganizationMember, error) {
	var members []model.OrganizationMember
	if err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email", "name")
		}).
		Where("organization_id = ?", orgID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Delete removes a membership.
func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrganizationMember{}).Error
}
