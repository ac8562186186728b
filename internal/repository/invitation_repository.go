package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/model"
)

// InvitationRepository defines invitation persistence operations.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	FindByEmailAndOrganization(ctx context.Context, email string, orgID uuid.UUID) (*model.Invitation, error)
	ListActiveByEmail(ctx context.Context, email string, now time.Time) ([]model.Invitation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Accept(ctx context.Context, invitation *model.Invitation, userID uuid.UUID, addMember bool) error
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository.
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

// FindByToken finds an invitation and its organization by token.
func (r *invitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.WithContext(ctx).Preload("Organization").
		Where("token = ?", token).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByEmailAndOrganization(ctx context.Context, email string, orgID uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.WithContext(ctx).
		Where("email = ? AND organization_id = ?", email, orgID).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListActiveByEmail lists invitations addressed to email that expire after
// now, newest first.
func (r *invitationRepository) ListActiveByEmail(ctx context.Context, email string, now time.Time) ([]model.Invitation, error) {
	var invitations []model.Invitation
	if err := r.db.WithContext(ctx).Preload("Organization").
		Where("email = ? AND expires_at > ?", email, now).
		Order("created_at desc").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *invitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Invitation{}).Error
}

// Accept consumes the invitation and, when addMember is set, inserts the
// membership in the same transaction. An invitation consumed concurrently
// yields gorm.ErrRecordNotFound and the membership insert is rolled back.
func (r *invitationRepository) Accept(ctx context.Context, invitation *model.Invitation, userID uuid.UUID, addMember bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if addMember {
			member := &model.OrganizationMember{
				OrganizationID: invitation.OrganizationID,
				UserID:         userID,
				Role:           invitation.Role,
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", invitation.ID).Delete(&model.Invitation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
