package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"workspace/internal/access"
	"workspace/internal/errors"
	"workspace/internal/model"
	"workspace/internal/repository"
)

var validate = validator.New()

// OrganizationService handles organizations and their members.
type OrganizationService interface {
	Create(ctx context.Context, userID uuid.UUID, name, orgSlug string) (*model.Organization, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error)
	ListMembers(ctx context.Context, userID, orgID uuid.UUID) ([]model.OrganizationMember, error)
	InviteMember(ctx context.Context, userID, orgID uuid.UUID, email string) (*model.Invitation, error)
	RemoveMember(ctx context.Context, userID, orgID uuid.UUID, memberID string) error
}

type organizationService struct {
	gate          access.Gate
	organizations repository.OrganizationRepository
	members       repository.MemberRepository
	users         repository.UserRepository
	invitations   repository.InvitationRepository
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(
	gate access.Gate,
	organizations repository.OrganizationRepository,
	members repository.MemberRepository,
	users repository.UserRepository,
	invitations repository.InvitationRepository,
) OrganizationService {
	return &organizationService{
		gate:          gate,
		organizations: organizations,
		members:       members,
		users:         users,
		invitations:   invitations,
	}
}

// Create creates an organization owned by userID. The slug is derived from
// the name when empty.
func (s *organizationService) Create(ctx context.Context, userID uuid.UUID, name, orgSlug string) (*model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("Name is required")
	}

	orgSlug = strings.TrimSpace(orgSlug)
	if orgSlug == "" {
		orgSlug = slug.Make(name)
	}
	if orgSlug == "" {
		orgSlug = strings.Join(strings.Fields(strings.ToLower(name)), "-")
	}

	org := &model.Organization{
		Name: name,
		Slug: orgSlug,
	}
	if _, err := s.organizations.CreateWithOwner(ctx, org, userID); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error) {
	orgs, err := s.organizations.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// ListMembers lists the members of an organization the caller belongs to.
func (s *organizationService) ListMembers(ctx context.Context, userID, orgID uuid.UUID) ([]model.OrganizationMember, error) {
	if _, err := s.gate.RequireMembership(ctx, userID, orgID); err != nil {
		return nil, err
	}

	members, err := s.members.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// InviteMember invites a registered user to the organization. Only owners
// may invite, and at most one invitation per email and organization exists.
func (s *organizationService) InviteMember(ctx context.Context, userID, orgID uuid.UUID, email string) (*model.Invitation, error) {
	if _, err := s.gate.RequireOwner(ctx, userID, orgID); err != nil {
		return nil, err
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, errors.NewValidationError("Invalid email")
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	_, err = s.members.FindByUserAndOrganization(ctx, target.ID, orgID)
	if err == nil {
		return nil, errors.ErrAlreadyMember
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	_, err = s.invitations.FindByEmailAndOrganization(ctx, email, orgID)
	if err == nil {
		return nil, errors.ErrInvitationExists
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check invitation: %w", err)
	}

	invitation := &model.Invitation{
		Email:          email,
		OrganizationID: orgID,
		Role:           model.RoleMember,
		Token:          uuid.NewString(),
		ExpiresAt:      now().Add(invitationTTL),
	}
	if err := s.invitations.Create(ctx, invitation); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrInvitationExists
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return invitation, nil
}

// RemoveMember removes a membership from the organization. Owners cannot be
// removed.
func (s *organizationService) RemoveMember(ctx context.Context, userID, orgID uuid.UUID, memberID string) error {
	if strings.TrimSpace(memberID) == "" {
		return errors.NewValidationError("Member ID is required")
	}
	if _, err := s.gate.RequireOwner(ctx, userID, orgID); err != nil {
		return err
	}

	id, err := uuid.Parse(memberID)
	if err != nil {
		return errors.ErrMemberNotFound
	}

	member, err := s.members.FindByIDInOrganization(ctx, id, orgID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrMemberNotFound
		}
		return fmt.Errorf("find member: %w", err)
	}
	if member.IsOwner() {
		return errors.ErrCannotRemoveOwner
	}

	if err := s.members.Delete(ctx, member.ID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
