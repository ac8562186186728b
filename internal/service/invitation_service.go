package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/errors"
	"workspace/internal/model"
	"workspace/internal/repository"
)

const invitationTTL = 7 * 24 * time.Hour

// AcceptResult describes a consumed invitation.
type AcceptResult struct {
	Organization  *model.Organization
	AlreadyMember bool
}

// InvitationService handles the invitee side of invitations.
type InvitationService interface {
	List(ctx context.Context, user model.User) ([]model.Invitation, error)
	Accept(ctx context.Context, user model.User, token string) (*AcceptResult, error)
	Reject(ctx context.Context, user model.User, token string) error
}

type invitationService struct {
	invitations repository.InvitationRepository
	members     repository.MemberRepository
}

// NewInvitationService creates a new invitation service.
func NewInvitationService(invitations repository.InvitationRepository, members repository.MemberRepository) InvitationService {
	return &invitationService{
		invitations: invitations,
		members:     members,
	}
}

// List returns the unexpired invitations addressed to the user, newest first.
func (s *invitationService) List(ctx context.Context, user model.User) ([]model.Invitation, error) {
	invitations, err := s.invitations.ListActiveByEmail(ctx, user.Email, now())
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

// Accept joins the user to the invitation's organization and consumes the
// invitation. Accepting while already a member only consumes it.
func (s *invitationService) Accept(ctx context.Context, user model.User, token string) (*AcceptResult, error) {
	invitation, err := s.findForUser(ctx, user, token)
	if err != nil {
		return nil, err
	}
	if invitation.Expired(now()) {
		return nil, errors.ErrInvitationExpired
	}

	alreadyMember, err := s.isMember(ctx, user.ID, invitation.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := s.invitations.Accept(ctx, invitation, user.ID, !alreadyMember); err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return nil, errors.ErrInvitationNotFound
		case gorm.ErrDuplicatedKey:
			// A concurrent accept inserted the membership first.
			return nil, errors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("accept invitation: %w", err)
	}

	return &AcceptResult{
		Organization:  invitation.Organization,
		AlreadyMember: alreadyMember,
	}, nil
}

// Reject consumes the invitation without joining. Expired invitations may
// be rejected.
func (s *invitationService) Reject(ctx context.Context, user model.User, token string) error {
	invitation, err := s.findForUser(ctx, user, token)
	if err != nil {
		return err
	}
	if err := s.invitations.Delete(ctx, invitation.ID); err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

func (s *invitationService) findForUser(ctx context.Context, user model.User, token string) (*model.Invitation, error) {
	invitation, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if invitation.Email != user.Email {
		return nil, errors.ErrInvitationNotForUser
	}
	return invitation, nil
}

func (s *invitationService) isMember(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	_, err := s.members.FindByUserAndOrganization(ctx, userID, orgID)
	if err == nil {
		return true, nil
	}
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return false, fmt.Errorf("check membership: %w", err)
}
