// Package access decides whether a user may act inside an organization.
// Every decision reads the membership store; nothing is cached.
package access

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/errors"
	"workspace/internal/model"
	"workspace/internal/repository"
)

// Gate checks organization membership and ownership.
type Gate interface {
	RequireMembership(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error)
	RequireOwner(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error)
}

type gate struct {
	members repository.MemberRepository
}

// NewGate creates a gate backed by the membership repository.
func NewGate(members repository.MemberRepository) Gate {
	return &gate{members: members}
}

// RequireMembership returns the caller's membership, or ErrForbidden when
// none exists.
func (g *gate) RequireMembership(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error) {
	member, err := g.members.FindByUserAndOrganization(ctx, userID, orgID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrForbidden
		}
		return nil, err
	}
	return member, nil
}

// RequireOwner returns the caller's membership when it carries the owner role.
func (g *gate) RequireOwner(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error) {
	member, err := g.RequireMembership(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	if !member.IsOwner() {
		return nil, errors.ErrOwnerRequired
	}
	return member, nil
}
