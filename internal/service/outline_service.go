package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/access"
	"workspace/internal/errors"
	"workspace/internal/model"
	"workspace/internal/repository"
)

// OutlineService handles organization outlines. Any member may read or
// mutate them.
type OutlineService interface {
	List(ctx context.Context, userID, orgID uuid.UUID) ([]model.Outline, error)
	Create(ctx context.Context, userID, orgID uuid.UUID, outline *model.Outline) (*model.Outline, error)
	Update(ctx context.Context, userID, orgID, outlineID uuid.UUID, update model.OutlineUpdate) (*model.Outline, error)
	Delete(ctx context.Context, userID, orgID, outlineID uuid.UUID) error
	Reorder(ctx context.Context, userID, orgID uuid.UUID, ids []uuid.UUID) error
}

type outlineService struct {
	gate     access.Gate
	outlines repository.OutlineRepository
}

// NewOutlineService creates a new outline service.
func NewOutlineService(gate access.Gate, outlines repository.OutlineRepository) OutlineService {
	return &outlineService{
		gate:     gate,
		outlines: outlines,
	}
}

func (s *outlineService) List(ctx context.Context, userID, orgID uuid.UUID) ([]model.Outline, error) {
	if _, err := s.gate.RequireMembership(ctx, userID, orgID); err != nil {
		return nil, err
	}
	outlines, err := s.outlines.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list outlines: %w", err)
	}
	return outlines, nil
}

// Create appends a new outline after the organization's last one.
func (s *outlineService) Create(ctx context.Context, userID, orgID uuid.UUID, outline *model.Outline) (*model.Outline, error) {
	if _, err := s.gate.RequireMembership(ctx, userID, orgID); err != nil {
		return nil, err
	}

	outline.ID = uuid.Nil
	outline.OrganizationID = orgID
	if err := s.outlines.Create(ctx, outline); err != nil {
		return nil, fmt.Errorf("create outline: %w", err)
	}
	return outline, nil
}

// Update applies a partial update to an outline of the organization.
func (s *outlineService) Update(ctx context.Context, userID, orgID, outlineID uuid.UUID, update model.OutlineUpdate) (*model.Outline, error) {
	if _, err := s.gate.RequireMembership(ctx, userID, orgID); err != nil {
		return nil, err
	}
	if _, err := s.findInOrganization(ctx, orgID, outlineID); err != nil {
		return nil, err
	}

	outline, err := s.outlines.Update(ctx, outlineID, update)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOutlineNotFound
		}
		return nil, fmt.Errorf("update outline: %w", err)
	}
	return outline, nil
}

func (s *outlineService) Delete(ctx context.Context, userID, orgID, outlineID uuid.UUID) error {
	if _, err := s.gate.RequireMembership(ctx, userID, orgID); err != nil {
		return err
	}
	if _, err := s.findInOrganization(ctx, orgID, outlineID); err != nil {
		return err
	}

	if err := s.outlines.Delete(ctx, outlineID); err != nil {
		return fmt.Errorf("delete outline: %w", err)
	}
	return nil
}

// Reorder sets each listed outline's order to its index in ids, atomically.
// ids may be a subset of the organization's outlines but may not repeat.
func (s *outlineService) Reorder(ctx context.Context, userID, orgID uuid.UUID, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return errors.NewValidationError("Invalid ids: duplicate outline id")
		}
		seen[id] = struct{}{}
	}

	if _, err := s.gate.RequireMembership(ctx, userID, orgID); err != nil {
		return err
	}

	if err := s.outlines.Reorder(ctx, orgID, ids); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOutlineNotFound
		}
		return fmt.Errorf("reorder outlines: %w", err)
	}
	return nil
}

// findInOrganization treats outlines of other organizations as absent.
func (s *outlineService) findInOrganization(ctx context.Context, orgID, outlineID uuid.UUID) (*model.Outline, error) {
	outline, err := s.outlines.FindByID(ctx, outlineID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOutlineNotFound
		}
		return nil, fmt.Errorf("find outline: %w", err)
	}
	if outline.OrganizationID != orgID {
		return nil, errors.ErrOutlineNotFound
	}
	return outline, nil
}
