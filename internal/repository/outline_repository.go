package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace/internal/model"
)

// OutlineRepository defines outline persistence operations. All reads are
// ordered by the explicit display order.
type OutlineRepository interface {
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Outline, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Outline, error)
	Create(ctx context.Context, outline *model.Outline) error
	Update(ctx context.Context, id uuid.UUID, update model.OutlineUpdate) (*model.Outline, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error
}

type outlineRepository struct {
	db *gorm.DB
}

// NewOutlineRepository creates a new outline repository.
func NewOutlineRepository(db *gorm.DB) OutlineRepository {
	return &outlineRepository{db: db}
}

func (r *outlineRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Outline, error) {
	var outlines []model.Outline
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("sort_order asc").
		Order("created_at asc").
		Find(&outlines).Error; err != nil {
		return nil, err
	}
	return outlines, nil
}

func (r *outlineRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Outline, error) {
	var outline model.Outline
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&outline).Error; err != nil {
		return nil, err
	}
	return &outline, nil
}

// Create appends the outline to its organization: the order is one past the
// current maximum, read and written in the same transaction.
func (r *outlineRepository) Create(ctx context.Context, outline *model.Outline) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder sql.NullInt64
		if err := tx.Model(&model.Outline{}).
			Where("organization_id = ?", outline.OrganizationID).
			Select("MAX(sort_order)").
			Row().Scan(&maxOrder); err != nil {
			return err
		}

		outline.Order = 0
		if maxOrder.Valid {
			outline.Order = int(maxOrder.Int64) + 1
		}
		return tx.Create(outline).Error
	})
}

// Update applies the fields present in update and returns the stored row.
func (r *outlineRepository) Update(ctx context.Context, id uuid.UUID, update model.OutlineUpdate) (*model.Outline, error) {
	var outline model.Outline
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&outline).Error; err != nil {
			return err
		}
		if update.Empty() {
			return nil
		}
		if err := tx.Model(&outline).Updates(update.Columns()).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&outline).Error
	})
	if err != nil {
		return nil, err
	}
	return &outline, nil
}

func (r *outlineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Outline{}).Error
}

// Reorder sets the order of each listed outline to its index in ids. Every id
// must belong to orgID; otherwise nothing is written and
// gorm.ErrRecordNotFound is returned. Outlines missing from ids keep their
// order.
func (r *outlineRepository) Reorder(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Outline{}).
			Where("organization_id = ? AND id IN ?", orgID, ids).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return gorm.ErrRecordNotFound
		}

		for i, id := range ids {
			if err := tx.Model(&model.Outline{}).
				Where("id = ? AND organization_id = ?", id, orgID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
