package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutlineStatus represents the progress of an outline.
type OutlineStatus string

const (
	OutlineStatusPending    OutlineStatus = "Pending"
	OutlineStatusInProgress OutlineStatus = "In-Progress"
	OutlineStatusCompleted  OutlineStatus = "Completed"
)

// Outline is an organization-scoped work item with an explicit display order.
type Outline struct {
	ID             uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	OrganizationID uuid.UUID     `json:"organizationId" gorm:"type:char(36);not null;index"`
	Header         string        `json:"header" gorm:"size:255;not null"`
	SectionType    string        `json:"sectionType" gorm:"size:100;not null"`
	Status         OutlineStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	Target         int           `json:"target" gorm:"not null;default:0"`
	Limit          int           `json:"limit" gorm:"column:limit_value;not null;default:0"`
	Reviewer       string        `json:"reviewer" gorm:"size:255;not null"`
	Order          int           `json:"order" gorm:"column:sort_order;not null;default:0;index"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Outline) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OutlineUpdate carries a partial update. Nil fields are left untouched.
type OutlineUpdate struct {
	Header      *string
	SectionType *string
	Status      *OutlineStatus
	Target      *int
	Limit       *int
	Reviewer    *string
}

// Columns returns the column/value pairs of the fields present in u.
func (u OutlineUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.Header != nil {
		cols["header"] = *u.Header
	}
	if u.SectionType != nil {
		cols["section_type"] = *u.SectionType
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.Target != nil {
		cols["target"] = *u.Target
	}
	if u.Limit != nil {
		cols["limit_value"] = *u.Limit
	}
	if u.Reviewer != nil {
		cols["reviewer"] = *u.Reviewer
	}
	return cols
}

// Empty reports whether the update carries no fields.
func (u OutlineUpdate) Empty() bool {
	return len(u.Columns()) == 0
}
