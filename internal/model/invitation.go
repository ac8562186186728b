package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation is a time-boxed, single-use offer for an email address to
// join an organization.
type Invitation struct {
	ID             uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email          string    `json:"email" gorm:"size:255;not null;uniqueIndex:idx_invitation_email_org"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"type:char(36);not null;uniqueIndex:idx_invitation_email_org"`
	Role           Role      `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	Token          string    `json:"token" gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt      time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the invitation can no longer be accepted at now.
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
