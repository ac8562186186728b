package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a member's role inside an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Organization is a tenant. It owns its members, invitations and outlines.
type Organization struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Slug      string    `json:"slug" gorm:"size:255;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrganizationMember joins a user to an organization with a role.
type OrganizationMember struct {
	ID             uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"type:char(36);not null;uniqueIndex:idx_member_org_user"`
	UserID         uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_member_org_user;index"`
	Role           Role      `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations
	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (m *OrganizationMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsOwner reports whether the membership carries the owner role.
func (m *OrganizationMember) IsOwner() bool {
	return m.Role == RoleOwner
}

// OrganizationWithRole is an organization as seen by one of its members.
type OrganizationWithRole struct {
	Organization
	Role Role `json:"role"`
}
