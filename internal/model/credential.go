package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderCredential tags the email/password authentication factor.
const ProviderCredential = "credential"

// Credential is a password factor bound to exactly one user.
type Credential struct {
	ID           uuid.UUID `json:"-" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"-" gorm:"type:char(36);not null;uniqueIndex:idx_credential_user_provider"`
	ProviderID   string    `json:"-" gorm:"size:50;not null;uniqueIndex:idx_credential_user_provider"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
