package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// At most one active code per (user, purpose); reissue replaces the row.
type EmailOtp struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_email_otps_user_purpose" json:"user_id"`
	Code      string    `gorm:"size:4;not null" json:"-"`
	Purpose   string    `gorm:"size:30;not null;default:'register';uniqueIndex:idx_email_otps_user_purpose" json:"purpose"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *EmailOtp) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
