package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FullName        string     `gorm:"size:255;not null" json:"full_name"`
	Email           string     `gorm:"size:255;not null;unique" json:"email"`
	Password        string     `gorm:"not null" json:"-"`
	Phone           string     `gorm:"size:30;not null" json:"phone"`
	PhotoURL        string     `gorm:"size:255" json:"photo_url"`
	Role            string     `gorm:"size:20;not null;default:'member'" json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
