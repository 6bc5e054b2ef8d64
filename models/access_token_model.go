package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken backs the single-active-session policy. The row ID doubles as
// the JWT jti claim; deleting the row revokes the session.
type AccessToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
