package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID  `gorm:"not null;index" json:"user_id"`
	EndedAt *time.Time `json:"ended_at"`

	Logs []ChatLog `gorm:"foreignkey:SessionID" json:"logs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
