package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID uuid.UUID `gorm:"not null;index" json:"session_id"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Response  string    `gorm:"type:text;not null" json:"response"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *ChatLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
