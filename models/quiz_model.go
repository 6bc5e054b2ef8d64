package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	ThumbnailURL      *string   `gorm:"size:255" json:"thumbnail_url"`
	ThumbnailPublicID *string   `gorm:"size:255" json:"-"`
	CreatedBy         uuid.UUID `gorm:"not null" json:"created_by"`

	Questions []Question `gorm:"foreignkey:QuizID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
