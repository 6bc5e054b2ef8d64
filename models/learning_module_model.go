package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningModule struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CategoryID  uuid.UUID `gorm:"not null;index" json:"category_id"`
	VideoURL    string    `gorm:"size:2048;not null" json:"video_url"`
	PDFURL      *string   `gorm:"size:255" json:"pdf_url"`
	PDFPublicID *string   `gorm:"size:255" json:"-"`
	PhotoURL    *string   `gorm:"size:255" json:"photo_url"`
	PhotoPublicID *string `gorm:"size:255" json:"-"`
	Description string    `gorm:"type:text;not null" json:"description"`

	Category Category `gorm:"foreignkey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *LearningModule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
