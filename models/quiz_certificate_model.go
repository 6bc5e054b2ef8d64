package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizCertificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"not null;uniqueIndex:idx_quiz_certificates_user_quiz" json:"user_id"`
	QuizID         uuid.UUID `gorm:"not null;uniqueIndex:idx_quiz_certificates_user_quiz" json:"quiz_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	CertificateURL string    `gorm:"size:255;not null" json:"certificate_url"`
	IssuedAt       time.Time `gorm:"not null" json:"issued_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *QuizCertificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
