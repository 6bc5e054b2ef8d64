package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Labels run A through D. Label uniqueness and the single-correct-option rule
// are checked in the option service before any write.
type Option struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuestionID  uuid.UUID `gorm:"not null;index" json:"question_id"`
	OptionLabel string    `gorm:"size:1;not null" json:"option_label"`
	OptionText  string    `gorm:"size:255;not null" json:"option_text"`
	IsCorrect   bool      `gorm:"not null;default:false" json:"is_correct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
