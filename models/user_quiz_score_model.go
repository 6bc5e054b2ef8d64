package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One submission per user per quiz. The unique index makes the insert itself
// the duplicate-submission guard under concurrent requests.
type UserQuizScore struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"not null;uniqueIndex:idx_user_quiz_scores_user_quiz" json:"user_id"`
	QuizID         uuid.UUID `gorm:"not null;uniqueIndex:idx_user_quiz_scores_user_quiz" json:"quiz_id"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	Percentage     float64   `gorm:"type:decimal(5,2);not null" json:"percentage"`
	SubmittedAt    time.Time `gorm:"not null" json:"submitted_at"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Quiz Quiz `gorm:"foreignkey:QuizID" json:"quiz,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *UserQuizScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
