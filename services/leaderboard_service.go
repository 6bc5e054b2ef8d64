package services

import (
	"time"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaderboardEntry struct {
	UserName       string    `json:"user_name"`
	UserPhoto      string    `json:"user_photo"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// QuizLeaderboard returns submissions ranked by percentage, earliest
// submission winning ties. Rank numbers are positional and left to the caller.
func QuizLeaderboard(db *gorm.DB, quizID uuid.UUID) ([]LeaderboardEntry, error) {
	var scores []models.UserQuizScore
	err := db.Preload("User").
		Where("quiz_id = ?", quizID).
		Order("percentage desc").
		Order("submitted_at asc").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(scores))
	for i, score := range scores {
		entries[i] = LeaderboardEntry{
			UserName:       score.User.FullName,
			UserPhoto:      score.User.PhotoURL,
			Score:          score.Score,
			TotalQuestions: score.TotalQuestions,
			Percentage:     score.Percentage,
			SubmittedAt:    score.SubmittedAt,
		}
	}
	return entries, nil
}

type UserScoreEntry struct {
	QuizID          uuid.UUID `json:"quiz_id"`
	QuizTitle       string    `json:"quiz_title"`
	QuizDescription string    `json:"quiz_description"`
	QuizThumbnail   *string   `json:"quiz_thumbnail"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	Percentage      float64   `json:"percentage"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

func UserScores(db *gorm.DB, userID uuid.UUID) ([]UserScoreEntry, error) {
	var scores []models.UserQuizScore
	err := db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	entries := make([]UserScoreEntry, len(scores))
	for i, score := range scores {
		entries[i] = UserScoreEntry{
			QuizID:          score.QuizID,
			QuizTitle:       score.Quiz.Title,
			QuizDescription: score.Quiz.Description,
			QuizThumbnail:   score.Quiz.ThumbnailURL,
			Score:           score.Score,
			TotalQuestions:  score.TotalQuestions,
			Percentage:      score.Percentage,
			SubmittedAt:     score.SubmittedAt,
		}
	}
	return entries, nil
}
