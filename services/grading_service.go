package services

import (
	"errors"
	"math"
	"time"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrQuizAlreadySubmitted = errors.New("quiz already submitted by this user")

type QuizAnswer struct {
	QuestionID     uuid.UUID `json:"question_id" validate:"required"`
	SelectedOption string    `json:"selected_option" validate:"required,oneof=A B C D"`
}

type ScoreResult struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total"`
	Percentage     float64 `json:"percentage"`
}

// SubmitQuiz grades the answers and records the result. A user may submit a
// quiz exactly once: the pre-check and the unique (user_id, quiz_id) index on
// the insert both map to ErrQuizAlreadySubmitted, so concurrent submissions
// cannot both land. The whole operation runs in one transaction.
//
// The total is the number of submitted answers, not the number of questions
// the quiz defines, so a partial submission scores against itself.
func SubmitQuiz(db *gorm.DB, userID, quizID uuid.UUID, answers []QuizAnswer) (*ScoreResult, error) {
	var result *ScoreResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserQuizScore
		err := tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).
			First(&existing).Error
		if err == nil {
			return ErrQuizAlreadySubmitted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		score := 0
		for _, ans := range answers {
			var count int64
			if err := tx.Model(&models.Option{}).
				Where("question_id = ? AND option_label = ? AND is_correct = ?",
					ans.QuestionID, ans.SelectedOption, true).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				score++
			}
		}

		total := len(answers)
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(score)/float64(total)*100*100) / 100
		}

		record := models.UserQuizScore{
			UserID:         userID,
			QuizID:         quizID,
			Score:          score,
			TotalQuestions: total,
			Percentage:     percentage,
			SubmittedAt:    time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrQuizAlreadySubmitted
			}
			return err
		}

		result = &ScoreResult{
			Score:          score,
			TotalQuestions: total,
			Percentage:     percentage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
