package services

import (
	"errors"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateOptionLabel   = errors.New("an option with this label already exists for the question")
	ErrDuplicateCorrectOption = errors.New("the question already has a correct option")
)

// CreateOption adds an option to a question after checking both invariants:
// labels are unique within a question, and at most one option is correct.
func CreateOption(db *gorm.DB, questionID uuid.UUID, label, text string, isCorrect bool) (*models.Option, error) {
	option := &models.Option{
		QuestionID:  questionID,
		OptionLabel: label,
		OptionText:  text,
		IsCorrect:   isCorrect,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkOptionInvariants(tx, questionID, label, isCorrect, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(option).Error
	})
	if err != nil {
		return nil, err
	}

	return option, nil
}

// UpdateOption rewrites an existing option under the same invariants, ignoring
// the option itself when scanning for conflicts.
func UpdateOption(db *gorm.DB, optionID uuid.UUID, label, text string, isCorrect bool) (*models.Option, error) {
	var option models.Option

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&option, "id = ?", optionID).Error; err != nil {
			return err
		}
		if err := checkOptionInvariants(tx, option.QuestionID, label, isCorrect, optionID); err != nil {
			return err
		}

		option.OptionLabel = label
		option.OptionText = text
		option.IsCorrect = isCorrect
		return tx.Save(&option).Error
	})
	if err != nil {
		return nil, err
	}

	return &option, nil
}

func checkOptionInvariants(tx *gorm.DB, questionID uuid.UUID, label string, isCorrect bool, excludeID uuid.UUID) error {
	var count int64

	query := tx.Model(&models.Option{}).
		Where("question_id = ? AND option_label = ?", questionID, label)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateOptionLabel
	}

	if isCorrect {
		query = tx.Model(&models.Option{}).
			Where("question_id = ? AND is_correct = ?", questionID, true)
		if excludeID != uuid.Nil {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCorrectOption
		}
	}

	return nil
}
