package handlers

import (
	"errors"

	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/ardiansyahnr/edu_platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateQuiz stores a quiz, with an optional multipart thumbnail.
func CreateQuiz(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	creatorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	quiz := models.Quiz{
		Title:       title,
		Description: c.FormValue("description"),
		CreatedBy:   creatorID,
	}

	if uploaded, err := uploadFormFile(c, "thumbnail", services.FolderQuizThumbnails, ".jpg", ".jpeg", ".png"); err != nil {
		return err
	} else if uploaded != nil {
		quiz.ThumbnailURL = &uploaded.URL
		quiz.ThumbnailPublicID = &uploaded.PublicID
	}

	if err := database.DB.Create(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"quiz":    quiz,
	})
}

func UpdateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", c.Params("quizId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	if title := c.FormValue("title"); title != "" {
		quiz.Title = title
	}
	if description := c.FormValue("description"); description != "" {
		quiz.Description = description
	}

	if uploaded, err := uploadFormFile(c, "thumbnail", services.FolderQuizThumbnails, ".jpg", ".jpeg", ".png"); err != nil {
		return err
	} else if uploaded != nil {
		if quiz.ThumbnailPublicID != nil {
			_ = services.DeleteFile(*quiz.ThumbnailPublicID)
		}
		quiz.ThumbnailURL = &uploaded.URL
		quiz.ThumbnailPublicID = &uploaded.PublicID
	}

	if err := database.DB.Save(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update quiz"})
	}

	return c.JSON(fiber.Map{
		"message": "Quiz updated successfully",
		"quiz":    quiz,
	})
}

// DeleteQuiz cascades through questions to options and removes the stored
// thumbnail.
func DeleteQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", c.Params("quizId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&models.Question{}).
			Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", questionIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.UserQuizScore{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete quiz"})
	}

	if quiz.ThumbnailPublicID != nil {
		_ = services.DeleteFile(*quiz.ThumbnailPublicID)
	}

	return c.JSON(fiber.Map{"message": "Quiz and all related data deleted"})
}

func ListQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	database.DB.Select("id", "title", "description", "thumbnail_url").Find(&quizzes)
	return c.JSON(fiber.Map{"quizzes": quizzes})
}

func GetQuizDetail(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", c.Params("quizId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var totalQuestions int64
	database.DB.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&totalQuestions)

	return c.JSON(fiber.Map{
		"quiz": fiber.Map{
			"id":              quiz.ID,
			"title":           quiz.Title,
			"description":     quiz.Description,
			"thumbnail_url":   quiz.ThumbnailURL,
			"total_questions": totalQuestions,
		},
	})
}

type QuestionRequest struct {
	QuestionText string `json:"question_text" validate:"required"`
}

func AddQuestion(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quiz id"})
	}
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question := models.Question{QuizID: quizID, QuestionText: req.QuestionText}
	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Question added successfully",
		"question": question,
	})
}

func UpdateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.First(&question, "id = ?", c.Params("questionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question.QuestionText = req.QuestionText
	database.DB.Save(&question)

	return c.JSON(fiber.Map{
		"message":  "Question updated successfully",
		"question": question,
	})
}

func DeleteQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.First(&question, "id = ?", c.Params("questionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}

	return c.JSON(fiber.Map{"message": "Question and all related options deleted"})
}

func GetQuestions(c *fiber.Ctx) error {
	var questions []models.Question
	if err := database.DB.Preload("Options").
		Where("quiz_id = ?", c.Params("quizId")).
		Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load questions"})
	}
	return c.JSON(fiber.Map{"questions": questions})
}

type OptionRequest struct {
	OptionLabel string `json:"option_label" validate:"required,oneof=A B C D"`
	OptionText  string `json:"option_text" validate:"required"`
	IsCorrect   *bool  `json:"is_correct" validate:"required"`
}

func optionErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateOptionLabel),
		errors.Is(err, services.ErrDuplicateCorrectOption):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Option not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save option"})
	}
}

func AddOption(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}
	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req OptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	option, err := services.CreateOption(database.DB, questionID, req.OptionLabel, req.OptionText, *req.IsCorrect)
	if err != nil {
		return optionErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Option added successfully",
		"option":  option,
	})
}

func UpdateOption(c *fiber.Ctx) error {
	optionID, err := uuid.Parse(c.Params("optionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid option id"})
	}

	var req OptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	option, err := services.UpdateOption(database.DB, optionID, req.OptionLabel, req.OptionText, *req.IsCorrect)
	if err != nil {
		return optionErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Option updated successfully",
		"option":  option,
	})
}

func DeleteOption(c *fiber.Ctx) error {
	var option models.Option
	if err := database.DB.First(&option, "id = ?", c.Params("optionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Option not found"})
	}

	if err := database.DB.Delete(&option).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete option"})
	}

	return c.JSON(fiber.Map{"message": "Option deleted"})
}

type SubmitQuizRequest struct {
	Answers []services.QuizAnswer `json:"answers" validate:"required,min=1,dive"`
}

// SubmitQuiz grades the submission once per user per quiz and may issue an
// achievement certificate in the background.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quiz id"})
	}
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.SubmitQuiz(database.DB, userID, quizID, req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrQuizAlreadySubmitted) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already taken this quiz"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit answers"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
		go services.CheckAndGenerateQuizCertificate(user, quiz, *result)
	}

	return c.JSON(fiber.Map{
		"message":    "Answers submitted successfully",
		"score":      result.Score,
		"total":      result.TotalQuestions,
		"percentage": result.Percentage,
	})
}

func GetLeaderboard(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", c.Params("quizId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	entries, err := services.QuizLeaderboard(database.DB, quiz.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load leaderboard"})
	}

	return c.JSON(fiber.Map{
		"quiz": fiber.Map{
			"id":          quiz.ID,
			"title":       quiz.Title,
			"description": quiz.Description,
		},
		"leaderboard": entries,
	})
}

func GetMyQuizScores(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entries, err := services.UserScores(database.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load quiz scores"})
	}

	return c.JSON(fiber.Map{"quiz_scores": entries})
}
