package services

import (
	"testing"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	// A fresh pooled connection would see an empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.EmailOtp{},
		&models.AccessToken{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.UserQuizScore{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		FullName: name,
		Email:    email,
		Password: "hashed-password",
		Phone:    "0800000000",
		Role:     models.RoleMember,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestQuiz(t *testing.T, db *gorm.DB, title string) models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, CreatedBy: uuid.New()}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("failed to create test quiz: %v", err)
	}
	return quiz
}

func createTestQuestion(t *testing.T, db *gorm.DB, quizID uuid.UUID, text string) models.Question {
	t.Helper()

	question := models.Question{QuizID: quizID, QuestionText: text}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create test question: %v", err)
	}
	return question
}

func createTestOption(t *testing.T, db *gorm.DB, questionID uuid.UUID, label, text string, isCorrect bool) models.Option {
	t.Helper()

	option := models.Option{
		QuestionID:  questionID,
		OptionLabel: label,
		OptionText:  text,
		IsCorrect:   isCorrect,
	}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("failed to create test option: %v", err)
	}
	return option
}
