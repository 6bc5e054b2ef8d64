package services

import (
	"testing"
	"time"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedScore(t *testing.T, db *gorm.DB, userID, quizID uuid.UUID, percentage float64, submittedAt time.Time) {
	t.Helper()

	score := models.UserQuizScore{
		UserID:         userID,
		QuizID:         quizID,
		Score:          int(percentage / 10),
		TotalQuestions: 10,
		Percentage:     percentage,
		SubmittedAt:    submittedAt,
	}
	if err := db.Create(&score).Error; err != nil {
		t.Fatalf("failed to seed score: %v", err)
	}
}

func TestQuizLeaderboardOrdering(t *testing.T) {
	db := setupTestDB(t)
	quiz := createTestQuiz(t, db, "Ranked")

	budi := createTestUser(t, db, "Budi", "budi@example.com")
	siti := createTestUser(t, db, "Siti", "siti@example.com")
	andi := createTestUser(t, db, "Andi", "andi@example.com")

	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedScore(t, db, budi.ID, quiz.ID, 80, day.Add(10*time.Hour))
	seedScore(t, db, siti.ID, quiz.ID, 80, day.Add(9*time.Hour))
	seedScore(t, db, andi.ID, quiz.ID, 90, day.Add(11*time.Hour))

	entries, err := QuizLeaderboard(db, quiz.ID)
	if err != nil {
		t.Fatalf("QuizLeaderboard returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []string{"Andi", "Siti", "Budi"}
	for i, name := range want {
		if entries[i].UserName != name {
			t.Errorf("position %d: expected %s, got %s", i, name, entries[i].UserName)
		}
	}
}

func TestQuizLeaderboardScopedToQuiz(t *testing.T) {
	db := setupTestDB(t)
	quiz := createTestQuiz(t, db, "One")
	other := createTestQuiz(t, db, "Two")
	user := createTestUser(t, db, "Budi", "budi@example.com")

	seedScore(t, db, user.ID, quiz.ID, 70, time.Now())
	seedScore(t, db, user.ID, other.ID, 90, time.Now())

	entries, err := QuizLeaderboard(db, quiz.ID)
	if err != nil {
		t.Fatalf("QuizLeaderboard returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Percentage != 70 {
		t.Errorf("expected the quiz's own score, got %v", entries[0].Percentage)
	}
}

func TestQuizLeaderboardEmpty(t *testing.T) {
	db := setupTestDB(t)
	quiz := createTestQuiz(t, db, "Untouched")

	entries, err := QuizLeaderboard(db, quiz.ID)
	if err != nil {
		t.Fatalf("QuizLeaderboard returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestUserScoresNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Budi", "budi@example.com")
	older := createTestQuiz(t, db, "Older")
	newer := createTestQuiz(t, db, "Newer")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedScore(t, db, user.ID, older.ID, 60, base)
	seedScore(t, db, user.ID, newer.ID, 80, base.Add(time.Hour))

	entries, err := UserScores(db, user.ID)
	if err != nil {
		t.Fatalf("UserScores returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].QuizTitle != "Newer" || entries[1].QuizTitle != "Older" {
		t.Errorf("expected newest first, got %q then %q", entries[0].QuizTitle, entries[1].QuizTitle)
	}
}
