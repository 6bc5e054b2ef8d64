package handlers

import (
	"time"

	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/ardiansyahnr/edu_platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func StartChatSession(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	session := models.ChatSession{UserID: userID}
	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start chat session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": session.ID})
}

type ChatMessageRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Prompt    string `json:"prompt" validate:"required"`
}

// SendChatMessage proxies the prompt to the LLM provider and logs the
// exchange. One outbound call; a provider failure is the caller's error.
func SendChatMessage(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sessionID, _ := uuid.Parse(req.SessionID)
	var session models.ChatSession
	if err := database.DB.First(&session, "id = ? AND user_id = ?", sessionID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat session not found"})
	}

	reply, err := services.RequestChatCompletion(req.Prompt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get chat response"})
	}

	chatLog := models.ChatLog{
		SessionID: session.ID,
		Prompt:    req.Prompt,
		Response:  reply,
	}
	if err := database.DB.Create(&chatLog).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save chat log"})
	}

	return c.JSON(fiber.Map{"reply": reply})
}

func GetChatHistory(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var session models.ChatSession
	if err := database.DB.First(&session, "id = ? AND user_id = ?", c.Params("sessionId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat session not found"})
	}

	var logs []models.ChatLog
	if err := database.DB.Where("session_id = ?", session.ID).
		Order("created_at asc").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load chat history"})
	}

	return c.JSON(fiber.Map{"logs": logs})
}

func EndChatSession(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var session models.ChatSession
	if err := database.DB.First(&session, "id = ? AND user_id = ?", c.Params("sessionId"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat session not found"})
	}

	now := time.Now()
	session.EndedAt = &now
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to end chat session"})
	}

	return c.JSON(fiber.Map{"message": "Chat session ended"})
}

type ChatSessionSummary struct {
	ID            uuid.UUID       `json:"id"`
	EndedAt       *time.Time      `json:"ended_at"`
	CreatedAt     time.Time       `json:"created_at"`
	LatestMessage *models.ChatLog `json:"latest_message"`
}

// ListChatSessions returns the user's sessions, newest first, each with its
// most recent exchange so a client can render previews without fetching every
// history.
func ListChatSessions(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var sessions []models.ChatSession
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load chat sessions"})
	}

	summaries := make([]ChatSessionSummary, len(sessions))
	for i, session := range sessions {
		summaries[i] = ChatSessionSummary{
			ID:        session.ID,
			EndedAt:   session.EndedAt,
			CreatedAt: session.CreatedAt,
		}

		var latest models.ChatLog
		if err := database.DB.Where("session_id = ?", session.ID).
			Order("created_at desc").First(&latest).Error; err == nil {
			summaries[i].LatestMessage = &latest
		}
	}

	return c.JSON(fiber.Map{"sessions": summaries})
}
