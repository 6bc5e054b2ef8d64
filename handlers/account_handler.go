package handlers

import (
	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Where("role = ?", models.RoleMember).
		Select("id", "full_name", "email", "phone", "photo_url").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}
	return c.JSON(users)
}

// AdminDeleteUser removes the account and everything that hangs off it. The
// cascade is explicit so the whole removal commits or rolls back as one unit.
func AdminDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.EmailOtp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserQuizScore{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.QuizCertificate{}).Error; err != nil {
			return err
		}

		var sessionIDs []string
		if err := tx.Model(&models.ChatSession{}).
			Where("user_id = ?", user.ID).Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Where("session_id IN ?", sessionIDs).Delete(&models.ChatLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sessionIDs).Delete(&models.ChatSession{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"message": "User and related data deleted successfully"})
}
