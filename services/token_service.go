package services

import (
	"time"

	config "github.com/ardiansyahnr/edu_platform/configs"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accessTokenTTL = 30 * 24 * time.Hour

// MintToken signs a new 30-day JWT for the user after revoking every token the
// user already holds. One active session per user.
func MintToken(db *gorm.DB, user *models.User) (string, error) {
	record := models.AccessToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(accessTokenTTL),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).
			Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"jti":     record.ID.String(),
		"exp":     record.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func RevokeAllTokens(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error
}

// TokenAlive reports whether the session behind the jti is still active.
func TokenAlive(db *gorm.DB, tokenID uuid.UUID) bool {
	var record models.AccessToken
	err := db.Where("id = ? AND expires_at > ?", tokenID, time.Now()).
		First(&record).Error
	return err == nil
}

func PurgeExpiredTokens(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at <= ?", time.Now()).Delete(&models.AccessToken{})
	return result.RowsAffected, result.Error
}
