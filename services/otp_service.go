package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OtpPurposeRegister       = "register"
	OtpPurposeForgotPassword = "forgot_password"

	otpTTL = 10 * time.Minute
)

func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// IssueOtp mints a fresh 4-digit code for the user and purpose, replacing any
// previously issued code for the same pair. Only the latest code ever verifies.
func IssueOtp(db *gorm.DB, userID uuid.UUID, purpose string) (string, error) {
	code, err := GenerateOtpCode()
	if err != nil {
		return "", err
	}

	otp := models.EmailOtp{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpTTL),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ?", userID, purpose).
			Delete(&models.EmailOtp{}).Error; err != nil {
			return err
		}
		return tx.Create(&otp).Error
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

// VerifyOtp reports whether the code matches an unexpired record for the user
// and purpose. A successful verification consumes the record; failures leave
// it untouched. Expired and mismatched codes are rejected identically. The
// conditional delete makes the consume a single statement, so two concurrent
// attempts with the same code cannot both succeed.
func VerifyOtp(db *gorm.DB, userID uuid.UUID, purpose, code string) bool {
	result := db.Where("user_id = ? AND purpose = ? AND code = ? AND expires_at > ?",
		userID, purpose, code, time.Now()).Delete(&models.EmailOtp{})
	return result.Error == nil && result.RowsAffected > 0
}
