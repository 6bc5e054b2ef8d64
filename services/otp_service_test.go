package services

import (
	"testing"
	"time"

	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestGenerateOtpCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOtpCode()
		if err != nil {
			t.Fatalf("GenerateOtpCode returned error: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("expected 4-digit code, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}

// A different 4-digit code than the one given.
func wrongCode(code string) string {
	if code == "0000" {
		return "0001"
	}
	return "0000"
}

func TestVerifyOtpConsumesCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Budi", "budi@example.com")

	code, err := IssueOtp(db, user.ID, OtpPurposeRegister)
	if err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}

	if !VerifyOtp(db, user.ID, OtpPurposeRegister, code) {
		t.Fatal("expected freshly issued code to verify")
	}

	var count int64
	db.Model(&models.EmailOtp{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected OTP record consumed, found %d rows", count)
	}

	if VerifyOtp(db, user.ID, OtpPurposeRegister, code) {
		t.Fatal("expected replay of a consumed code to fail")
	}
}

func TestVerifyOtpConsumesExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Budi", "budi@example.com")

	code, err := IssueOtp(db, user.ID, OtpPurposeRegister)
	if err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}

	successes := 0
	for i := 0; i < 5; i++ {
		if VerifyOtp(db, user.ID, OtpPurposeRegister, code) {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one verification to succeed, got %d", successes)
	}
}

func TestVerifyOtpWrongCodeLeavesRecord(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Siti", "siti@example.com")

	code, err := IssueOtp(db, user.ID, OtpPurposeRegister)
	if err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}

	if VerifyOtp(db, user.ID, OtpPurposeRegister, wrongCode(code)) {
		t.Fatal("expected mismatched code to fail")
	}

	var count int64
	db.Model(&models.EmailOtp{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected record to survive a failed attempt, found %d rows", count)
	}

	if !VerifyOtp(db, user.ID, OtpPurposeRegister, code) {
		t.Fatal("expected correct code to still verify after a failed attempt")
	}
}

func TestIssueOtpReplacesPreviousCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Andi", "andi@example.com")

	first, err := IssueOtp(db, user.ID, OtpPurposeRegister)
	if err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}
	second, err := IssueOtp(db, user.ID, OtpPurposeRegister)
	if err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}

	var otps []models.EmailOtp
	db.Where("user_id = ?", user.ID).Find(&otps)
	if len(otps) != 1 {
		t.Fatalf("expected a single active OTP row, found %d", len(otps))
	}
	if otps[0].Code != second {
		t.Fatalf("expected stored code %q, got %q", second, otps[0].Code)
	}

	if first != second && VerifyOtp(db, user.ID, OtpPurposeRegister, first) {
		t.Fatal("expected the replaced code to be rejected")
	}
	if !VerifyOtp(db, user.ID, OtpPurposeRegister, second) {
		t.Fatal("expected the latest code to verify")
	}
}

func TestVerifyOtpExpired(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Dewi", "dewi@example.com")

	otp := models.EmailOtp{
		UserID:    user.ID,
		Code:      "1234",
		Purpose:   OtpPurposeRegister,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&otp).Error; err != nil {
		t.Fatalf("failed to seed expired OTP: %v", err)
	}

	if VerifyOtp(db, user.ID, OtpPurposeRegister, "1234") {
		t.Fatal("expected expired code to fail even when digits match")
	}

	var count int64
	db.Model(&models.EmailOtp{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected expired record left in place, found %d rows", count)
	}
}

func TestVerifyOtpPurposeIsolation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Rina", "rina@example.com")

	registerCode, err := IssueOtp(db, user.ID, OtpPurposeRegister)
	if err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}
	if _, err := IssueOtp(db, user.ID, OtpPurposeForgotPassword); err != nil {
		t.Fatalf("IssueOtp returned error: %v", err)
	}

	forgotCode := fetchOtpCode(t, db, user.ID, OtpPurposeForgotPassword)
	if registerCode != forgotCode && VerifyOtp(db, user.ID, OtpPurposeForgotPassword, registerCode) {
		t.Fatal("expected a register code to be rejected for the forgot-password purpose")
	}

	if !VerifyOtp(db, user.ID, OtpPurposeRegister, registerCode) {
		t.Fatal("expected the register code to remain valid for its own purpose")
	}
}

func fetchOtpCode(t *testing.T, db *gorm.DB, userID uuid.UUID, purpose string) string {
	t.Helper()

	var otp models.EmailOtp
	if err := db.Where("user_id = ? AND purpose = ?", userID, purpose).First(&otp).Error; err != nil {
		t.Fatalf("failed to fetch OTP for purpose %q: %v", purpose, err)
	}
	return otp.Code
}
