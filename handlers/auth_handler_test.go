package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/ardiansyahnr/edu_platform/routes"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.EmailOtp{}, &models.AccessToken{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("response from %s %s is not JSON: %s", method, path, raw)
		}
	}
	return resp, parsed
}

func wrongCode(code string) string {
	if code == "0000" {
		return "0001"
	}
	return "0000"
}

func createVerifiedUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		FullName: "Test User",
		Email:    email,
		Password: string(hashed),
		Phone:    "0800000000",
		Role:     models.RoleMember,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestRegistrationAndOtpVerificationFlow(t *testing.T) {
	app, db := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", fiber.Map{
		"full_name": "Budi Santoso",
		"email":     "budi@example.com",
		"password":  "secret123",
		"phone":     "081234567890",
	}, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 from register, got %d: %v", resp.StatusCode, body)
	}

	var user models.User
	if err := db.Where("email = ?", "budi@example.com").First(&user).Error; err != nil {
		t.Fatalf("expected registered user in database: %v", err)
	}
	if user.EmailVerifiedAt != nil {
		t.Fatal("expected a fresh account to be unverified")
	}
	if user.Role != models.RoleMember {
		t.Errorf("expected role member, got %q", user.Role)
	}

	var otp models.EmailOtp
	if err := db.Where("user_id = ?", user.ID).First(&otp).Error; err != nil {
		t.Fatalf("expected an OTP issued on registration: %v", err)
	}
	if len(otp.Code) != 4 {
		t.Fatalf("expected a 4-digit code, got %q", otp.Code)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/verify-otp", fiber.Map{
		"email": "budi@example.com",
		"code":  wrongCode(otp.Code),
	}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a wrong code, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/verify-otp", fiber.Map{
		"email": "budi@example.com",
		"code":  otp.Code,
	}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for the correct code, got %d", resp.StatusCode)
	}

	if err := db.First(&user, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if user.EmailVerifiedAt == nil {
		t.Fatal("expected email_verified_at to be set after verification")
	}

	var count int64
	db.Model(&models.EmailOtp{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected OTP consumed on verification, found %d rows", count)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/verify-otp", fiber.Map{
		"email": "budi@example.com",
		"code":  otp.Code,
	}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a replayed code, got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db := setupTestApp(t)
	createVerifiedUser(t, db, "budi@example.com", "secret123")

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", fiber.Map{
		"full_name": "Another Budi",
		"email":     "budi@example.com",
		"password":  "secret123",
		"phone":     "081234567890",
	}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a duplicate email, got %d", resp.StatusCode)
	}
	if body["error"] != "Email already registered" {
		t.Errorf("expected a validation message, got %v", body["error"])
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "budi@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single account for the email, found %d", count)
	}
}

func TestLoginInvalidCredentialsSameMessage(t *testing.T) {
	app, db := setupTestApp(t)
	createVerifiedUser(t, db, "budi@example.com", "secret123")

	resp, unknown := doJSON(t, app, "POST", "/api/v1/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for an unknown email, got %d", resp.StatusCode)
	}

	resp, wrongPass := doJSON(t, app, "POST", "/api/v1/auth/login", fiber.Map{
		"email":    "budi@example.com",
		"password": "not-the-password",
	}, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong password, got %d", resp.StatusCode)
	}

	if unknown["error"] != wrongPass["error"] {
		t.Errorf("expected identical messages, got %q and %q", unknown["error"], wrongPass["error"])
	}
}

func TestLoginSingleActiveSession(t *testing.T) {
	app, db := setupTestApp(t)
	createVerifiedUser(t, db, "budi@example.com", "secret123")

	login := func() string {
		resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", fiber.Map{
			"email":    "budi@example.com",
			"password": "secret123",
		}, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 from login, got %d: %v", resp.StatusCode, body)
		}
		token, ok := body["token"].(string)
		if !ok || token == "" {
			t.Fatal("expected a token in the login response")
		}
		return token
	}

	first := login()
	resp, _ := doJSON(t, app, "GET", "/api/v1/profile", nil, first)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from profile with a live token, got %d", resp.StatusCode)
	}

	second := login()
	resp, _ = doJSON(t, app, "GET", "/api/v1/profile", nil, first)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected the first session to be revoked, got %d", resp.StatusCode)
	}
	resp, body := doJSON(t, app, "GET", "/api/v1/profile", nil, second)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with the new token, got %d: %v", resp.StatusCode, body)
	}
	if body["email"] != "budi@example.com" {
		t.Errorf("expected profile email, got %v", body["email"])
	}
}

func TestProfileRequiresToken(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/v1/profile", nil, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without a token, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "GET", "/api/v1/profile", nil, "not-a-jwt")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 with a malformed token, got %d", resp.StatusCode)
	}
}

func TestForgotPasswordResetFlow(t *testing.T) {
	app, db := setupTestApp(t)
	createVerifiedUser(t, db, "budi@example.com", "oldpass123")

	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/forgot-password", fiber.Map{
		"email": "nobody@example.com",
	}, "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for an unknown email, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/forgot-password", fiber.Map{
		"email": "budi@example.com",
	}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from forgot-password, got %d", resp.StatusCode)
	}

	var otp models.EmailOtp
	if err := db.Where("purpose = ?", "forgot_password").First(&otp).Error; err != nil {
		t.Fatalf("expected a forgot-password OTP issued: %v", err)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/verify-forgot-otp", fiber.Map{
		"email": "budi@example.com",
		"code":  otp.Code,
	}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from verify-forgot-otp, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/reset-password", fiber.Map{
		"email":                 "budi@example.com",
		"password":              "newpass123",
		"password_confirmation": "mismatch",
	}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a confirmation mismatch, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/reset-password", fiber.Map{
		"email":                 "budi@example.com",
		"password":              "newpass123",
		"password_confirmation": "newpass123",
	}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from reset-password, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", fiber.Map{
		"email":    "budi@example.com",
		"password": "oldpass123",
	}, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected the old password to be rejected, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", fiber.Map{
		"email":    "budi@example.com",
		"password": "newpass123",
	}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected login with the new password, got %d", resp.StatusCode)
	}
}
