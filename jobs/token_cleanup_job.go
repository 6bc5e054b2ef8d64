package jobs

import (
	"log"

	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/services"
)

// CleanupExpiredTokens drops access-token rows past their expiry. Expired OTP
// codes are left alone; they are inert and rejected at verification time.
func CleanupExpiredTokens() {
	removed, err := services.PurgeExpiredTokens(database.DB)
	if err != nil {
		log.Printf("🔥 Failed to purge expired access tokens: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Purged %d expired access tokens", removed)
	}
}
