package common

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// ShortCode derives a url-safe referral code from a fresh UUID. 15 characters
// keeps links short while leaving collisions to the unique index.
func ShortCode() string {
	uid := uuid.New()
	encoded := base64.URLEncoding.EncodeToString(uid[:])
	return trimPadding(encoded)[:15]
}

func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}
