package service

import "fmt"

// Allowlist keys. A token is honoured only while its key is present.

func AccessTokenKey(userID int64, tokenID string) string {
	return fmt.Sprintf("access_token:%d:%s", userID, tokenID)
}

func RefreshTokenKey(userID int64, tokenID string) string {
	return fmt.Sprintf("refresh_token:%d:%s", userID, tokenID)
}
