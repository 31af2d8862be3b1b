package usecase

import (
	"os"
	"time"
)

// DefaultSessionTTL は ADMIN_SESSION_TTL 未設定時のセッション有効期間です。
const DefaultSessionTTL = 12 * time.Hour

// Credentials は環境変数で設定される管理者の認証情報です。
// PasswordHash（bcrypt）が設定されている場合は Password より優先されます。
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Configured は認証に必要な値が揃っているかを返します。
func (c Credentials) Configured() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

// LoadCredentials は環境変数から管理者の認証情報を読み込みます。
func LoadCredentials() Credentials {
	return Credentials{
		Username:     os.Getenv("ADMIN_USERNAME"),
		Password:     os.Getenv("ADMIN_PASSWORD"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

// LoadSessionTTL は ADMIN_SESSION_TTL（例: "12h"）を読み込みます。
// 未設定または不正な値の場合は DefaultSessionTTL を返します。
func LoadSessionTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("ADMIN_SESSION_TTL"))
	if err != nil || d <= 0 {
		return DefaultSessionTTL
	}
	return d
}
