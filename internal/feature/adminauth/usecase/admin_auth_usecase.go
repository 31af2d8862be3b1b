package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"featureboard_backend/internal/feature/adminauth/domain/entity"
)

// TokenGenerator はセッションIDを埋め込んだ署名済みトークンを生成します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	GenerateToken(sessionID, subject string, expiresAt time.Time) (string, error)
}

// ClientMeta はセッション監査用のクライアント情報です。
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// LoginResult は認証成功時に返すトークンと有効期限です。
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// AdminAuthUsecase は管理者認証とセッション検証を提供します。
type AdminAuthUsecase struct {
	creds    Credentials
	sessions SessionRepository
	tokens   TokenGenerator
	ttl      time.Duration
	now      func() time.Time
}

// NewAdminAuthUsecase はAdminAuthUsecaseの新しいインスタンスを生成します。
// ttl が 0 以下の場合は DefaultSessionTTL を使用します。
func NewAdminAuthUsecase(creds Credentials, sessions SessionRepository, tokens TokenGenerator, ttl time.Duration) *AdminAuthUsecase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AdminAuthUsecase{
		creds:    creds,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Authenticate は送信された認証情報を設定値と比較し、一致すればセッションを作成してトークンを返します。
// 比較は大文字小文字を区別する完全一致で、ユーザー名とパスワードは常に両方検証します。
func (u *AdminAuthUsecase) Authenticate(ctx context.Context, username, password string, meta ClientMeta) (*LoginResult, error) {
	if !u.creds.Configured() {
		return nil, ErrConfig
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.creds.Username)) == 1
	passOK := u.matchPassword(password)
	if !userOK || !passOK {
		return nil, ErrUnauthorized
	}

	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := u.now()
	session := &entity.Session{
		ID:        id,
		Username:  u.creds.Username,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	// セッションはトークンの署名に成功した後にのみ保存する
	token, err := u.tokens.GenerateToken(session.ID, session.Username, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// ValidateSession はセッションが存在し、失効・期限切れでないことを確認します。
func (u *AdminAuthUsecase) ValidateSession(ctx context.Context, sessionID string) error {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.IsRevoked() {
		return ErrSessionRevoked
	}
	if session.IsExpired() {
		return ErrSessionExpired
	}
	return nil
}

// Logout はセッションを失効させます。すでに失効済みでもエラーにしません。
func (u *AdminAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// matchPassword は bcrypt ハッシュが設定されていればそれと、なければ平文と比較します。
func (u *AdminAuthUsecase) matchPassword(password string) bool {
	if u.creds.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.creds.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(u.creds.Password)) == 1
}

// newSessionID は 64 文字の16進ランダム文字列を返します。
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
