package repository

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// ログイン後にセッションへ保存する値
type SessionRecord struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Cedula      string `json:"cedula"`
	Email       string `json:"email"`
}

// 認証セッションの保存・取得を約束
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, rec SessionRecord, ttl time.Duration) error
	Find(ctx context.Context, sessionID string) (SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}
