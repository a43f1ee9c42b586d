package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const defaultSessionTTL = 12 * time.Hour

// バックエンドが発行するアクセストークンのクレーム
type accessClaims struct {
	Role   string `json:"role"`
	Cedula string `json:"cedula"`
	jwt.RegisteredClaims
}

// AuthUsecase はログイン状態を一度だけ組み立てて、セッションに保存する。
// ロールはここ以外でトークンから読み直さない。
type AuthUsecase struct {
	api       repo.AuthAPI
	sessions  repo.SessionRepository
	validator AuthValidator
	clock     Clock
	secret    []byte
	ttl       time.Duration
	logger    *zap.Logger
}

func NewAuthUsecase(
	api repo.AuthAPI,
	sessions repo.SessionRepository,
	validator AuthValidator,
	clock Clock,
	jwtSecret string,
	ttl time.Duration,
	logger *zap.Logger,
) *AuthUsecase {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthUsecase{
		api:       api,
		sessions:  sessions,
		validator: validator,
		clock:     clock,
		secret:    []byte(jwtSecret),
		ttl:       ttl,
		logger:    logger,
	}
}

func (u *AuthUsecase) Login(ctx context.Context, sessionID string, email string, password string) (model.AuthState, error) {
	email = strings.TrimSpace(email)
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return model.Anonymous(), ErrValidation
	}

	token, err := u.api.Token(ctx, email, password)
	if err != nil {
		if ae, ok := repo.AsAPIError(err); ok && (ae.Status == http.StatusUnauthorized || ae.Status == http.StatusBadRequest) {
			return model.Anonymous(), ErrInvalidCredentials
		}
		u.logger.Warn("token request failed", zap.String("email", email), zap.Error(err))
		return model.Anonymous(), ErrInternal
	}

	state, err := u.StateFromToken(token)
	if err != nil {
		u.logger.Warn("unreadable access token", zap.String("email", email), zap.Error(err))
		return model.Anonymous(), err
	}

	rec := repo.SessionRecord{
		AccessToken: token,
		Role:        string(state.Role),
		Cedula:      state.CustomerIdentifier,
		Email:       state.Email,
	}
	if err := u.sessions.Save(ctx, sessionID, rec, u.ttl); err != nil {
		u.logger.Error("session save failed", zap.String("session_id", sessionID), zap.Error(err))
		return model.Anonymous(), ErrInternal
	}

	return state, nil
}

// 未ログインのセッションでも成功扱い
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	err := u.sessions.Delete(ctx, sessionID)
	if err == nil || errors.Is(err, repo.ErrSessionNotFound) {
		return nil
	}
	u.logger.Error("session delete failed", zap.String("session_id", sessionID), zap.Error(err))
	return ErrInternal
}

// Restore は保存済みの認証状態を読む。
// ストアが読めないときは LoadingComplete=false のまま返す（ガードは Pending）。
func (u *AuthUsecase) Restore(ctx context.Context, sessionID string) model.AuthState {
	st, _ := u.RestoreWithToken(ctx, sessionID)
	return st
}

// RestoreWithToken は認証状態とバックエンドへ転送するトークンを一度に読む。
func (u *AuthUsecase) RestoreWithToken(ctx context.Context, sessionID string) (model.AuthState, string) {
	if sessionID == "" {
		return model.Anonymous(), ""
	}
	rec, err := u.sessions.Find(ctx, sessionID)
	if errors.Is(err, repo.ErrSessionNotFound) {
		return model.Anonymous(), ""
	}
	if err != nil {
		u.logger.Warn("session restore failed", zap.String("session_id", sessionID), zap.Error(err))
		return model.AuthState{}, ""
	}
	return model.AuthState{
		IsAuthenticated:    true,
		Role:               model.ParseRole(rec.Role),
		LoadingComplete:    true,
		CustomerIdentifier: rec.Cedula,
		Email:              rec.Email,
	}, rec.AccessToken
}

// StateFromToken はトークンのクレームから認証状態を作る。
// JWT_SECRET があれば署名を検証し、無ければ期限だけを見る。
func (u *AuthUsecase) StateFromToken(token string) (model.AuthState, error) {
	claims := &accessClaims{}
	if len(u.secret) > 0 {
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return u.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(u.clock.Now))
		if err != nil {
			return model.AuthState{}, ErrInvalidToken
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return model.AuthState{}, ErrInvalidToken
		}
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return model.AuthState{}, ErrInvalidToken
		}
		if exp != nil && !exp.After(u.clock.Now()) {
			return model.AuthState{}, ErrInvalidToken
		}
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return model.AuthState{}, ErrInvalidToken
	}

	return model.AuthState{
		IsAuthenticated:    true,
		Role:               model.ParseRole(claims.Role),
		LoadingComplete:    true,
		CustomerIdentifier: claims.Cedula,
		Email:              claims.Subject,
	}, nil
}
