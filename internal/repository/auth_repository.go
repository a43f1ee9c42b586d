package repository

import "context"

// トークン発行はバックエンドの責務。ここではアクセストークンを受け取るだけ。
type AuthAPI interface {
	Token(ctx context.Context, email string, password string) (string, error)
}

type accessTokenKey struct{}

// WithAccessToken はバックエンド呼び出しに付けるBearerトークンをctxに載せる。
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessTokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(accessTokenKey{}).(string)
	return t, ok && t != ""
}
