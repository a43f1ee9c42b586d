package guard

import (
	"slices"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

// リダイレクト先
const (
	PathLogin        = "/login"
	PathHome         = "/"
	PathAdminHome    = "/admin"
	PathUnauthorized = "/unauthorized"
)

// Decide は認証状態とルートの許可ロールから遷移の可否を決める。
// allowed が空なら認証済みなら誰でも通す。
func Decide(state model.AuthState, allowed []model.Role) model.AccessDecision {
	//認証の読み込み中は判断しない
	if !state.LoadingComplete {
		return model.AccessPending
	}
	if !state.IsAuthenticated {
		return model.AccessRedirectLogin
	}
	if len(allowed) == 0 {
		return model.AccessPermit
	}
	if state.Role != model.RoleNone && slices.Contains(allowed, state.Role) {
		return model.AccessPermit
	}

	//ロールごとに行き先を変える
	switch state.Role {
	case model.RoleClient:
		return model.AccessRedirectHome
	case model.RoleAdmin, model.RoleManager:
		return model.AccessRedirectAdminHome
	default:
		return model.AccessRedirectUnauthorized
	}
}

// Target はリダイレクト系の判定を遷移先パスにする。それ以外は空文字。
func Target(d model.AccessDecision) string {
	switch d {
	case model.AccessRedirectLogin:
		return PathLogin
	case model.AccessRedirectHome:
		return PathHome
	case model.AccessRedirectAdminHome:
		return PathAdminHome
	case model.AccessRedirectUnauthorized:
		return PathUnauthorized
	default:
		return ""
	}
}
