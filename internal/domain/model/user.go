package model

type Role string

const (
	RoleNone    Role = ""
	RoleClient  Role = "client"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// 知らない値はRoleNone扱い
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleClient, RoleManager, RoleAdmin:
		return Role(s)
	default:
		return RoleNone
	}
}

// AuthState は Auth Provider が一度だけ作る認証状態。
// ロールを生のトークンやストレージから再導出しない。
type AuthState struct {
	IsAuthenticated    bool   `json:"is_authenticated"`
	Role               Role   `json:"role"`
	LoadingComplete    bool   `json:"loading_complete"`
	CustomerIdentifier string `json:"cedula,omitempty"`
	Email              string `json:"email,omitempty"`
}

// 未ログイン（読み込み完了済み）
func Anonymous() AuthState {
	return AuthState{LoadingComplete: true}
}
