package model

type AccessDecision string

const (
	AccessPending              AccessDecision = "PENDING"
	AccessPermit               AccessDecision = "PERMIT"
	AccessRedirectLogin        AccessDecision = "REDIRECT_LOGIN"
	AccessRedirectHome         AccessDecision = "REDIRECT_HOME"
	AccessRedirectAdminHome    AccessDecision = "REDIRECT_ADMIN_HOME"
	AccessRedirectUnauthorized AccessDecision = "REDIRECT_UNAUTHORIZED"
)
