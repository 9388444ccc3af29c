package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyClaims = "auth_claims"
	ContextKeyReqID  = "request_id"
)

// Password constraints
const (
	MinPasswordLength       = 8
	GeneratedPasswordLength = 12
)
