package middlewares

// Gin context keys shared between middlewares and handlers.
const (
	CtxRequestID = "ctx.requestID"
	CtxUserID    = "auth.userID"
	CtxEmail     = "auth.email"
	CtxName      = "auth.name"
)
