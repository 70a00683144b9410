package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the session token in the Authorization header.
	BearerPrefix = "Bearer "

	// DefaultSessionCookieName is used when the config does not override it.
	DefaultSessionCookieName = "wot_session"

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"
)
