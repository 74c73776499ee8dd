package constants

import "time"

const (
	// SessionCookieName is the cookie that carries the signed session token.
	SessionCookieName = "userJWT"

	// SessionTokenTTL is the validity window embedded in the token itself.
	SessionTokenTTL = time.Hour

	// SessionCookieMaxAge is the cookie lifetime in seconds. It is longer than
	// SessionTokenTTL, so an expired token may still arrive in a live cookie.
	SessionCookieMaxAge = 24 * 60 * 60

	// ContextKeyIdentity holds the *session.Identity resolved for a request.
	ContextKeyIdentity = "identity"

	// ContextKeyRequestID holds the request id assigned by the logging middleware.
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is read from and echoed back on every response.
	HeaderRequestID = "X-Request-ID"
)

const (
	// StoreTimeout bounds store bootstrap (connect + ping + index creation).
	StoreTimeout = 10 * time.Second

	// DefaultCacheTTL is used when CACHE_TTL_SECONDS is not set.
	DefaultCacheTTL = 5 * time.Minute

	// TaskDetailsCacheKeyPrefix prefixes cached task details in Redis.
	TaskDetailsCacheKeyPrefix = "task:details:"
)

const (
	// UsersCollection holds accounts in the document store.
	UsersCollection = "users"

	// TasksCollection holds tasks in the document store.
	TasksCollection = "tasks"
)
