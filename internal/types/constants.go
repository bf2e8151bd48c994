package types

const ContextAdminKey = "admin"

// SessionCookieName is the cookie holding the signed admin session token.
const SessionCookieName = "adminSession"

var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
}
