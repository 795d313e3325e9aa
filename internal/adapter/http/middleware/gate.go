package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// AuthContextKey is the context key for the caller's auth context
	AuthContextKey ContextKey = "auth"

	// SessionCookieName is the cookie carrying the session token for
	// browser clients
	SessionCookieName = "session"
)

// Access holds the requirement a gate rule imposes on a path prefix.
type Access int

const (
	// AccessPublic requires nothing
	AccessPublic Access = iota

	// AccessAuthenticated requires any valid session
	AccessAuthenticated

	// AccessAdmin requires the admin or superadmin role
	AccessAdmin

	// AccessMerchant requires the merchant role
	AccessMerchant
)

// Rule maps a path prefix to an access requirement.
type Rule struct {
	Prefix string
	Access Access
}

// DefaultRules is the gate's standard rule table. Longest matching prefix
// wins; a path matching no rule is allowed through.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/login", Access: AccessPublic},
		{Prefix: "/health", Access: AccessPublic},
		{Prefix: "/ready", Access: AccessPublic},
		{Prefix: "/metrics", Access: AccessPublic},
		{Prefix: "/api/v1/admin", Access: AccessAdmin},
		{Prefix: "/api/v1/merchant", Access: AccessMerchant},
		{Prefix: "/api", Access: AccessAuthenticated},
		{Prefix: "/admin", Access: AccessAdmin},
		{Prefix: "/merchant", Access: AccessMerchant},
	}
}

// Gate authorizes every request against a prefix rule table before it
// reaches a handler. It resolves the caller's identity from a bearer token
// or the session cookie, checks the matched rule, and stores a
// domain.AuthContext in the request context for handlers to pass into use
// cases. The gate never mutates session state.
type Gate struct {
	jwtManager *auth.JWTManager
	rules      []Rule
}

// NewGate creates a gate over the given rule table. Rules are matched by
// longest prefix, so their order in the slice does not matter.
func NewGate(jwtManager *auth.JWTManager, rules []Rule) *Gate {
	return &Gate{jwtManager: jwtManager, rules: rules}
}

// Wrap wraps an http.Handler with the gate check.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := g.resolve(r)

		ctx := context.WithValue(r.Context(), AuthContextKey, authz)
		r = r.WithContext(ctx)

		rule, matched := g.match(r.URL.Path)
		if !matched || rule.Access == AccessPublic {
			next.ServeHTTP(w, r)
			return
		}

		if !authz.Authenticated {
			deny(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		switch rule.Access {
		case AccessAdmin:
			if !authz.Role.IsAdmin() {
				deny(w, r, http.StatusForbidden, "forbidden")
				return
			}
		case AccessMerchant:
			if authz.Role != domain.RoleMerchant {
				deny(w, r, http.StatusForbidden, "forbidden")
				return
			}
		case AccessAuthenticated:
			if !authz.Role.IsValid() {
				deny(w, r, http.StatusForbidden, "forbidden")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// resolve extracts and verifies the caller's token. A missing or invalid
// token yields an unauthenticated context rather than an error; the matched
// rule decides whether that is acceptable.
func (g *Gate) resolve(r *http.Request) domain.AuthContext {
	token := bearerToken(r)
	if token == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}
	}

	if token == "" {
		return domain.AuthContext{}
	}

	claims, err := g.jwtManager.Verify(token)
	if err != nil {
		return domain.AuthContext{}
	}

	return claims.AuthContext()
}

// match returns the rule with the longest prefix covering the path.
func (g *Gate) match(path string) (Rule, bool) {
	var (
		best    Rule
		matched bool
	)

	for _, rule := range g.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}

		// prefix must end at a path boundary
		if len(path) > len(rule.Prefix) && path[len(rule.Prefix)] != '/' {
			continue
		}

		if !matched || len(rule.Prefix) > len(best.Prefix) {
			best = rule
			matched = true
		}
	}

	return best, matched
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// deny rejects the request. Browser clients get sent to the login page,
// API clients get the JSON envelope.
func deny(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"error":"` + message + `"}`))
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// AuthFromContext extracts the caller's auth context. Requests that never
// passed the gate yield the zero (unauthenticated) context.
func AuthFromContext(ctx context.Context) domain.AuthContext {
	authz, ok := ctx.Value(AuthContextKey).(domain.AuthContext)
	if !ok {
		return domain.AuthContext{}
	}

	return authz
}
