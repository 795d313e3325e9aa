package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/auth"
)

func newTestGate(t *testing.T) (*Gate, *auth.JWTManager) {
	t.Helper()

	jwtManager := auth.NewJWTManager("gate-secret", time.Minute)

	return NewGate(jwtManager, DefaultRules()), jwtManager
}

func tokenFor(t *testing.T, jwtManager *auth.JWTManager, role domain.Role) string {
	t.Helper()

	token, err := jwtManager.Generate(&domain.User{
		ID:    "user-" + string(role),
		Email: string(role) + "@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return token
}

func TestGateRuleTable(t *testing.T) {
	gate, jwtManager := newTestGate(t)

	testCases := []struct {
		name       string
		path       string
		role       domain.Role
		anonymous  bool
		wantStatus int
	}{
		{
			name:       "login is public",
			path:       "/login",
			anonymous:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "health is public",
			path:       "/health",
			anonymous:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin area rejects anonymous",
			path:       "/api/v1/admin/fundings",
			anonymous:  true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin area rejects merchant",
			path:       "/api/v1/admin/fundings",
			role:       domain.RoleMerchant,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin area admits admin",
			path:       "/api/v1/admin/fundings",
			role:       domain.RoleAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin area admits superadmin",
			path:       "/api/v1/admin/ledger/drift/mer-1",
			role:       domain.RoleSuperAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:       "merchant area rejects admin",
			path:       "/api/v1/merchant/statements",
			role:       domain.RoleAdmin,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "merchant area admits merchant",
			path:       "/api/v1/merchant/statements",
			role:       domain.RoleMerchant,
			wantStatus: http.StatusOK,
		},
		{
			name:       "api reads admit any role",
			path:       "/api/v1/products",
			role:       domain.RoleMerchant,
			wantStatus: http.StatusOK,
		},
		{
			name:       "api reads reject anonymous",
			path:       "/api/v1/products",
			anonymous:  true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unmatched path is allowed",
			path:       "/favicon.ico",
			anonymous:  true,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if !tc.anonymous {
				req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtManager, tc.role))
			}

			rr := httptest.NewRecorder()

			gate.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestGateAcceptsSessionCookie(t *testing.T) {
	gate, jwtManager := newTestGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/merchants", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tokenFor(t, jwtManager, domain.RoleAdmin)})

	rr := httptest.NewRecorder()

	gate.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected cookie session to be accepted, got %d", rr.Code)
	}
}

func TestGateRedirectsBrowserClients(t *testing.T) {
	gate, _ := newTestGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/merchants", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	rr := httptest.NewRecorder()

	gate.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be reached")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}

	if got := rr.Header().Get("Location"); got != "/login" {
		t.Fatalf("expected redirect to /login, got %q", got)
	}
}

func TestGateRejectsTamperedToken(t *testing.T) {
	gate, _ := newTestGate(t)

	other := auth.NewJWTManager("other-secret", time.Minute)
	token, err := other.Generate(&domain.User{ID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/merchants", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()

	gate.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be reached")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with another key, got %d", rr.Code)
	}
}

func TestGatePopulatesAuthContext(t *testing.T) {
	gate, jwtManager := newTestGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtManager, domain.RoleMerchant))

	rr := httptest.NewRecorder()

	var got domain.AuthContext
	gate.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = AuthFromContext(r.Context())
	})).ServeHTTP(rr, req)

	if !got.Authenticated || got.Role != domain.RoleMerchant {
		t.Fatalf("unexpected auth context: %+v", got)
	}
}

func TestGateMatchPrefersLongestPrefix(t *testing.T) {
	gate, _ := newTestGate(t)

	rule, matched := gate.match("/api/v1/admin/fundings")
	if !matched || rule.Access != AccessAdmin {
		t.Fatalf("expected admin rule, got %+v matched=%v", rule, matched)
	}

	rule, matched = gate.match("/api/v1/fundings/ref-1")
	if !matched || rule.Access != AccessAuthenticated {
		t.Fatalf("expected authenticated rule, got %+v matched=%v", rule, matched)
	}

	// /apiary must not match the /api prefix
	if _, matched = gate.match("/apiary"); matched {
		t.Fatalf("expected no rule for /apiary")
	}
}
