package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCConfig holds issuer settings for the presentation API. When Enabled is
// false the API trusts the tenant_id in request bodies, which is only
// acceptable for local stub-mode runs.
type OIDCConfig struct {
	IssuerURL string
	Audience  string
	Enabled   bool
}

type contextKey string

const (
	ctxTenantID contextKey = "tenant_id"
	ctxUserID   contextKey = "user_id"
)

// TenantFromContext returns the tenant the bearer token was scoped to, or ""
// when auth is disabled.
func TenantFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxTenantID).(string)
	return v
}

// UserFromContext returns the authenticated principal. It identifies the
// reviewer on outline approve/deny actions.
func UserFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxUserID).(string)
	return v
}

// requestTenant picks the tenant for a generation request: the token claim
// wins over the body value, which stays as a fallback for deployments
// running without OIDC.
func requestTenant(r *http.Request, bodyTenant string) string {
	if id := TenantFromContext(r.Context()); id != "" {
		return id
	}
	return bodyTenant
}

// identityClaims are the token claims the deck API reads.
type identityClaims struct {
	TenantID string `json:"tenant_id"`
	Sub      string `json:"sub"`
	Email    string `json:"email"`
}

func (c identityClaims) principal() string {
	if c.Sub != "" {
		return c.Sub
	}
	return c.Email
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

// oidcAuth verifies bearer tokens against the tenant's OIDC provider and
// stamps tenant and reviewer identity onto the request context. The health
// endpoint stays open so probes can run without credentials.
func oidcAuth(provider *oidc.Provider, audience string) func(http.Handler) http.Handler {
	verifier := provider.Verifier(&oidc.Config{ClientID: audience})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/v1/health" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing or malformed bearer token")
				return
			}

			token, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token: "+err.Error())
				return
			}

			var claims identityClaims
			if err := token.Claims(&claims); err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			ctx := r.Context()
			if claims.TenantID != "" {
				ctx = context.WithValue(ctx, ctxTenantID, claims.TenantID)
			}
			if id := claims.principal(); id != "" {
				ctx = context.WithValue(ctx, ctxUserID, id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
