package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/token"

	"github.com/julienschmidt/httprouter"
)

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// AccessVerifier validates bearer tokens presented on protected routes.
type AccessVerifier interface {
	VerifyAccess(raw string) (*token.Claims, error)
}

// Authenticate wraps a single route with bearer token verification.
// Routes without it stay public.
func Authenticate(verifier AccessVerifier) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			raw := extractBearerToken(r)
			if raw == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Authentication credentials were not provided"))
				return
			}

			claims, err := verifier.VerifyAccess(raw)
			if err != nil {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Token is invalid or expired"))
				return
			}

			ctx := ContextWithIdentity(r.Context(), Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
