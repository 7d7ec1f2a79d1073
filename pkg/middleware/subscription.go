package middleware

import (
	"context"
	"net/http"

	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"

	"github.com/julienschmidt/httprouter"
)

// SubscriptionChecker reports whether a user currently holds an active
// subscription.
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID string) (bool, error)
}

// RequireSubscription gates listing creation behind an active
// subscription. Must run after Authenticate.
func RequireSubscription(checker SubscriptionChecker) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Authentication credentials were not provided"))
				return
			}

			active, err := checker.HasActiveSubscription(r.Context(), identity.UserID)
			if err != nil {
				_ = httputil.WriteError(w, err)
				return
			}

			if !active {
				_ = httputil.WriteError(w, apperrors.Conflict("You need an active subscription to perform this action"))
				return
			}

			next(w, r, ps)
		}
	}
}
