package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/models"
	"github.com/chronicleberg/chronicle-be/internal/store"
)

type contextKey string

const principalKey = contextKey("principal")

// Middleware resolves inbound bearer tokens to principals.
type Middleware struct {
	tokens *Service
	users  store.UserStore
}

// NewMiddleware creates the authenticator middleware.
func NewMiddleware(tokens *Service, users store.UserStore) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Authenticate extracts the bearer token from the Authorization header,
// verifies it, and loads the principal into the request context. A subject
// that no longer exists is an explicit failure, not a silent pass-through.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			apierror.Write(w, apierror.Auth("User not authenticated"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			apierror.Write(w, apierror.Auth("User not authenticated"))
			return
		}

		subjectID, err := m.tokens.Verify(parts[1])
		if err != nil {
			apierror.Write(w, apierror.Auth("User not authenticated"))
			return
		}

		principal, err := m.users.FindByID(r.Context(), subjectID)
		if err != nil {
			if err == store.ErrNotFound {
				apierror.Write(w, apierror.Auth("Principal not found"))
				return
			}
			apierror.Write(w, apierror.Store(err))
			return
		}
		principal.PasswordHash = ""

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route on the principal's role. It must run after
// Authenticate.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				apierror.Write(w, apierror.Auth("User not authenticated"))
				return
			}
			if !allowed[principal.Role] {
				apierror.Write(w, apierror.Auth("User with this role("+principal.Role+") not allowed to access this resource"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFrom returns the authenticated principal stored in ctx.
func PrincipalFrom(ctx context.Context) (models.User, bool) {
	principal, ok := ctx.Value(principalKey).(models.User)
	return principal, ok
}
