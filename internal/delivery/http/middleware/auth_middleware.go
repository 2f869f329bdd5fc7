package middleware

import (
	"context"
	"net/http"

	"hospital-management/config"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"

	"gorm.io/gorm"
)

type contextKey string

const ClaimsKey contextKey = "session_claims"

// AuthMiddleware resolves the session cookie into claims and owns the cookie
// itself, so login and logout set and clear it the same way.
type AuthMiddleware struct {
	db             *gorm.DB
	sessionService service.SessionService
	userRepo       repository.UserRepository
	config         config.SessionConfig
}

func NewAuthMiddleware(db *gorm.DB, sessionService service.SessionService, userRepo repository.UserRepository, cfg config.SessionConfig) *AuthMiddleware {
	return &AuthMiddleware{
		db:             db,
		sessionService: sessionService,
		userRepo:       userRepo,
		config:         cfg,
	}
}

// LoadSession attaches the claims of a live session to the request context.
// The account is re-read on every request: a deactivated user loses the
// session and IsStaff reflects the current row. Requests without a live
// session pass through anonymously.
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.config.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.sessionService.Validate(r.Context(), cookie.Value)
		if err != nil {
			// Stale or revoked, drop it
			m.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), m.db, claims.UserID)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if user == nil || !user.IsActive {
			m.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		claims.IsStaff = user.IsStaff
		claims.RoleID = user.RoleID

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession redirects anonymous callers to loginPath.
func (m *AuthMiddleware) RequireSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetClaimsFromContext(r.Context()); !ok {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.config.CookieSecure,
		MaxAge:   int(m.config.Expiry.Seconds()),
	})
}

func (m *AuthMiddleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.config.CookieSecure,
		MaxAge:   -1,
	})
}

// GetClaimsFromContext extracts the session claims from context
func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
