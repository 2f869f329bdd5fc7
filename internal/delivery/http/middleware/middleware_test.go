package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/testutil"
	"hospital-management/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var sessionConfig = config.SessionConfig{
	Secret:     "test-secret",
	Expiry:     time.Hour,
	CookieName: "hms_session",
}

type authFixture struct {
	middleware *AuthMiddleware
	sessions   service.SessionService
	db         *gorm.DB
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	db := testutil.NewDB(t)
	sessions := service.NewSessionService(log, jwt.NewJWTService(sessionConfig), client)
	return &authFixture{
		middleware: NewAuthMiddleware(db, sessions, repository.NewUserRepository(), sessionConfig),
		sessions:   sessions,
		db:         db,
	}
}

// serve runs LoadSession with token as the cookie and returns the claims
// seen by the next handler.
func (f *authFixture) serve(t *testing.T, token string) (*jwt.Claims, *httptest.ResponseRecorder) {
	t.Helper()
	var seen *jwt.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionConfig.CookieName, Value: token})
	rec := httptest.NewRecorder()
	f.middleware.LoadSession(next).ServeHTTP(rec, req)
	return seen, rec
}

func (f *authFixture) login(t *testing.T, user *entity.User) string {
	t.Helper()
	token, err := f.sessions.Create(context.Background(), user)
	require.NoError(t, err)
	return token
}

func TestLoadSession_AttachesClaims(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "ana", "password123", entity.RoleIDPatient, false)

	seen, rec := f.serve(t, f.login(t, user))

	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.UserID)
	assert.False(t, seen.IsStaff)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestLoadSession_ClearsStaleCookie(t *testing.T) {
	f := newAuthFixture(t)

	seen, rec := f.serve(t, "garbage")

	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestLoadSession_RefreshesStaffFlag(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "boss", "admin123", entity.RoleIDAdmin, true)
	token := f.login(t, user)

	seen, _ := f.serve(t, token)
	require.NotNil(t, seen)
	assert.True(t, seen.IsStaff)

	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", user.ID).Update("is_staff", false).Error)

	seen, _ = f.serve(t, token)
	require.NotNil(t, seen)
	assert.False(t, seen.IsStaff)
}

func TestLoadSession_DropsInactiveOrMissingUser(t *testing.T) {
	f := newAuthFixture(t)
	user := testutil.CreateUser(t, f.db, "ana", "password123", entity.RoleIDPatient, false)
	token := f.login(t, user)

	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	seen, rec := f.serve(t, token)
	assert.Nil(t, seen)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	ghost := f.login(t, &entity.User{ID: 999, Username: "ghost", RoleID: entity.RoleIDPatient})
	seen, _ = f.serve(t, ghost)
	assert.Nil(t, seen)
}

func TestRequireSession_RedirectsAnonymous(t *testing.T) {
	m := newAuthFixture(t).middleware
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	})

	rec := httptest.NewRecorder()
	m.RequireSession("/doctor-login/")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctor-dashboard/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/doctor-login/", rec.Header().Get("Location"))
}

func TestRequireStaff(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		claims *jwt.Claims
		status int
	}{
		{"anonymous", nil, http.StatusFound},
		{"patient", &jwt.Claims{UserID: 1, RoleID: entity.RoleIDPatient}, http.StatusFound},
		{"staff", &jwt.Claims{UserID: 2, RoleID: entity.RoleIDAdmin, IsStaff: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/doctors/", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, tt.claims))
			}
			rec := httptest.NewRecorder()
			RequireStaff(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	m := NewCORSMiddleware("http://localhost:3000/, http://localhost:4200")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
