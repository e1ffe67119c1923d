package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unispattes/internal/shared/session"
	"unispattes/pkg/cache"
	"unispattes/pkg/jwt"
)

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/compte/connexion/?next=/animal/7/", LoginURL("/animal/7/"))
	assert.Equal(t, "/compte/connexion/?next=/nos-animaux/%3Fespece%3DCHAT", LoginURL("/nos-animaux/?espece=CHAT"))
	assert.Equal(t, "/compte/connexion/", LoginURL("//evil.example"))
	assert.Equal(t, "/compte/connexion/", LoginURL("https://evil.example/"))
}

func TestIsSafeNext(t *testing.T) {
	assert.True(t, IsSafeNext("/compte/profil/"))
	assert.False(t, IsSafeNext(""))
	assert.False(t, IsSafeNext("animal/7/"))
	assert.False(t, IsSafeNext("//evil.example"))
	assert.False(t, IsSafeNext(`/\evil.example`))
	assert.False(t, IsSafeNext("http://evil.example"))
}

type testEnv struct {
	router   *gin.Engine
	sessions *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(
		session.NewCacheStore(cache.NewMemoryCache()),
		jwt.NewManager("test-secret", "unispattes"),
		session.Options{TTL: time.Hour},
	)
	loader := func(_ context.Context, id int64) (*session.Principal, error) {
		switch id {
		case 1:
			return &session.Principal{AccountID: 1, FirstName: "Alice"}, nil
		case 2:
			return &session.Principal{AccountID: 2, FirstName: "Staff", IsStaff: true}, nil
		}
		return nil, errors.New("account not found")
	}

	r := gin.New()
	r.Use(RequestID(), Recovery(nil), LoadSession(sessions, loader))
	r.GET("/login-as/:id", func(c *gin.Context) {
		id := int64(1)
		if c.Param("id") == "2" {
			id = 2
		} else if c.Param("id") == "3" {
			id = 3
		}
		require.NoError(t, sessions.Start(c, id))
		c.Status(http.StatusOK)
	})
	r.GET("/compte/profil/", RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentPrincipal(c).FirstName)
	})
	r.GET("/admin/ping", RequireStaff(), func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	return &testEnv{router: r, sessions: sessions}
}

func (e *testEnv) loginCookie(t *testing.T, id string) *http.Cookie {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login-as/"+id, nil))
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "unispattes_session" && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRequireLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/compte/profil/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/compte/connexion/?next=/compte/profil/", w.Header().Get("Location"))

	w = env.get("/compte/profil/", env.loginCookie(t, "1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice", w.Body.String())
}

func TestLoadSession_UnknownAccountIsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/compte/profil/", env.loginCookie(t, "3"))
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRequireStaff(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.get("/admin/ping", nil).Code)
	assert.Equal(t, http.StatusForbidden, env.get("/admin/ping", env.loginCookie(t, "1")).Code)
	assert.Equal(t, http.StatusOK, env.get("/admin/ping", env.loginCookie(t, "2")).Code)
}

func TestRequestIDAndRecovery(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(RequestIDHeader, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", w.Header().Get(RequestIDHeader))
}
