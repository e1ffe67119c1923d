package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"unispattes/pkg/jwt"
)

const flashCookieName = "unispattes_flash"

// Options configure the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager ties the server-side store to a signed cookie. The cookie holds a
// JWT whose jti is the session id; the store makes logout effective.
type Manager struct {
	store  Store
	tokens *jwt.Manager
	opts   Options
}

func NewManager(store Store, tokens *jwt.Manager, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "unispattes_session"
	}
	return &Manager{store: store, tokens: tokens, opts: opts}
}

// Start opens a fresh session for accountID, replacing any current one.
func (m *Manager) Start(c *gin.Context, accountID int64) error {
	m.Destroy(c)

	id, err := m.store.Create(c.Request.Context(), Data{AccountID: accountID}, m.opts.TTL)
	if err != nil {
		return err
	}

	token, err := m.tokens.GenerateSessionToken(id, accountID, m.opts.TTL)
	if err != nil {
		_ = m.store.Delete(c.Request.Context(), id)
		return fmt.Errorf("sign session token: %w", err)
	}

	m.setCookie(c, m.opts.CookieName, token, int(m.opts.TTL.Seconds()))
	return nil
}

// Load returns the session behind the request cookie, or ErrNotFound.
func (m *Manager) Load(c *gin.Context) (*Data, error) {
	token, err := c.Cookie(m.opts.CookieName)
	if err != nil || token == "" {
		return nil, ErrNotFound
	}

	claims, err := m.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, ErrNotFound
	}

	data, err := m.store.Get(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if data.AccountID != claims.AccountID {
		return nil, ErrNotFound
	}
	return data, nil
}

// Destroy revokes the current session, if any, and clears the cookie.
func (m *Manager) Destroy(c *gin.Context) {
	token, err := c.Cookie(m.opts.CookieName)
	if err != nil || token == "" {
		return
	}
	if claims, err := m.tokens.ValidateSessionToken(token); err == nil {
		_ = m.store.Delete(c.Request.Context(), claims.ID)
	}
	m.setCookie(c, m.opts.CookieName, "", -1)
}

// SetFlash stores a one-shot message code for the next page.
func (m *Manager) SetFlash(c *gin.Context, code string) {
	m.setCookie(c, flashCookieName, code, 60)
}

// PopFlash returns the pending flash code and clears it.
func (m *Manager) PopFlash(c *gin.Context) string {
	code, err := c.Cookie(flashCookieName)
	if err != nil || code == "" {
		return ""
	}
	m.setCookie(c, flashCookieName, "", -1)
	return code
}

func (m *Manager) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", m.opts.Secure, true)
}

// IsNotFound reports a missing, expired or forged session.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
