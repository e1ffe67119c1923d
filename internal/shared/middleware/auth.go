package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"unispattes/internal/shared/session"
)

const principalKey = "principal"

// LoginPath is where anonymous visitors are sent, with the original path in ?next=.
const LoginPath = "/compte/connexion/"

// LoadSession resolves the session cookie into a fresh Principal. Anonymous
// requests, unknown sessions and deactivated accounts continue unauthenticated.
func LoadSession(sessions *session.Manager, load session.PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := sessions.Load(c)
		if err != nil {
			if !session.IsNotFound(err) {
				log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("Failed to load session")
			}
			c.Next()
			return
		}

		principal, err := load(c.Request.Context(), data.AccountID)
		if err != nil {
			log.Warn().Err(err).Int64("account_id", data.AccountID).Msg("Session account no longer usable")
			sessions.Destroy(c)
			c.Next()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated account, or nil.
func CurrentPrincipal(c *gin.Context) *session.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*session.Principal)
	return p
}

// RequireLogin redirects anonymous visitors to the login page with ?next=<path>.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipal(c) != nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// LoginURL builds the login redirect; slashes in next stay readable (?next=/animal/7/).
func LoginURL(next string) string {
	if !IsSafeNext(next) {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// IsSafeNext accepts local absolute paths only.
func IsSafeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") {
		return false
	}
	if strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return false
	}
	u, err := url.Parse(next)
	return err == nil && u.Host == "" && u.Scheme == ""
}
