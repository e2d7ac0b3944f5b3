package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/resolver"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/logger"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/session"

	"github.com/gin-gonic/gin"
)

// ErrorLoginRequired is the single failure body every rejected request
// receives, regardless of why resolution failed.
const ErrorLoginRequired = "LOGIN_REQUIRED"

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the authenticated user from the request
// context. Present only after the auth middleware accepted the request.
func UserFromContext(ctx context.Context) (*auth.User, bool) {
	u, ok := ctx.Value(userKey).(*auth.User)
	return u, ok
}

// Options tunes the middleware; zero values get safe defaults.
type Options struct {
	LogoutPath string        // route with logout semantics
	SessionTTL time.Duration // absolute lifetime of issued sessions
	Cookie     session.CookieOptions
}

func (o Options) normalize() Options {
	if o.LogoutPath == "" {
		o.LogoutPath = "/auth/logout"
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 24 * time.Hour
	}
	if o.Cookie.SameSite == 0 {
		o.Cookie = session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		}
	}
	return o
}

// AuthMiddleware authenticates requests with a Facebook access token
// taken from the request body or a previously issued session.
type AuthMiddleware struct {
	resolver resolver.Resolver
	sessions session.Store
	opts     Options
}

func NewAuthMiddleware(
	r resolver.Resolver,
	sessions session.Store,
	opts Options,
) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: r,
		sessions: sessions,
		opts:     opts.normalize(),
	}
}

// tokenBody is the request-body shape used for the initial login.
type tokenBody struct {
	Token string `json:"token"`
}

// Handle returns the gin middleware. Per request:
//
//	extract token (body first, then session)
//	logout route  -> evict + destroy session, continue downstream
//	token present -> resolve; attach identity and persist token, or reject
//	no token      -> reject
//
// Every rejection clears session state and answers 401 LOGIN_REQUIRED.
func (a *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, sess := a.extractToken(c)

		if c.Request.URL.Path == a.opts.LogoutPath {
			a.logout(c, token, sess)
			c.Next()
			return
		}

		if token == "" {
			a.reject(c, sess)
			return
		}

		user, err := a.resolver.Resolve(c.Request.Context(), token)
		if err != nil || user == nil {
			a.reject(c, sess)
			return
		}

		ctx := context.WithValue(c.Request.Context(), userKey, user)
		c.Request = c.Request.WithContext(ctx)

		a.persistToken(c, token, sess)

		c.Next()
	}
}

// extractToken prefers a token supplied in the request body (initial
// login) and falls back to the token held by the session. The body is
// restored so downstream handlers can bind it again.
func (a *AuthMiddleware) extractToken(c *gin.Context) (string, *session.Session) {
	sess := a.loadSession(c)

	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		raw, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))

			var body tokenBody
			if json.Unmarshal(raw, &body) == nil && body.Token != "" {
				return body.Token, sess
			}
		}
	}

	if sess != nil {
		return sess.Token, sess
	}

	return "", nil
}

// loadSession resolves the session referenced by the request cookie,
// if any. A broken session store is treated as "no session".
func (a *AuthMiddleware) loadSession(c *gin.Context) *session.Session {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := a.sessions.Get(c.Request.Context(), cookie.Value)
	if err != nil {
		logger.Error("session lookup failed", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	return sess
}

// logout evicts the memoized verification for the extracted token and
// destroys the session. Logout never fails; destruction errors are
// logged and swallowed.
func (a *AuthMiddleware) logout(c *gin.Context, token string, sess *session.Session) {
	if token != "" {
		a.resolver.Evict(token)
	}

	if sess != nil {
		if err := a.sessions.Delete(c.Request.Context(), sess.SessionID); err != nil {
			logger.Warn("session delete failed on logout", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, a.opts.Cookie)
}

// reject clears any session-held identity state and short-circuits the
// request with the structured failure response.
func (a *AuthMiddleware) reject(c *gin.Context, sess *session.Session) {
	if sess != nil {
		if err := a.sessions.Delete(c.Request.Context(), sess.SessionID); err != nil {
			logger.Warn("session delete failed on reject", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, a.opts.Cookie)

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": ErrorLoginRequired,
	})
}

// persistToken stores the verified token in the session for future
// requests. Best-effort: a failure here is logged but never aborts an
// authenticated request.
func (a *AuthMiddleware) persistToken(c *gin.Context, token string, sess *session.Session) {
	ctx := c.Request.Context()

	if sess != nil {
		if sess.Token == token {
			return
		}
		sess.Token = token
		if err := a.sessions.Update(ctx, *sess); err != nil {
			logger.Warn("session token update failed", map[string]any{
				"error": err.Error(),
			})
		}
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		logger.Warn("session id generation failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	now := time.Now()
	expiresAt := now.Add(a.opts.SessionTTL)

	err = a.sessions.Create(ctx, session.Session{
		SessionID: sessionID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		logger.Warn("session create failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, a.opts.Cookie)
}
