package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/songru/blititor/internal/core/auth"
	"github.com/songru/blititor/internal/core/session"
	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/service"
	resp "github.com/songru/blititor/internal/transport/http/response"
)

const (
	keySessionUser = "sessionUser"

	// RememberCookie 一次性还原令牌的 cookie 名
	RememberCookie = "remember_me"
)

// SetRememberCookie remember_me：64 位随机令牌，httpOnly、根路径、7 天
func SetRememberCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RememberCookie, token, int(service.RememberMeTTL/time.Second), "/", "", secure, true)
}

func ClearRememberCookie(c *gin.Context, secure bool) {
	c.SetCookie(RememberCookie, "", -1, "/", "", secure, true)
}

// CurrentUser 取会话恢复出来的用户
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(keySessionUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

// RestoreUser 每个请求先试会话，再试 remember_me 令牌。
// 令牌消费即作废，成功后开新会话并轮换出一个新令牌
func RestoreUser(l *zap.Logger, sessions *session.Manager, accounts *service.AccountService, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if uuid, err := sessions.Current(c); err == nil {
			u, err := accounts.Deserialize(ctx, uuid)
			if err == nil && u != nil {
				c.Set(keySessionUser, u)
			}
			c.Next()
			return
		}

		token, err := c.Cookie(RememberCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		u, err := accounts.ConsumeRememberMeToken(ctx, token)
		if err != nil {
			if !errors.Is(err, service.ErrUnknownUser) {
				l.Warn("remember-me restore", zap.Error(err))
			}
			ClearRememberCookie(c, secure)
			c.Next()
			return
		}
		if _, err := sessions.Start(c, accounts.Serialize(u)); err != nil {
			l.Error("session start", zap.Error(err))
			c.Next()
			return
		}
		if next, err := accounts.IssueToken(ctx, u); err == nil {
			SetRememberCookie(c, next, secure)
		}
		c.Set(keySessionUser, u)
		c.Next()
	}
}

// RequireUser 没有会话用户就 401
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "sign in required"))
		}
	}
}

// RequireLevel 管理端守卫：会话用户等级够，或带合法的 Bearer 令牌
func RequireLevel(jwter *auth.JWTer, minLevel int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok {
			if u.Level >= minLevel {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		const bearer = "Bearer "
		ah := c.GetHeader("Authorization")
		if len(ah) > len(bearer) && ah[:len(bearer)] == bearer {
			claims, err := jwter.Parse(ah[len(bearer):])
			if err == nil && claims.Level >= minLevel {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "sign in required"))
	}
}
