package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/songru/blititor/pkg/utils"
)

var ErrNotFound = errors.New("session: not found")

// Store 会话后端：sid -> uuid。内存实现用于单进程/测试，redis 用于生产
type Store interface {
	Set(ctx context.Context, sid, uuid string, ttl time.Duration) error
	Get(ctx context.Context, sid string) (string, error)
	Delete(ctx context.Context, sid string) error
}

// Manager 基于 cookie 的会话。cookie 只带不透明 sid，uuid 存在服务端
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, cookieName: cookieName, ttl: ttl, secure: secure}
}

// Start 建立新会话并下发 cookie。每次登录都换新 sid，防会话固定
func (m *Manager) Start(c *gin.Context, uuid string) (string, error) {
	sid := utils.NewID()
	if err := m.store.Set(c.Request.Context(), sid, uuid, m.ttl); err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, sid, int(m.ttl/time.Second), "/", "", m.secure, true)
	return sid, nil
}

// Current 从请求 cookie 解出会话里的 uuid
func (m *Manager) Current(c *gin.Context) (string, error) {
	sid, err := c.Cookie(m.cookieName)
	if err != nil || sid == "" {
		return "", ErrNotFound
	}
	return m.store.Get(c.Request.Context(), sid)
}

// Destroy 删除服务端会话并清掉 cookie
func (m *Manager) Destroy(c *gin.Context) {
	if sid, err := c.Cookie(m.cookieName); err == nil && sid != "" {
		_ = m.store.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
