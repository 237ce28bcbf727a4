package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/songru/blititor/internal/core/auth"
	"github.com/songru/blititor/internal/core/session"
	"github.com/songru/blititor/internal/service"
	"github.com/songru/blititor/internal/transport/http/handler"
	mdw "github.com/songru/blititor/internal/transport/http/middleware"
)

type AdminDeps struct {
	Log      *zap.Logger
	Routes   RouteTable
	Accounts *service.AccountService
	Sessions *session.Manager
	JWTer    *auth.JWTer
	Admin    *handler.AdminHandler
	Secure   bool
}

// NewAdminEngine 管理端：账号列表、访问流水，统一要求管理员等级
func NewAdminEngine(d AdminDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group(d.Routes.Admin.Root)
	admin.Use(
		mdw.RestoreUser(d.Log, d.Sessions, d.Accounts, d.Secure),
		mdw.RequireLevel(d.JWTer, handler.AdminLevel),
	)
	{
		admin.GET(d.Routes.Admin.Accounts, d.Admin.Accounts)
		admin.GET(d.Routes.Admin.VisitLogs, d.Admin.VisitLogs)
	}

	return r
}
