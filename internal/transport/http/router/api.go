package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/songru/blititor/internal/core/session"
	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/service"
	"github.com/songru/blititor/internal/transport/http/handler"
	mdw "github.com/songru/blititor/internal/transport/http/middleware"
)

type APIDeps struct {
	Log      *zap.Logger
	Routes   RouteTable
	Accounts *service.AccountService
	Sessions *session.Manager
	Visits   domain.VisitRepository
	Account  *handler.AccountHandler
	Secure   bool
}

// NewAPIEngine 用户端：注册 / 登录 / 资料
func NewAPIEngine(d APIDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.VisitLog(d.Log, d.Visits),
		mdw.RestoreUser(d.Log, d.Sessions, d.Accounts, d.Secure),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	acct := r.Group(d.Routes.Account.Root)
	{
		acct.POST(d.Routes.Account.SignIn, d.Account.SignIn)
		acct.POST(d.Routes.Account.SignUp, d.Account.Register)
		acct.POST(d.Routes.Account.SignOut, d.Account.SignOut)
		acct.GET(d.Routes.Account.Info, mdw.RequireUser(), d.Account.Info)
		acct.POST(d.Routes.Account.UpdateInfo, mdw.RequireUser(), d.Account.UpdateInfo)
	}

	return r
}
