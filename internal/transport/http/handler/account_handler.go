package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/songru/blititor/internal/core/auth"
	"github.com/songru/blititor/internal/core/session"
	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/service"
	mdw "github.com/songru/blititor/internal/transport/http/middleware"
	resp "github.com/songru/blititor/internal/transport/http/response"
)

// 管理端入口要求的最低账号等级
const AdminLevel = 9

type AccountHandler struct {
	accounts *service.AccountService
	sessions *session.Manager
	jwter    *auth.JWTer
	secure   bool
	log      *zap.Logger
}

func NewAccountHandler(accounts *service.AccountService, sessions *session.Manager, jwter *auth.JWTer, secure bool, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions, jwter: jwter, secure: secure, log: log}
}

type signInReq struct {
	Email      string `form:"email" json:"email" binding:"required"`
	Password   string `form:"password" json:"password" binding:"required"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

// SignIn 口令登录。未知账号与口令错误分开报，其余都算 500
func (h *AccountHandler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	ctx := c.Request.Context()
	u, err := h.accounts.Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unknown user "+req.Email))
		return
	case errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid password"))
		return
	case err != nil:
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
		return
	}

	if _, err := h.sessions.Start(c, h.accounts.Serialize(u)); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "session start failed"))
		return
	}
	token, err := h.accounts.LoginSuccess(ctx, u, req.RememberMe)
	if err != nil {
		h.log.Warn("login side effects", zap.Error(err))
	}
	if token != "" {
		mdw.SetRememberCookie(c, token, h.secure)
	}

	data := gin.H{"user": u}
	if u.Level >= AdminLevel {
		// 管理端程序化访问用的 Bearer 令牌
		if t, err := h.jwter.Issue(u.UUID, u.Level); err == nil {
			data["token"] = t
		}
	}
	c.JSON(http.StatusOK, resp.OK(data))
}

// SignOut 销毁会话并清 remember_me
func (h *AccountHandler) SignOut(c *gin.Context) {
	h.sessions.Destroy(c)
	mdw.ClearRememberCookie(c, h.secure)
	c.JSON(http.StatusOK, resp.OK(nil))
}

type registerReq struct {
	Nickname      string `form:"nickname" json:"nickname"`
	Email         string `form:"email" json:"email"`
	Password      string `form:"password" json:"password"`
	PasswordCheck string `form:"password_check" json:"password_check"`
}

// Register 注册成功即登录
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	acc := domain.NewAccount{Email: req.Email, Password: req.Password, Nickname: req.Nickname}
	u, err := h.accounts.Register(c.Request.Context(), &acc, req.PasswordCheck)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusOK, resp.Fail(resp.CodeBadRequest, "validation failed", gin.H{"errors": verrs}))
			return
		}
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "failed to save account"))
		return
	}

	if _, err := h.sessions.Start(c, h.accounts.Serialize(u)); err != nil {
		// 账号已建好，只有自动登录没成
		c.JSON(http.StatusOK, resp.Fail(resp.CodeServerError, "sign-in after registration failed", gin.H{"user": u}))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}

// Info 当前会话用户的资料
func (h *AccountHandler) Info(c *gin.Context) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "sign in required"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}

type updateInfoReq struct {
	Nickname string `form:"nickname" json:"nickname"`
	Photo    string `form:"photo" json:"photo"`
}

func (h *AccountHandler) UpdateInfo(c *gin.Context) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "sign in required"))
		return
	}
	var req updateInfoReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if err := h.accounts.UpdateInfo(c.Request.Context(), u.UUID, req.Nickname, req.Photo); err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusOK, resp.Fail(resp.CodeBadRequest, "validation failed", gin.H{"errors": verrs}))
			return
		}
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "failed to update account"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(nil))
}
