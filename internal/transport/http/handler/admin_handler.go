package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/songru/blititor/internal/service"
	resp "github.com/songru/blititor/internal/transport/http/response"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// 页码解析失败按 0 处理，负数交给分页计算收紧
func pageParam(c *gin.Context) int {
	p, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 0
	}
	return p
}

// Accounts GET ?page=N，账号列表
func (h *AdminHandler) Accounts(c *gin.Context) {
	res, err := h.admin.ReadAccountByPage(c.Request.Context(), pageParam(c))
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(res))
}

// VisitLogs GET ?page=N，访问流水
func (h *AdminHandler) VisitLogs(c *gin.Context) {
	res, err := h.admin.ReadVisitLogByPage(c.Request.Context(), pageParam(c))
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(res))
}
