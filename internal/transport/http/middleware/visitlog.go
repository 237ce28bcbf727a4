package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/songru/blititor/internal/domain"
)

// deviceOf 从 UA 粗分设备类型，只为访问统计用
func deviceOf(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		return "mobile"
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return "tablet"
	case strings.Contains(ua, "bot"), strings.Contains(ua, "spider"), strings.Contains(ua, "crawler"):
		return "bot"
	default:
		return "desktop"
	}
}

// VisitLog 每个页面请求记一条流水。写失败只告警，不影响请求
func VisitLog(l *zap.Logger, visits domain.VisitRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			return
		}
		ua := c.Request.UserAgent()
		e := domain.VisitLogEntry{
			Path:   path,
			Method: c.Request.Method,
			IP:     c.ClientIP(),
			Ref:    c.Request.Referer(),
			Client: ua,
			Device: deviceOf(ua),
		}
		if err := visits.Log(c.Request.Context(), &e); err != nil {
			l.Warn("visit log", zap.Error(err))
		}
	}
}
