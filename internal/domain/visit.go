package domain

import (
	"context"
	"time"
)

// VisitLogEntry 一次页面访问的流水
type VisitLogEntry struct {
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	IP        string    `json:"ip"`
	Ref       string    `json:"ref"`
	Client    string    `json:"client"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
}

type VisitRepository interface {
	Log(ctx context.Context, e *VisitLogEntry) error
	CountLogs(ctx context.Context) (int64, error)
	ListLogs(ctx context.Context, offset, limit int) ([]VisitLogEntry, error)
}

// 账号计数器事件类型
const (
	CounterSignIn = "signin"
	CounterSignUp = "signup"
)

type CounterRepository interface {
	// LogAccount 记一条账号事件流水并累加当日计数
	LogAccount(ctx context.Context, typ string) error
}
