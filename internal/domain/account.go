package domain

import (
	"context"
	"time"
)

// User 公开资料。uuid 是对外身份，自增 id 只用于内部关联
type User struct {
	ID       uint64 `json:"-"`
	UUID     string `json:"uuid"`
	Nickname string `json:"nickname"`
	Photo    string `json:"photo"`
	Level    int    `json:"level"`
	Grant    string `json:"grant"`
}

// AuthRecord 凭据行，user_id 即登录邮箱，和 User 一比一
type AuthRecord struct {
	ID           uint64
	UserID       string
	UserPassword string
}

// AccountSummary 管理端账号列表一行（auth ⋈ user）
type AccountSummary struct {
	UserID       string     `json:"user_id"`
	UUID         string     `json:"uuid"`
	Nickname     string     `json:"nickname"`
	Level        int        `json:"level"`
	Grant        string     `json:"grant"`
	LoginCounter int        `json:"login_counter"`
	LastLoggedAt *time.Time `json:"last_logged_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewAccount 注册入参，校验后入库
type NewAccount struct {
	Email    string
	Password string
	Nickname string
}

type AccountRepository interface {
	FindByID(ctx context.Context, id uint64) (*User, error)
	FindByUUID(ctx context.Context, uuid string) (*User, error)
	FindByAuthID(ctx context.Context, authID uint64) (*User, error)
	AuthByUserID(ctx context.Context, userID string) (*AuthRecord, error)
	// Create 在一个事务里先插 auth 再插引用其 id 的 user
	Create(ctx context.Context, acc *NewAccount, passwordHash, uuid string) (*User, error)
	// TouchLogin 登录成功后 login_counter+1、刷新 last_logged_at
	TouchLogin(ctx context.Context, uuid string) error
	UpdateInfo(ctx context.Context, uuid, nickname, photo string) error

	CountAccounts(ctx context.Context) (int64, error)
	ListAccounts(ctx context.Context, offset, limit int) ([]AccountSummary, error)
}

// TokenStore remember-me 令牌的 KV 存储。Consume 读即删，令牌一次有效
type TokenStore interface {
	Save(ctx context.Context, token string, userID uint64, ttl time.Duration) error
	Consume(ctx context.Context, token string) (uint64, error)
}
