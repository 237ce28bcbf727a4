package account

import (
	"time"
)

// 表名由 gorm 命名策略统一加前缀（默认 b_），这里不写 TableName

// Auth 凭据行，user_id 即登录邮箱
type Auth struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"column:user_id;size:191;uniqueIndex;not null"`
	UserPassword string `gorm:"column:user_password;size:100;not null"`
}

// User 资料行，auth_id 与 Auth 一比一
type User struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement"`
	UUID         string     `gorm:"column:uuid;size:36;uniqueIndex;not null"`
	AuthID       uint64     `gorm:"column:auth_id;uniqueIndex;not null"`
	Nickname     string     `gorm:"size:64;not null"`
	Photo        string     `gorm:"size:255"`
	Level        int        `gorm:"not null;default:1"`
	Grant        string     `gorm:"column:grant;size:64"`
	LoginCounter int        `gorm:"not null;default:0"`
	LastLoggedAt *time.Time `gorm:"column:last_logged_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`

	Auth Auth `gorm:"foreignKey:AuthID;references:ID"`
}

// AccountCounter 按日聚合的账号事件计数
type AccountCounter struct {
	ID    uint64    `gorm:"primaryKey;autoIncrement"`
	Date  time.Time `gorm:"type:date;uniqueIndex:idx_account_counter_date_type;not null"`
	Type  string    `gorm:"size:16;uniqueIndex:idx_account_counter_date_type;not null"`
	Count int64     `gorm:"not null;default:0"`
}

// AccountCounterLog 账号事件流水（signin / signup）
type AccountCounterLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Type      string    `gorm:"size:16;index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
