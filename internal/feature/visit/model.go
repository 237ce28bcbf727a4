package visit

import "time"

// VisitCounter 按日聚合的访问量
type VisitCounter struct {
	ID    uint64    `gorm:"primaryKey;autoIncrement"`
	Date  time.Time `gorm:"type:date;uniqueIndex;not null"`
	Count int64     `gorm:"not null;default:0"`
}

// VisitCounterLog 访问流水，管理端按页翻阅
type VisitCounterLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Path      string    `gorm:"size:255;not null"`
	Method    string    `gorm:"size:8;not null"`
	IP        string    `gorm:"column:ip;size:45"`
	Ref       string    `gorm:"size:255"`
	Client    string    `gorm:"size:255"`
	Device    string    `gorm:"size:32"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
