package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/songru/blititor/internal/feature/account"
)

type CounterRepo struct{ db *gorm.DB }

func NewCounterRepo(db *gorm.DB) *CounterRepo { return &CounterRepo{db: db} }

// LogAccount 记流水并累加当日该类型计数
func (r *CounterRepo) LogAccount(ctx context.Context, typ string) error {
	if err := r.db.WithContext(ctx).Create(&account.AccountCounterLog{Type: typ}).Error; err != nil {
		return err
	}
	today := time.Now().Truncate(24 * time.Hour)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "type"}},
		DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("count + 1")}),
	}).Create(&account.AccountCounter{Date: today, Type: typ, Count: 1}).Error
}
