package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/feature/visit"
)

type VisitRepo struct{ db *gorm.DB }

func NewVisitRepo(db *gorm.DB) *VisitRepo { return &VisitRepo{db: db} }

// Log 写一条访问流水并累加当日计数
func (r *VisitRepo) Log(ctx context.Context, e *domain.VisitLogEntry) error {
	row := visit.VisitCounterLog{
		Path:   e.Path,
		Method: e.Method,
		IP:     e.IP,
		Ref:    e.Ref,
		Client: e.Client,
		Device: e.Device,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	today := time.Now().Truncate(24 * time.Hour)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("count + 1")}),
	}).Create(&visit.VisitCounter{Date: today, Count: 1}).Error
}

func (r *VisitRepo) CountLogs(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&visit.VisitCounterLog{}).Count(&total).Error
	return total, err
}

func (r *VisitRepo) ListLogs(ctx context.Context, offset, limit int) ([]domain.VisitLogEntry, error) {
	var rows []visit.VisitCounterLog
	err := r.db.WithContext(ctx).Model(&visit.VisitCounterLog{}).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.VisitLogEntry, 0, len(rows))
	for _, v := range rows {
		out = append(out, domain.VisitLogEntry{
			Path:      v.Path,
			Method:    v.Method,
			IP:        v.IP,
			Ref:       v.Ref,
			Client:    v.Client,
			Device:    v.Device,
			CreatedAt: v.CreatedAt,
		})
	}
	return out, nil
}
