package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/feature/account"
)

type AccountRepo struct{ db *gorm.DB }

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func toDomainUser(m *account.User) *domain.User {
	return &domain.User{
		ID:       m.ID,
		UUID:     m.UUID,
		Nickname: m.Nickname,
		Photo:    m.Photo,
		Level:    m.Level,
		Grant:    m.Grant,
	}
}

func (r *AccountRepo) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m account.User
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainUser(&m), nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *AccountRepo) FindByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	return r.findOne(ctx, "uuid = ?", uuid)
}

func (r *AccountRepo) FindByAuthID(ctx context.Context, authID uint64) (*domain.User, error) {
	return r.findOne(ctx, "auth_id = ?", authID)
}

func (r *AccountRepo) AuthByUserID(ctx context.Context, userID string) (*domain.AuthRecord, error) {
	var m account.Auth
	err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.AuthRecord{ID: m.ID, UserID: m.UserID, UserPassword: m.UserPassword}, nil
}

// Create 同一个事务里先插 auth，再插引用其生成 id 的 user
func (r *AccountRepo) Create(ctx context.Context, acc *domain.NewAccount, passwordHash, uuid string) (*domain.User, error) {
	now := time.Now()
	u := account.User{
		UUID:         uuid,
		Nickname:     acc.Nickname,
		Level:        1,
		Grant:        "",
		LoginCounter: 1,
		LastLoggedAt: &now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a := account.Auth{UserID: acc.Email, UserPassword: passwordHash}
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		u.AuthID = a.ID
		// 关联字段只用于查询联表，落库时跳过
		return tx.Omit(clause.Associations).Create(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainUser(&u), nil
}

func (r *AccountRepo) TouchLogin(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Model(&account.User{}).
		Where("uuid = ?", uuid).
		Updates(map[string]any{
			"login_counter":  gorm.Expr("login_counter + 1"),
			"last_logged_at": time.Now(),
		}).Error
}

func (r *AccountRepo) UpdateInfo(ctx context.Context, uuid, nickname, photo string) error {
	return r.db.WithContext(ctx).Model(&account.User{}).
		Where("uuid = ?", uuid).
		Updates(map[string]any{"nickname": nickname, "photo": photo}).Error
}

func (r *AccountRepo) CountAccounts(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&account.User{}).Count(&total).Error
	return total, err
}

// ListAccounts auth ⋈ user，按 id 稳定排序翻页
func (r *AccountRepo) ListAccounts(ctx context.Context, offset, limit int) ([]domain.AccountSummary, error) {
	var rows []account.User
	err := r.db.WithContext(ctx).Model(&account.User{}).
		Joins("Auth").
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.AccountSummary, 0, len(rows))
	for _, u := range rows {
		out = append(out, domain.AccountSummary{
			UserID:       u.Auth.UserID,
			UUID:         u.UUID,
			Nickname:     u.Nickname,
			Level:        u.Level,
			Grant:        u.Grant,
			LoginCounter: u.LoginCounter,
			LastLoggedAt: u.LastLoggedAt,
			CreatedAt:    u.CreatedAt,
			UpdatedAt:    u.UpdatedAt,
		})
	}
	return out, nil
}
