package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/songru/blititor/internal/core/cache"
	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/repo"
	"github.com/songru/blititor/pkg/utils"
)

var (
	ErrUnknownUser     = errors.New("account: unknown user")
	ErrInvalidPassword = errors.New("account: invalid password")
)

const (
	// remember-me cookie 的有效期，7 天
	RememberMeTTL = 7 * 24 * time.Hour

	tokenLength     = 64
	profileCacheTTL = 5 * time.Minute
)

type AccountService struct {
	accounts domain.AccountRepository
	counters domain.CounterRepository
	tokens   domain.TokenStore
	cache    *cache.Cache // 可为 nil，nil 时直连数据库
	log      *zap.Logger
}

func NewAccountService(accounts domain.AccountRepository, counters domain.CounterRepository, tokens domain.TokenStore, c *cache.Cache, log *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, counters: counters, tokens: tokens, cache: c, log: log}
}

func (s *AccountService) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *AccountService) FindByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	return s.accounts.FindByUUID(ctx, uuid)
}

func (s *AccountService) AuthByUserID(ctx context.Context, userID string) (*domain.AuthRecord, error) {
	return s.accounts.AuthByUserID(ctx, userID)
}

// Authenticate 用存量哈希校验口令。查无账号与口令不符分开报，
// 两种都是可预期的登录失败，不算系统错误
func (s *AccountService) Authenticate(ctx context.Context, userID, password string) (*domain.User, error) {
	auth, err := s.accounts.AuthByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		return nil, ErrUnknownUser
	}
	if !utils.CheckPassword(password, auth.UserPassword) {
		s.log.Debug("password mismatch", zap.String("user_id", userID))
		return nil, ErrInvalidPassword
	}
	u, err := s.accounts.FindByAuthID(ctx, auth.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownUser
	}
	return u, nil
}

// LoginSuccess 登录成功后的副作用：计数、刷新登录时间，
// 勾了 remember 再发一个一次性令牌给 cookie
func (s *AccountService) LoginSuccess(ctx context.Context, u *domain.User, remember bool) (string, error) {
	if err := s.accounts.TouchLogin(ctx, u.UUID); err != nil {
		return "", err
	}
	if err := s.counters.LogAccount(ctx, domain.CounterSignIn); err != nil {
		s.log.Warn("account counter", zap.Error(err))
	}
	s.invalidateProfile(ctx, u.UUID)
	if !remember {
		return "", nil
	}
	return s.IssueToken(ctx, u)
}

// IssueToken 发 64 位随机 remember-me 令牌
func (s *AccountService) IssueToken(ctx context.Context, u *domain.User) (string, error) {
	token := utils.RandomString(tokenLength)
	if err := s.tokens.Save(ctx, token, u.ID, RememberMeTTL); err != nil {
		return "", err
	}
	s.log.Info("issue remember-me token", zap.String("uuid", u.UUID))
	return token, nil
}

// ConsumeRememberMeToken 读即废。令牌无效或用户已注销都算 ErrUnknownUser
func (s *AccountService) ConsumeRememberMeToken(ctx context.Context, token string) (*domain.User, error) {
	uid, err := s.tokens.Consume(ctx, token)
	if errors.Is(err, repo.ErrTokenNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	u, err := s.accounts.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownUser
	}
	return u, nil
}

// Serialize 会话里只存 uuid
func (s *AccountService) Serialize(u *domain.User) string { return u.UUID }

// Deserialize uuid -> 完整资料，热路径走缓存
func (s *AccountService) Deserialize(ctx context.Context, uuid string) (*domain.User, error) {
	if s.cache == nil {
		return s.accounts.FindByUUID(ctx, uuid)
	}
	return cache.GetOrLoadJSON[domain.User](s.cache, ctx, profileCacheKey(uuid), profileCacheTTL,
		func(ctx context.Context) (*domain.User, error) {
			return s.accounts.FindByUUID(ctx, uuid)
		})
}

// Register 校验 → 哈希 → 一个事务里落 auth + user → 计数。
// 数据库错误原样上抛，不重试
func (s *AccountService) Register(ctx context.Context, acc *domain.NewAccount, passwordCheck string) (*domain.User, error) {
	if errs := ValidateNewAccount(acc, passwordCheck); len(errs) > 0 {
		return nil, errs
	}
	acc.Email = strings.TrimSpace(acc.Email)
	acc.Nickname = html.EscapeString(strings.TrimSpace(acc.Nickname))

	u, err := s.accounts.Create(ctx, acc, utils.HashPassword(acc.Password), utils.NewUUID())
	if err != nil {
		return nil, err
	}
	if err := s.counters.LogAccount(ctx, domain.CounterSignUp); err != nil {
		s.log.Warn("account counter", zap.Error(err))
	}
	s.log.Info("account registered", zap.String("uuid", u.UUID), zap.String("nickname", u.Nickname))
	return u, nil
}

// UpdateInfo 改昵称/头像，改完踢掉资料缓存
func (s *AccountService) UpdateInfo(ctx context.Context, uuid, nickname, photo string) error {
	acc := domain.NewAccount{Nickname: nickname}
	for _, e := range ValidateNewAccount(&acc, "") {
		if e.Field == "nickname" {
			return ValidationErrors{e}
		}
	}
	nickname = html.EscapeString(strings.TrimSpace(nickname))
	if err := s.accounts.UpdateInfo(ctx, uuid, nickname, photo); err != nil {
		return err
	}
	s.invalidateProfile(ctx, uuid)
	return nil
}

func (s *AccountService) invalidateProfile(ctx context.Context, uuid string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, profileCacheKey(uuid))
	}
}

func profileCacheKey(uuid string) string { return "acct:" + uuid }
