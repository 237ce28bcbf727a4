package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/repo"
	"github.com/songru/blititor/pkg/utils"
)

type fakeUserRow struct {
	user   domain.User
	authID uint64
}

type fakeAccountRepo struct {
	mu     sync.Mutex
	nextID uint64
	auths  []domain.AuthRecord
	users  []fakeUserRow
}

func newFakeAccountRepo() *fakeAccountRepo { return &fakeAccountRepo{} }

func (r *fakeAccountRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.users {
		if row.user.ID == id {
			u := row.user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByUUID(_ context.Context, uuid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.users {
		if row.user.UUID == uuid {
			u := row.user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByAuthID(_ context.Context, authID uint64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.users {
		if row.authID == authID {
			u := row.user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) AuthByUserID(_ context.Context, userID string) (*domain.AuthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.auths {
		if a.UserID == userID {
			rec := a
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, acc *domain.NewAccount, passwordHash, uuid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	auth := domain.AuthRecord{ID: r.nextID, UserID: acc.Email, UserPassword: passwordHash}
	r.auths = append(r.auths, auth)
	r.nextID++
	u := domain.User{ID: r.nextID, UUID: uuid, Nickname: acc.Nickname, Level: 1}
	r.users = append(r.users, fakeUserRow{user: u, authID: auth.ID})
	return &u, nil
}

func (r *fakeAccountRepo) TouchLogin(_ context.Context, _ string) error { return nil }

func (r *fakeAccountRepo) UpdateInfo(_ context.Context, uuid, nickname, photo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].user.UUID == uuid {
			r.users[i].user.Nickname = nickname
			r.users[i].user.Photo = photo
		}
	}
	return nil
}

func (r *fakeAccountRepo) CountAccounts(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeAccountRepo) ListAccounts(_ context.Context, offset, limit int) ([]domain.AccountSummary, error) {
	return nil, nil
}

type fakeCounterRepo struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeCounterRepo() *fakeCounterRepo { return &fakeCounterRepo{counts: map[string]int{}} }

func (r *fakeCounterRepo) LogAccount(_ context.Context, typ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[typ]++
	return nil
}

func newTestService() (*AccountService, *fakeAccountRepo, *fakeCounterRepo) {
	accounts := newFakeAccountRepo()
	counters := newFakeCounterRepo()
	svc := NewAccountService(accounts, counters, repo.NewMemoryTokenStore(), nil, zap.NewNop())
	return svc, accounts, counters
}

func register(t *testing.T, svc *AccountService) *domain.User {
	t.Helper()
	acc := domain.NewAccount{Email: "hong@example.com", Password: "secret", Nickname: "hong"}
	u, err := svc.Register(context.Background(), &acc, "secret")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestRegisterCreatesAuthAndUser(t *testing.T) {
	svc, accounts, counters := newTestService()
	u := register(t, svc)

	// 恰好一条 auth、一条 user，user 引用 auth 的生成 id
	if len(accounts.auths) != 1 || len(accounts.users) != 1 {
		t.Fatalf("rows: %d auth, %d user", len(accounts.auths), len(accounts.users))
	}
	if accounts.users[0].authID != accounts.auths[0].ID {
		t.Fatal("user does not reference generated auth id")
	}
	if u.UUID == "" {
		t.Fatal("no uuid assigned")
	}
	// 存的是哈希，不是明文
	if accounts.auths[0].UserPassword == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if !utils.CheckPassword("secret", accounts.auths[0].UserPassword) {
		t.Fatal("stored hash does not verify")
	}
	if counters.counts[domain.CounterSignUp] != 1 {
		t.Fatalf("signup counter = %d", counters.counts[domain.CounterSignUp])
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	svc, accounts, _ := newTestService()
	acc := domain.NewAccount{Email: "bad", Password: "abc", Nickname: "x"}
	_, err := svc.Register(context.Background(), &acc, "other")

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 4 {
		t.Fatalf("got %d field errors, want 4: %v", len(verrs), verrs)
	}
	if len(accounts.auths) != 0 || len(accounts.users) != 0 {
		t.Fatal("rows written despite validation failure")
	}
}

func TestRegisterEscapesNickname(t *testing.T) {
	svc, _, _ := newTestService()
	acc := domain.NewAccount{Email: "a@b.co", Password: "pass", Nickname: "<b>bold</b>"}
	u, err := svc.Register(context.Background(), &acc, "pass")
	if err != nil {
		t.Fatal(err)
	}
	if u.Nickname == "<b>bold</b>" {
		t.Fatal("nickname not escaped")
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "hong@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.UUID == "" {
		t.Fatal("no user returned")
	}

	if _, err := svc.Authenticate(ctx, "hong@example.com", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestRememberMeTokenSingleUse(t *testing.T) {
	svc, _, _ := newTestService()
	u := register(t, svc)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64", len(token))
	}

	got, err := svc.ConsumeRememberMeToken(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if got.UUID != u.UUID {
		t.Fatalf("restored %q, want %q", got.UUID, u.UUID)
	}

	// 令牌一次有效
	if _, err := svc.ConsumeRememberMeToken(ctx, token); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("second consume err = %v", err)
	}
}

func TestLoginSuccessRemember(t *testing.T) {
	svc, _, counters := newTestService()
	u := register(t, svc)
	ctx := context.Background()

	token, err := svc.LoginSuccess(ctx, u, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 64 {
		t.Fatalf("token length = %d", len(token))
	}
	if counters.counts[domain.CounterSignIn] != 1 {
		t.Fatalf("signin counter = %d", counters.counts[domain.CounterSignIn])
	}

	// 不勾 remember 不发令牌
	token, err = svc.LoginSuccess(ctx, u, false)
	if err != nil || token != "" {
		t.Fatalf("token = %q, err = %v", token, err)
	}
}

func TestSerializeDeserialize(t *testing.T) {
	svc, _, _ := newTestService()
	u := register(t, svc)

	uuid := svc.Serialize(u)
	if uuid != u.UUID {
		t.Fatalf("serialize = %q", uuid)
	}
	got, err := svc.Deserialize(context.Background(), uuid)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.UUID != u.UUID || got.Nickname != u.Nickname {
		t.Fatalf("deserialize = %+v", got)
	}
}

func TestUpdateInfo(t *testing.T) {
	svc, accounts, _ := newTestService()
	u := register(t, svc)
	ctx := context.Background()

	if err := svc.UpdateInfo(ctx, u.UUID, "newname", "p.png"); err != nil {
		t.Fatal(err)
	}
	got, _ := accounts.FindByUUID(ctx, u.UUID)
	if got.Nickname != "newname" || got.Photo != "p.png" {
		t.Fatalf("after update: %+v", got)
	}

	// 昵称规则同注册
	var verrs ValidationErrors
	if err := svc.UpdateInfo(ctx, u.UUID, "x", ""); !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
}
