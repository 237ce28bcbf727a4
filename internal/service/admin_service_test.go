package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/songru/blititor/internal/domain"
)

// 只关心 count → clamp → fetch 的编排，底下给固定行数的假仓库

type pagedAccountRepo struct {
	fakeAccountRepo
	total      int64
	gotOffset  int
	gotLimit   int
	lastListed bool
}

func (r *pagedAccountRepo) CountAccounts(_ context.Context) (int64, error) {
	return r.total, nil
}

func (r *pagedAccountRepo) ListAccounts(_ context.Context, offset, limit int) ([]domain.AccountSummary, error) {
	r.gotOffset, r.gotLimit, r.lastListed = offset, limit, true
	n := int(r.total) - offset
	if n < 0 {
		n = 0
	}
	if n > limit {
		n = limit
	}
	out := make([]domain.AccountSummary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.AccountSummary{UserID: fmt.Sprintf("u%d@example.com", offset+i)})
	}
	return out, nil
}

type fakeVisitRepo struct {
	total int64
}

func (r *fakeVisitRepo) Log(_ context.Context, _ *domain.VisitLogEntry) error { return nil }
func (r *fakeVisitRepo) CountLogs(_ context.Context) (int64, error)           { return r.total, nil }
func (r *fakeVisitRepo) ListLogs(_ context.Context, offset, limit int) ([]domain.VisitLogEntry, error) {
	n := int(r.total) - offset
	if n < 0 {
		n = 0
	}
	if n > limit {
		n = limit
	}
	out := make([]domain.VisitLogEntry, n)
	for i := range out {
		out[i] = domain.VisitLogEntry{Path: "/", CreatedAt: time.Now()}
	}
	return out, nil
}

func TestReadAccountByPageClampsOverflow(t *testing.T) {
	accounts := &pagedAccountRepo{total: 25}
	svc := NewAdminService(accounts, &fakeVisitRepo{})

	// 25 条、第 5 页 → 收到 maxPage 2、偏移 20、剩 5 条
	res, err := svc.ReadAccountByPage(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxPage != 2 || res.Page != 2 || res.Index != 20 {
		t.Fatalf("paging = %+v", res.Paging)
	}
	if accounts.gotOffset != 20 || accounts.gotLimit != 10 {
		t.Fatalf("fetch offset/limit = %d/%d", accounts.gotOffset, accounts.gotLimit)
	}
	if len(res.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(res.Items))
	}
}

func TestReadAccountByPageEmptyTable(t *testing.T) {
	accounts := &pagedAccountRepo{total: 0}
	svc := NewAdminService(accounts, &fakeVisitRepo{})

	res, err := svc.ReadAccountByPage(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 || res.MaxPage != 0 || res.Index != 0 {
		t.Fatalf("paging = %+v", res.Paging)
	}
	if len(res.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(res.Items))
	}
	// 空表也照样发了取数查询，只是结果为空
	if !accounts.lastListed {
		t.Fatal("fetch query skipped")
	}
}

func TestReadVisitLogByPage(t *testing.T) {
	svc := NewAdminService(&pagedAccountRepo{}, &fakeVisitRepo{total: 13})

	res, err := svc.ReadVisitLogByPage(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxPage != 1 || res.Page != 1 || res.Index != 10 {
		t.Fatalf("paging = %+v", res.Paging)
	}
	if len(res.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(res.Items))
	}
}
