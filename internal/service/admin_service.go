package service

import (
	"context"

	"github.com/songru/blititor/internal/domain"
)

type AdminService struct {
	accounts domain.AccountRepository
	visits   domain.VisitRepository
}

func NewAdminService(accounts domain.AccountRepository, visits domain.VisitRepository) *AdminService {
	return &AdminService{accounts: accounts, visits: visits}
}

// ReadAccountByPage 先数总量、再按收紧后的偏移取一页。
// 两步之间表可能在变，total 允许轻微过期
func (s *AdminService) ReadAccountByPage(ctx context.Context, page int) (*domain.PagedResult[domain.AccountSummary], error) {
	total, err := s.accounts.CountAccounts(ctx)
	if err != nil {
		return nil, err
	}
	pg := domain.NewPaging(total, page, domain.DefaultPageSize)
	items, err := s.accounts.ListAccounts(ctx, pg.Index, pg.PageSize)
	if err != nil {
		return nil, err
	}
	return &domain.PagedResult[domain.AccountSummary]{Paging: pg, Items: items}, nil
}

// ReadVisitLogByPage 同一套 count → clamp → fetch
func (s *AdminService) ReadVisitLogByPage(ctx context.Context, page int) (*domain.PagedResult[domain.VisitLogEntry], error) {
	total, err := s.visits.CountLogs(ctx)
	if err != nil {
		return nil, err
	}
	pg := domain.NewPaging(total, page, domain.DefaultPageSize)
	items, err := s.visits.ListLogs(ctx, pg.Index, pg.PageSize)
	if err != nil {
		return nil, err
	}
	return &domain.PagedResult[domain.VisitLogEntry]{Paging: pg, Items: items}, nil
}
