package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
)

// ledgerService serves read-only views derived from ledger rows.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerReader
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo portsrepo.LedgerReader, accountRepo portsrepo.AccountReader, authorizer portssvc.TenantAuthorizerSvc) portssvc.LedgerSvc {
	svc := &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
	svc.TenantAuthorizer = authorizer
	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func asOfOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return domain.DateOnly(time.Now())
	}
	return domain.DateOnly(t)
}

// GetAccountLedger returns the rows of one account dated in [from, to].
func (s *ledgerService) GetAccountLedger(ctx context.Context, tenantID, accountID, userID string, params dto.AccountLedgerParams) (*domain.AccountLedger, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	from, to := domain.DateOnly(params.From), domain.DateOnly(params.To)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	result := &domain.AccountLedger{Account: *account, From: from, To: to}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.OpeningBalance, err = s.ledgerRepo.RunningBalanceBefore(gctx, tenantID, accountID, from)
		return err
	})
	g.Go(func() error {
		var err error
		result.ClosingBalance, err = s.ledgerRepo.RunningBalanceAsOf(gctx, tenantID, accountID, to)
		return err
	})
	g.Go(func() error {
		var err error
		result.Entries, result.NextToken, err = s.ledgerRepo.ListLedgerEntries(gctx, tenantID, accountID, from, to, pagination.ClampLimit(params.Limit), params.NextToken)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build account ledger", slog.String("account_id", accountID))
		return nil, err
	}
	if result.Entries == nil {
		result.Entries = []domain.LedgerEntry{}
	}
	return result, nil
}

// GetTrialBalance lists every account balance as of a date.
func (s *ledgerService) GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.TrialBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	asOf = asOfOrToday(asOf)
	totals, err := s.ledgerRepo.AccountTotals(ctx, tenantID, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to total accounts", slog.String("tenant_id", tenantID))
		return nil, err
	}
	tb := domain.BuildTrialBalance(tenantID, asOf, totals)
	if !tb.IsBalanced {
		s.LogWarn(ctx, fmt.Errorf("difference %s", tb.Difference.StringFixed(2)), "Trial balance does not balance",
			slog.String("tenant_id", tenantID))
	}
	return &tb, nil
}

// GetSubLedger returns one party's rows and per-account balance.
func (s *ledgerService) GetSubLedger(ctx context.Context, tenantID string, partyType domain.PartyType, partyID string, asOf time.Time, userID string) (*domain.SubLedger, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if !partyType.Valid() {
		return nil, fmt.Errorf("%w: unknown party type %q", apperrors.ErrValidation, partyType)
	}
	if strings.TrimSpace(partyID) == "" {
		return nil, fmt.Errorf("%w: party id is required", apperrors.ErrValidation)
	}
	asOf = asOfOrToday(asOf)

	entries, err := s.ledgerRepo.ListPartyEntries(ctx, tenantID, partyType, partyID, asOf)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string]*domain.AccountTotals)
	order := make([]string, 0)
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		t, ok := byAccount[e.AccountID]
		if !ok {
			t = &domain.AccountTotals{AccountID: e.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
			byAccount[e.AccountID] = t
			order = append(order, e.AccountID)
		}
		t.TotalDebit = t.TotalDebit.Add(e.DebitAmount)
		t.TotalCredit = t.TotalCredit.Add(e.CreditAmount)
		debit = debit.Add(e.DebitAmount)
		credit = credit.Add(e.CreditAmount)
	}

	accounts := make([]domain.AccountTotals, 0, len(order))
	if len(order) > 0 {
		chart, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, order)
		if err != nil {
			return nil, err
		}
		for _, id := range order {
			t := byAccount[id]
			if acc, ok := chart[id]; ok {
				t.Code, t.Name, t.AccountType, t.NormalBalance = acc.Code, acc.Name, acc.AccountType, acc.NormalBalance
			}
			accounts = append(accounts, *t)
		}
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	}

	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return &domain.SubLedger{
		PartyType: partyType,
		PartyID:   partyID,
		AsOf:      asOf,
		Entries:   entries,
		Accounts:  accounts,
		Balance:   domain.SignedByNormal(partyType.NormalBalance(), debit, credit),
	}, nil
}

// ListSubLedgerBalances returns every party's outstanding balance.
func (s *ledgerService) ListSubLedgerBalances(ctx context.Context, tenantID string, partyType domain.PartyType, asOf time.Time, userID string) ([]domain.PartyBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if !partyType.Valid() {
		return nil, fmt.Errorf("%w: unknown party type %q", apperrors.ErrValidation, partyType)
	}
	balances, err := s.ledgerRepo.PartyBalances(ctx, tenantID, partyType, asOfOrToday(asOf))
	if err != nil {
		return nil, err
	}
	nb := partyType.NormalBalance()
	for i := range balances {
		balances[i].Balance = domain.SignedByNormal(nb, balances[i].TotalDebit, balances[i].TotalCredit)
	}
	if balances == nil {
		return []domain.PartyBalance{}, nil
	}
	return balances, nil
}

// GetProfitability groups revenue, direct cost and operating expense by dimension.
func (s *ledgerService) GetProfitability(ctx context.Context, tenantID string, dimension domain.ProfitDimension, from, to time.Time, userID string) ([]domain.Profitability, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if !dimension.Valid() {
		return nil, fmt.Errorf("%w: unknown dimension %q", apperrors.ErrValidation, dimension)
	}
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}
	postings, err := s.ledgerRepo.DimensionPostings(ctx, tenantID, dimension, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dimension postings", slog.String("dimension", string(dimension)))
		return nil, err
	}
	return domain.BuildProfitability(postings), nil
}

// GetCashPosition sums cash and bank balances as of asOf, and the flows
// through them since from (the first of asOf's month when zero).
func (s *ledgerService) GetCashPosition(ctx context.Context, tenantID string, asOf, from time.Time, userID string) (*domain.CashPosition, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	asOf = asOfOrToday(asOf)
	if from.IsZero() {
		from = time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	from = domain.DateOnly(from)
	if asOf.Before(from) {
		return nil, fmt.Errorf("%w: 'asOf' is before 'from'", apperrors.ErrValidation)
	}

	assetType := domain.Asset
	all, err := s.accountRepo.ListAccounts(ctx, tenantID, &assetType, false)
	if err != nil {
		return nil, err
	}
	cash := make([]domain.Account, 0)
	for _, a := range all {
		if !a.IsHeader && strings.HasPrefix(a.Code, domain.PrefixCash) {
			cash = append(cash, a)
		}
	}

	pos := &domain.CashPosition{AsOf: asOf, From: from, Accounts: make([]domain.CashAccountPosition, len(cash))}
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range cash {
		i, a := i, a
		g.Go(func() error {
			bal, err := s.ledgerRepo.RunningBalanceAsOf(gctx, tenantID, a.AccountID, asOf)
			if err != nil {
				return err
			}
			pos.Accounts[i] = domain.CashAccountPosition{AccountID: a.AccountID, Code: a.Code, Name: a.Name, Balance: bal}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		pos.Inflow, pos.Outflow, err = s.ledgerRepo.CashFlows(gctx, tenantID, domain.PrefixCash, from, asOf)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute cash position", slog.String("tenant_id", tenantID))
		return nil, err
	}

	pos.TotalBalance = decimal.Zero
	for _, a := range pos.Accounts {
		pos.TotalBalance = pos.TotalBalance.Add(a.Balance)
	}
	pos.NetFlow = pos.Inflow.Sub(pos.Outflow)
	return pos, nil
}
