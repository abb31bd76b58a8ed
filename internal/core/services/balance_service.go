package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/shopspring/decimal"
)

// balanceService derives balances from transaction records on every call.
// Nothing is cached.
type balanceService struct {
	BaseService
	accountRepo    portsrepo.GLAccountLookup
	balanceRepo    portsrepo.BalanceReader
	txnRepo        portsrepo.TransactionStore
	polarity       portssvc.PolarityResolver
	yearStartMonth time.Month
}

// NewBalanceService creates the balance calculator.
func NewBalanceService(
	accountRepo portsrepo.GLAccountLookup,
	balanceRepo portsrepo.BalanceReader,
	txnRepo portsrepo.TransactionStore,
	polarity portssvc.PolarityResolver,
	options ...ServiceOption,
) portssvc.BalanceSvcFacade {
	opts := applyOptions(options)
	return &balanceService{
		BaseService:    BaseService{clock: opts.clock},
		accountRepo:    accountRepo,
		balanceRepo:    balanceRepo,
		txnRepo:        txnRepo,
		polarity:       polarity,
		yearStartMonth: opts.yearStartMonth,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetAccountBalance(ctx context.Context, accountID string, filter domain.BalanceFilter) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	totals, err := s.balanceRepo.SumAccountRecords(ctx, accountID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account records", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return domain.SignedBalance(s.polarity.IsDebitIncreasing(*account), totals.Debits, totals.Credits), nil
}

func (s *balanceService) GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	asOf = asOf.UTC()
	yearStart := domain.FinancialYearStart(asOf, s.yearStartMonth)

	accounts, err := s.accountRepo.ListAccountsByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	allTime, err := s.balanceRepo.SumRecordsByOrganization(ctx, organizationID, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum records for trial balance", slog.String("organization_id", organizationID))
		return nil, err
	}
	ytd, err := s.balanceRepo.SumRecordsByOrganization(ctx, organizationID, &yearStart, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum year to date records", slog.String("organization_id", organizationID))
		return nil, err
	}

	allTimeByAccount := indexTotals(allTime)
	ytdByAccount := indexTotals(ytd)

	rowsByGroup := make(map[domain.AccountTypeGroupCode][]domain.TrialBalanceRow)
	report := &domain.TrialBalanceReport{
		AccountingOrganizationID: organizationID,
		AsOf:                     asOf,
		YearStart:                yearStart,
		TotalDebit:               decimal.Zero,
		TotalCredit:              decimal.Zero,
	}
	for _, account := range accounts {
		asOfTotals, hasAsOf := allTimeByAccount[account.AccountID]
		ytdTotals, hasYTD := ytdByAccount[account.AccountID]
		if !hasAsOf && !hasYTD {
			continue
		}
		debitIncreasing := s.polarity.IsDebitIncreasing(account)
		row := domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			AccountName: account.Name,
			AsOf:        trialBalanceColumn(debitIncreasing, asOfTotals),
			YearToDate:  trialBalanceColumn(debitIncreasing, ytdTotals),
		}
		group := account.AccountType.Group.Code
		rowsByGroup[group] = append(rowsByGroup[group], row)
		report.TotalDebit = report.TotalDebit.Add(row.AsOf.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.AsOf.Credit)
	}

	for _, group := range domain.AccountTypeGroups {
		if rows, ok := rowsByGroup[group]; ok {
			report.Groups = append(report.Groups, domain.TrialBalanceGroup{Group: group, Rows: rows})
		}
	}
	if report.Groups == nil {
		report.Groups = []domain.TrialBalanceGroup{}
	}
	return report, nil
}

func (s *balanceService) GetAccountStatement(ctx context.Context, accountID string, filter domain.BalanceFilter, limit int, nextToken *string) (*dto.AccountStatementResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	records, next, err := s.txnRepo.ListRecordsByAccount(ctx, accountID, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account records", slog.String("account_id", accountID))
		return nil, err
	}
	return &dto.AccountStatementResponse{
		AccountID: accountID,
		Lines:     dto.ToStatementLines(records),
		NextToken: next,
	}, nil
}

func indexTotals(totals []domain.AccountTotals) map[string]domain.AccountTotals {
	out := make(map[string]domain.AccountTotals, len(totals))
	for _, t := range totals {
		out[t.AccountID] = t
	}
	return out
}

func trialBalanceColumn(debitIncreasing bool, totals domain.AccountTotals) domain.TrialBalanceColumn {
	debits, credits := totals.Debits, totals.Credits
	return domain.TrialBalanceColumn{
		Debit:   debits,
		Credit:  credits,
		Balance: domain.SignedBalance(debitIncreasing, debits, credits),
	}
}
