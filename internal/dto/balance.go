package dto

import (
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceQuery carries the optional date window of a balance or statement query.
type BalanceQuery struct {
	DateFrom string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
}

// Filter parses the query into a domain.BalanceFilter. DateTo is inclusive of the whole day.
func (q BalanceQuery) Filter() (domain.BalanceFilter, error) {
	var filter domain.BalanceFilter
	if q.DateFrom != "" {
		from, err := time.Parse("2006-01-02", q.DateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := time.Parse("2006-01-02", q.DateTo)
		if err != nil {
			return filter, err
		}
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &endOfDay
	}
	return filter, nil
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance" swaggertype:"string"`
}

// ListStatementParams defines query parameters for an account statement.
type ListStatementParams struct {
	BalanceQuery
	Limit     int     `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// StatementLineResponse is one record of an account statement.
type StatementLineResponse struct {
	TransactionID string          `json:"transactionID"`
	PostedAt      time.Time       `json:"postedAt"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	IsDebit       bool            `json:"isDebit"`
}

// AccountStatementResponse pages through the records of one account.
type AccountStatementResponse struct {
	AccountID string                  `json:"accountID"`
	Lines     []StatementLineResponse `json:"lines"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToStatementLines converts account records into statement lines.
func ToStatementLines(records []domain.AccountRecord) []StatementLineResponse {
	lines := make([]StatementLineResponse, len(records))
	for i, r := range records {
		lines[i] = StatementLineResponse{
			TransactionID: r.TransactionID,
			PostedAt:      r.PostedAt,
			Description:   r.Description,
			Amount:        domain.RoundForPresentation(r.Amount),
			IsDebit:       r.IsDebit,
		}
	}
	return lines
}

// TrialBalanceQuery defines query parameters for the trial balance report.
type TrialBalanceQuery struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// TrialBalanceResponse is the rounded rendition of domain.TrialBalanceReport.
type TrialBalanceResponse struct {
	domain.TrialBalanceReport
}

// ToTrialBalanceResponse rounds every amount of the report for presentation.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	out := *report
	out.Groups = make([]domain.TrialBalanceGroup, len(report.Groups))
	for gi, g := range report.Groups {
		rows := make([]domain.TrialBalanceRow, len(g.Rows))
		for ri, row := range g.Rows {
			row.AsOf = roundColumn(row.AsOf)
			row.YearToDate = roundColumn(row.YearToDate)
			rows[ri] = row
		}
		out.Groups[gi] = domain.TrialBalanceGroup{Group: g.Group, Rows: rows}
	}
	out.TotalDebit = domain.RoundForPresentation(report.TotalDebit)
	out.TotalCredit = domain.RoundForPresentation(report.TotalCredit)
	return TrialBalanceResponse{TrialBalanceReport: out}
}

func roundColumn(c domain.TrialBalanceColumn) domain.TrialBalanceColumn {
	return domain.TrialBalanceColumn{
		Debit:   domain.RoundForPresentation(c.Debit),
		Credit:  domain.RoundForPresentation(c.Credit),
		Balance: domain.RoundForPresentation(c.Balance),
	}
}
