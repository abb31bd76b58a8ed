package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/config"
	"github.com/shopspring/decimal"
)

// memStore keeps every repository in maps. WithinTx snapshots the maps and
// restores them when fn fails, so rollback behaves like the database.
type memStore struct {
	accounts map[string]domain.GLAccount
	types    map[string]domain.AccountType
	taxRates map[string]domain.TaxRate
	orgs     map[string]domain.AccountingOrganization
	txns     map[string]domain.Transaction
	docs     map[string]domain.FinancialDocument
	payments map[string]domain.Payment
	events   []domain.OutboxEvent
	commits  int
}

type memTxKey struct{}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.GLAccount{},
		types:    map[string]domain.AccountType{},
		taxRates: map[string]domain.TaxRate{},
		orgs:     map[string]domain.AccountingOrganization{},
		txns:     map[string]domain.Transaction{},
		docs:     map[string]domain.FinancialDocument{},
		payments: map[string]domain.Payment{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:       s,
		AccountRepo:      s,
		OrganizationRepo: s,
		TransactionRepo:  s,
		BalanceRepo:      s,
		DocumentRepo:     s,
		PaymentRepo:      s,
		OutboxRepo:       s,
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	snapshot := s.clone()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		*s = *snapshot
		return err
	}
	s.commits++
	return nil
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.types {
		c.types[k] = v
	}
	for k, v := range s.taxRates {
		c.taxRates[k] = v
	}
	for k, v := range s.orgs {
		c.orgs[k] = v
	}
	for k, v := range s.txns {
		c.txns[k] = v
	}
	for k, v := range s.docs {
		c.docs[k] = cloneDoc(v)
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	c.events = append([]domain.OutboxEvent(nil), s.events...)
	c.commits = s.commits
	return c
}

func cloneDoc(d domain.FinancialDocument) domain.FinancialDocument {
	d.Items = append([]domain.DocumentItem(nil), d.Items...)
	d.Statuses = append([]domain.StatusEntry(nil), d.Statuses...)
	if d.ApproveRequest != nil {
		ar := *d.ApproveRequest
		d.ApproveRequest = &ar
	}
	return d
}

// --- accounts ---

func (s *memStore) FindAccountByID(_ context.Context, accountID string) (*domain.GLAccount, error) {
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &a, nil
}

func (s *memStore) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	out := make(map[string]domain.GLAccount)
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *memStore) FindAccountsByOrganizationAndGroup(_ context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error) {
	var out []domain.GLAccount
	for _, a := range s.sortedAccounts() {
		if a.AccountingOrganizationID == organizationID && a.AccountType.Group.Code == group {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) ListAccountsByOrganization(_ context.Context, organizationID string) ([]domain.GLAccount, error) {
	var out []domain.GLAccount
	for _, a := range s.sortedAccounts() {
		if a.AccountingOrganizationID == organizationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) sortedAccounts() []domain.GLAccount {
	out := make([]domain.GLAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (s *memStore) FindAccountTypeByID(_ context.Context, accountTypeID string) (*domain.AccountType, error) {
	t, ok := s.types[accountTypeID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account type", accountTypeID)
	}
	return &t, nil
}

func (s *memStore) FindTaxRateByID(_ context.Context, taxRateID string) (*domain.TaxRate, error) {
	r, ok := s.taxRates[taxRateID]
	if !ok {
		return nil, apperrors.NewNotFoundError("tax rate", taxRateID)
	}
	return &r, nil
}

func (s *memStore) SaveAccount(_ context.Context, account domain.GLAccount) error {
	for _, a := range s.accounts {
		if a.AccountingOrganizationID == account.AccountingOrganizationID && a.Code != "" && a.Code == account.Code {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *memStore) DeactivateAccount(_ context.Context, accountID string, userID string) error {
	a, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	a.IsActive = false
	a.LastUpdatedBy = userID
	s.accounts[accountID] = a
	return nil
}

// --- organizations ---

func (s *memStore) FindOrganizationByID(_ context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	o, ok := s.orgs[organizationID]
	if !ok {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return &o, nil
}

func (s *memStore) SaveOrganization(_ context.Context, org domain.AccountingOrganization) error {
	s.orgs[org.AccountingOrganizationID] = org
	return nil
}

func (s *memStore) UpdateOrganization(_ context.Context, org domain.AccountingOrganization) error {
	s.orgs[org.AccountingOrganizationID] = org
	return nil
}

// --- transactions and balances ---

// SaveTransaction stores amounts at the NUMERIC(19, 6) column scale and
// enforces the unique reverses_transaction_id index.
func (s *memStore) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	if txn.ReversesTransactionID != nil {
		for _, t := range s.txns {
			if t.ReversesTransactionID != nil && *t.ReversesTransactionID == *txn.ReversesTransactionID {
				return fmt.Errorf("%w: transactions_reverses_uidx", apperrors.ErrDuplicate)
			}
		}
	}
	records := make([]domain.TransactionRecord, len(txn.Records))
	for i, r := range txn.Records {
		r.Amount = domain.RoundToLedgerScale(r.Amount)
		records[i] = r
	}
	txn.Records = records
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *memStore) HasReversal(_ context.Context, transactionID string) (bool, error) {
	for _, t := range s.txns {
		if t.ReversesTransactionID != nil && *t.ReversesTransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	t, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &t, nil
}

func (s *memStore) ListRecordsByAccount(_ context.Context, accountID string, filter domain.BalanceFilter, limit int, _ *string) ([]domain.AccountRecord, *string, error) {
	var out []domain.AccountRecord
	for _, t := range s.txns {
		if !inWindow(t.PostedAt, filter.DateFrom, filter.DateTo) {
			continue
		}
		for _, r := range t.Records {
			if r.GLAccountID == accountID {
				out = append(out, domain.AccountRecord{TransactionRecord: r, PostedAt: t.PostedAt, Description: t.Description})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (s *memStore) SumAccountRecords(_ context.Context, accountID string, filter domain.BalanceFilter) (domain.AccountTotals, error) {
	totals := domain.AccountTotals{AccountID: accountID, Debits: decimal.Zero, Credits: decimal.Zero}
	for _, t := range s.txns {
		if !inWindow(t.PostedAt, filter.DateFrom, filter.DateTo) {
			continue
		}
		for _, r := range t.Records {
			if r.GLAccountID != accountID {
				continue
			}
			if r.IsDebit {
				totals.Debits = totals.Debits.Add(r.Amount)
			} else {
				totals.Credits = totals.Credits.Add(r.Amount)
			}
		}
	}
	return totals, nil
}

func (s *memStore) SumRecordsByOrganization(_ context.Context, organizationID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	byAccount := map[string]*domain.AccountTotals{}
	for _, t := range s.txns {
		if t.AccountingOrganizationID != organizationID || !inWindow(t.PostedAt, from, &to) {
			continue
		}
		for _, r := range t.Records {
			totals, ok := byAccount[r.GLAccountID]
			if !ok {
				totals = &domain.AccountTotals{AccountID: r.GLAccountID, Debits: decimal.Zero, Credits: decimal.Zero}
				byAccount[r.GLAccountID] = totals
			}
			if r.IsDebit {
				totals.Debits = totals.Debits.Add(r.Amount)
			} else {
				totals.Credits = totals.Credits.Add(r.Amount)
			}
		}
	}
	out := make([]domain.AccountTotals, 0, len(byAccount))
	for _, t := range byAccount {
		out = append(out, *t)
	}
	return out, nil
}

func inWindow(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// --- documents ---

func (s *memStore) FindDocumentByID(_ context.Context, documentID string) (*domain.FinancialDocument, error) {
	d, ok := s.docs[documentID]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	d = cloneDoc(d)
	return &d, nil
}

func (s *memStore) FindDocumentForUpdate(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	return s.FindDocumentByID(ctx, documentID)
}

func (s *memStore) ListDocuments(_ context.Context, organizationID string, filter portsrepo.DocumentListFilter) ([]domain.FinancialDocument, error) {
	var out []domain.FinancialDocument
	for _, d := range s.docs {
		if d.AccountingOrganizationID != organizationID {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.Status != "" && d.LatestStatus() != filter.Status {
			continue
		}
		out = append(out, cloneDoc(d))
	}
	return out, nil
}

func (s *memStore) SaveDocument(_ context.Context, doc domain.FinancialDocument) error {
	s.docs[doc.DocumentID] = cloneDoc(doc)
	return nil
}

func (s *memStore) ReplaceItems(_ context.Context, documentID string, items []domain.DocumentItem, expectedVersion int64, userID string) error {
	d, err := s.versioned(documentID, expectedVersion)
	if err != nil {
		return err
	}
	d.Items = append([]domain.DocumentItem(nil), items...)
	d.Version++
	d.LastUpdatedBy = userID
	s.docs[documentID] = d
	return nil
}

func (s *memStore) AppendStatus(_ context.Context, documentID string, entry domain.StatusEntry) error {
	d, ok := s.docs[documentID]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	d = cloneDoc(d)
	d.Statuses = append(d.Statuses, entry)
	s.docs[documentID] = d
	return nil
}

func (s *memStore) UpdateDocumentState(_ context.Context, doc domain.FinancialDocument, expectedVersion int64) error {
	d, err := s.versioned(doc.DocumentID, expectedVersion)
	if err != nil {
		return err
	}
	updated := cloneDoc(doc)
	d.ApproveRequest = updated.ApproveRequest
	d.LockedAt = doc.LockedAt
	d.TransactionID = doc.TransactionID
	d.LastUpdatedAt = doc.LastUpdatedAt
	d.LastUpdatedBy = doc.LastUpdatedBy
	d.Version++
	s.docs[doc.DocumentID] = d
	return nil
}

func (s *memStore) versioned(documentID string, expectedVersion int64) (domain.FinancialDocument, error) {
	d, ok := s.docs[documentID]
	if !ok {
		return d, apperrors.ErrDocumentNotFound
	}
	if d.Version != expectedVersion {
		return d, &apperrors.ConcurrentModificationError{Resource: "document", ID: documentID}
	}
	return cloneDoc(d), nil
}

// --- payments ---

func (s *memStore) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return &p, nil
}

func (s *memStore) SumPaidByInvoice(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.payments {
		for _, ip := range p.InvoicePayments {
			if ip.InvoiceID == invoiceID {
				total = total.Add(ip.Amount)
			}
		}
	}
	return total, nil
}

func (s *memStore) SumForwardedByInvoice(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.payments {
		if p.ForwardedPayment == nil {
			continue
		}
		for _, f := range p.ForwardedPayment.Invoices {
			if f.InvoiceID == invoiceID {
				total = total.Add(f.Amount)
			}
		}
	}
	return total, nil
}

func (s *memStore) SavePayment(_ context.Context, payment domain.Payment) error {
	if payment.ExternalReference != "" {
		for _, p := range s.payments {
			if p.AccountingOrganizationID == payment.AccountingOrganizationID && p.ExternalReference == payment.ExternalReference {
				return fmt.Errorf("%w: external reference %s", apperrors.ErrDuplicate, payment.ExternalReference)
			}
		}
	}
	s.payments[payment.PaymentID] = payment
	return nil
}

func (s *memStore) paymentsFor(invoiceID string) []domain.InvoicePayment {
	var out []domain.InvoicePayment
	for _, p := range s.payments {
		for _, ip := range p.InvoicePayments {
			if ip.InvoiceID == invoiceID {
				out = append(out, ip)
			}
		}
	}
	return out
}

// --- outbox ---

func (s *memStore) SaveEvent(_ context.Context, event domain.OutboxEvent) error {
	s.events = append(s.events, event)
	return nil
}

func (s *memStore) FetchPendingEvents(_ context.Context, limit int) ([]domain.OutboxEvent, error) {
	var out []domain.OutboxEvent
	for _, e := range s.events {
		if e.DispatchedAt == nil && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) MarkDispatched(_ context.Context, eventIDs []string, at time.Time) error {
	ids := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		ids[id] = struct{}{}
	}
	for i := range s.events {
		if _, ok := ids[s.events[i].EventID]; ok {
			t := at
			s.events[i].DispatchedAt = &t
		}
	}
	return nil
}

// --- fixture ---

var (
	assetGroup     = domain.AccountTypeGroup{Code: domain.GroupAsset, Name: "Asset", IncreaseActionIsDebit: true}
	liabilityGroup = domain.AccountTypeGroup{Code: domain.GroupLiability, Name: "Liability"}
	revenueGroup   = domain.AccountTypeGroup{Code: domain.GroupRevenue, Name: "Revenue"}
	expenseGroup   = domain.AccountTypeGroup{Code: domain.GroupExpense, Name: "Expense", IncreaseActionIsDebit: true}
)

// ledgerFixture is an organization with a small chart of accounts wired to
// real services over a memStore.
type ledgerFixture struct {
	store         *memStore
	services      *portssvc.ServiceContainer
	orgID         string
	receivable    domain.GLAccount
	payable       domain.GLAccount
	revenue       domain.GLAccount
	expense       domain.GLAccount
	taxPayable    domain.GLAccount
	taxReceivable domain.GLAccount
	bank          domain.GLAccount
	gstRateID     string
	now           time.Time
}

func newLedgerFixture(options ...services.ServiceOption) *ledgerFixture {
	store := newMemStore()
	f := &ledgerFixture{
		store:     store,
		orgID:     "org-1",
		gstRateID: "gst",
		now:       time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
	}
	store.taxRates[f.gstRateID] = domain.TaxRate{TaxRateID: f.gstRateID, Name: "GST on income", Rate: decimal.RequireFromString("0.1")}
	store.taxRates["free"] = domain.TaxRate{TaxRateID: "free", Name: "GST free", Rate: decimal.Zero}

	account := func(id, code string, group domain.AccountTypeGroup) domain.GLAccount {
		a := domain.GLAccount{
			AccountID:                id,
			AccountingOrganizationID: f.orgID,
			AccountType:              domain.AccountType{AccountTypeID: "type-" + string(group.Code), Name: group.Name, Group: group},
			Code:                     code,
			Name:                     id,
			IsActive:                 true,
		}
		store.types[a.AccountType.AccountTypeID] = a.AccountType
		store.accounts[id] = a
		return a
	}
	f.bank = account("bank", "1000", assetGroup)
	f.receivable = account("receivable", "1100", assetGroup)
	f.taxReceivable = account("tax-receivable", "1200", assetGroup)
	f.payable = account("payable", "2000", liabilityGroup)
	f.taxPayable = account("tax-payable", "2100", liabilityGroup)
	f.revenue = account("revenue", "4000", revenueGroup)
	f.expense = account("expense", "5000", expenseGroup)

	store.orgs[f.orgID] = domain.AccountingOrganization{
		AccountingOrganizationID: f.orgID,
		ContactID:                "contact-1",
		LocationID:               "location-1",
		ReceivableAccountID:      f.receivable.AccountID,
		PayableAccountID:         f.payable.AccountID,
		TaxPayableAccountID:      f.taxPayable.AccountID,
		TaxReceivableAccountID:   f.taxReceivable.AccountID,
		PaymentDetailsAccountID:  f.bank.AccountID,
		IsActive:                 true,
	}

	cfg := &config.Config{FinancialYearStartMonth: time.July, OutboxBatchSize: 10}
	options = append([]services.ServiceOption{services.WithClock(func() time.Time { return f.now })}, options...)
	f.services = services.NewServiceContainer(cfg, store.provider(), nil, options...)
	return f
}

func (f *ledgerFixture) balance(ctx context.Context, account domain.GLAccount) decimal.Decimal {
	b, err := f.services.Balance.GetAccountBalance(ctx, account.AccountID, domain.BalanceFilter{})
	if err != nil {
		panic(err)
	}
	return b
}
