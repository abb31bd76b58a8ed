package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/google/uuid"
)

// glAccountService is the chart-of-accounts registry.
type glAccountService struct {
	BaseService
	accountRepo portsrepo.GLAccountRepositoryFacade
	orgRepo     portsrepo.OrganizationReader
}

// NewGLAccountService creates the account registry.
func NewGLAccountService(accountRepo portsrepo.GLAccountRepositoryFacade, orgRepo portsrepo.OrganizationReader, options ...ServiceOption) portssvc.GLAccountSvcFacade {
	opts := applyOptions(options)
	return &glAccountService{
		BaseService: BaseService{clock: opts.clock},
		accountRepo: accountRepo,
		orgRepo:     orgRepo,
	}
}

var _ portssvc.GLAccountSvcFacade = (*glAccountService)(nil)

// IsDebitIncreasing reads polarity from the account type group. Accounts never override it.
func (s *glAccountService) IsDebitIncreasing(account domain.GLAccount) bool {
	return account.AccountType.Group.IncreaseActionIsDebit
}

// IncreasedBy reports whether a debit (isDebit) or credit grew the account.
func (s *glAccountService) IncreasedBy(account domain.GLAccount, isDebit bool) bool {
	return s.IsDebitIncreasing(account) == isDebit
}

func (s *glAccountService) GetAccount(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *glAccountService) FindByOrganizationAndType(ctx context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error) {
	accounts, err := s.accountRepo.FindAccountsByOrganizationAndGroup(ctx, organizationID, group)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by group",
			slog.String("organization_id", organizationID),
			slog.String("group", string(group)))
		return nil, err
	}
	if accounts == nil {
		return []domain.GLAccount{}, nil
	}
	return accounts, nil
}

func (s *glAccountService) ListAccounts(ctx context.Context, organizationID string) ([]domain.GLAccount, error) {
	accounts, err := s.accountRepo.ListAccountsByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}
	if accounts == nil {
		return []domain.GLAccount{}, nil
	}
	return accounts, nil
}

func (s *glAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.GLAccount, error) {
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}

	accountType, err := s.accountRepo.FindAccountTypeByID(ctx, req.AccountTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account type %s does not exist", apperrors.ErrValidation, req.AccountTypeID)
		}
		return nil, err
	}

	if req.TaxRateID != "" {
		if _, err := s.accountRepo.FindTaxRateByID(ctx, req.TaxRateID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: tax rate %s does not exist", apperrors.ErrValidation, req.TaxRateID)
			}
			return nil, err
		}
	}

	now := s.Now()
	account := domain.GLAccount{
		AccountID:                uuid.NewString(),
		AccountingOrganizationID: organizationID,
		AccountType:              *accountType,
		TaxRateID:                req.TaxRateID,
		Code:                     strings.TrimSpace(req.Code),
		Name:                     req.Name,
		IsActive:                 true,
		IsBankAccount:            req.IsBankAccount,
		EnablePayments:           req.EnablePayments,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account",
				slog.String("account_id", account.AccountID),
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("organization_id", organizationID))
	return &account, nil
}

func (s *glAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
