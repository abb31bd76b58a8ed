package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/google/uuid"
)

type organizationService struct {
	BaseService
	orgRepo     portsrepo.OrganizationRepositoryFacade
	accountRepo portsrepo.GLAccountLookup
}

// NewOrganizationService creates the accounting organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, accountRepo portsrepo.GLAccountLookup, options ...ServiceOption) portssvc.OrganizationSvcFacade {
	opts := applyOptions(options)
	return &organizationService{
		BaseService: BaseService{clock: opts.clock},
		orgRepo:     orgRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.AccountingOrganization, error) {
	now := s.Now()
	org := domain.AccountingOrganization{
		AccountingOrganizationID: uuid.NewString(),
		ContactID:                req.ContactID,
		LocationID:               req.LocationID,
		LockDayOfMonth:           req.LockDayOfMonth,
		IsActive:                 true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save accounting organization", slog.String("location_id", req.LocationID))
		return nil, err
	}
	s.LogInfo(ctx, "Accounting organization created", slog.String("organization_id", org.AccountingOrganizationID))
	return &org, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	return s.orgRepo.FindOrganizationByID(ctx, organizationID)
}

func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.AccountingOrganization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	for designation, accountID := range req.Designations() {
		if accountID == nil {
			continue
		}
		if *accountID != "" {
			account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
			if err != nil {
				return nil, err
			}
			if account.AccountingOrganizationID != organizationID {
				return nil, fmt.Errorf("%w: %s account %s", apperrors.ErrOrganizationMismatch, designation, *accountID)
			}
		}
		setDesignation(org, designation, *accountID)
	}
	if req.LockDayOfMonth != nil {
		org.LockDayOfMonth = *req.LockDayOfMonth
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}
	org.LastUpdatedAt = s.Now()
	org.LastUpdatedBy = userID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to update accounting organization", slog.String("organization_id", organizationID))
		return nil, err
	}
	return org, nil
}

func setDesignation(org *domain.AccountingOrganization, d domain.AccountDesignation, accountID string) {
	switch d {
	case domain.DesignationReceivable:
		org.ReceivableAccountID = accountID
	case domain.DesignationPayable:
		org.PayableAccountID = accountID
	case domain.DesignationTaxPayable:
		org.TaxPayableAccountID = accountID
	case domain.DesignationTaxReceivable:
		org.TaxReceivableAccountID = accountID
	case domain.DesignationPaymentDetails:
		org.PaymentDetailsAccountID = accountID
	}
}
