package services

import (
	"context"
	"time"

	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
)

// LockDayPeriodPolicy freezes closed months once the organization's lock day
// has passed. With lock day L, postings dated before the first day of the
// current month are rejected after day L, and postings dated before the first
// day of the previous month are rejected on or before day L.
type LockDayPeriodPolicy struct {
	BaseService
	orgRepo portsrepo.OrganizationReader
}

// NewLockDayPeriodPolicy creates the period lock policy.
func NewLockDayPeriodPolicy(orgRepo portsrepo.OrganizationReader, options ...ServiceOption) *LockDayPeriodPolicy {
	opts := applyOptions(options)
	return &LockDayPeriodPolicy{
		BaseService: BaseService{clock: opts.clock},
		orgRepo:     orgRepo,
	}
}

var _ portssvc.PeriodLockChecker = (*LockDayPeriodPolicy)(nil)

func (p *LockDayPeriodPolicy) IsPeriodLocked(ctx context.Context, organizationID string, date time.Time) (bool, error) {
	org, err := p.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return false, err
	}
	boundary, ok := LockBoundary(p.Now(), org.LockDayOfMonth)
	if !ok {
		return false, nil
	}
	return date.UTC().Before(boundary), nil
}

// LockBoundary returns the earliest date still open for postings. ok is false
// when lockDay disables locking.
func LockBoundary(now time.Time, lockDay int) (boundary time.Time, ok bool) {
	if lockDay <= 0 {
		return time.Time{}, false
	}
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if now.Day() > lockDay {
		return firstOfMonth, true
	}
	return firstOfMonth.AddDate(0, -1, 0), true
}
