package services

import (
	"context"
	"time"

	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
)

const defaultLockTTL = 30 * time.Second

// serviceOptions collects optional collaborators shared by the services.
type serviceOptions struct {
	clock          func() time.Time
	locker         portssvc.Locker
	lockTTL        time.Duration
	yearStartMonth time.Month
}

// ServiceOption is a functional option for configuring the ledger services
type ServiceOption func(*serviceOptions)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// WithLocker adds a cross-process lock taken around approvals and payments,
// on top of the row locks held by the unit of work.
func WithLocker(locker portssvc.Locker, ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.locker = locker
		if ttl > 0 {
			o.lockTTL = ttl
		}
	}
}

// WithFinancialYearStart sets the first month of the financial year.
func WithFinancialYearStart(month time.Month) ServiceOption {
	return func(o *serviceOptions) {
		if month >= time.January && month <= time.December {
			o.yearStartMonth = month
		}
	}
}

func applyOptions(options []ServiceOption) serviceOptions {
	o := serviceOptions{lockTTL: defaultLockTTL, yearStartMonth: time.January}
	for _, option := range options {
		option(&o)
	}
	return o
}

func noopRelease() {}

// lockGuard takes the optional cross-process lock.
type lockGuard struct {
	locker portssvc.Locker
	ttl    time.Duration
}

func (o serviceOptions) guard() lockGuard {
	return lockGuard{locker: o.locker, ttl: o.lockTTL}
}

func (g lockGuard) acquire(ctx context.Context, key string) (func(), error) {
	if g.locker == nil {
		return noopRelease, nil
	}
	return g.locker.Acquire(ctx, key, g.ttl)
}
