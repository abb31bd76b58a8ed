package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockBoundary(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
	first := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		now      time.Time
		lockDay  int
		want     time.Time
		disabled bool
	}{
		{name: "disabled", now: day(2024, time.March, 15), lockDay: 0, disabled: true},
		{name: "after lock day closes previous month", now: day(2024, time.March, 15), lockDay: 10, want: first(2024, time.March)},
		{name: "on lock day previous month stays open", now: day(2024, time.March, 10), lockDay: 10, want: first(2024, time.February)},
		{name: "before lock day", now: day(2024, time.March, 2), lockDay: 10, want: first(2024, time.February)},
		{name: "crosses year", now: day(2024, time.January, 5), lockDay: 10, want: first(2023, time.December)},
		{name: "lock day beyond month end", now: day(2024, time.February, 29), lockDay: 31, want: first(2024, time.January)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := services.LockBoundary(tt.now, tt.lockDay)
			if tt.disabled {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodLock_RejectsPostingsInClosedMonths(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	org := f.store.orgs[f.orgID]
	org.LockDayOfMonth = 10
	f.store.orgs[f.orgID] = org

	policy := services.NewLockDayPeriodPolicy(f.store, services.WithClock(func() time.Time { return f.now }))
	locked, err := policy.IsPeriodLocked(ctx, f.orgID, time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, locked)
	locked, err = policy.IsPeriodLocked(ctx, f.orgID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, locked)

	builder := f.services.Ledger.BeginTransaction(f.orgID, "user-1").
		WithPostedAt(time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, builder.Increase(f.bank, dec("10")))
	require.NoError(t, builder.Increase(f.revenue, dec("10")))
	_, err = builder.Commit(ctx)
	assert.ErrorIs(t, err, apperrors.ErrPeriodLocked)
	assert.Empty(t, f.store.txns)

	_, err = policy.IsPeriodLocked(ctx, "missing", f.now)
	assert.ErrorIs(t, err, apperrors.ErrOrganizationNotFound)
}
