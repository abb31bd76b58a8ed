package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "payments_org_ref_key"}, target: apperrors.ErrDuplicate},
		{name: "row locked elsewhere", err: &pgconn.PgError{Code: pgLockNotAvailable}, target: apperrors.ErrConcurrentModification},
		{name: "serialization failure", err: fmt.Errorf("batch: %w", &pgconn.PgError{Code: pgSerializationFail}), target: apperrors.ErrConcurrentModification},
		{name: "other errors pass through", err: plain, target: plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPgError(tt.err, "document", "d1"), tt.target)
		})
	}
	assert.NoError(t, mapPgError(nil, "document", "d1"))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(&pgconn.PgError{Code: pgInvalidText}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isNoRows(errors.New("boom")))
}
