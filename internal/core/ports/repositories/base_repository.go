package repositories

import (
	"context"
)

// UnitOfWork runs fn inside one atomic storage transaction. Repositories
// called with the ctx passed to fn join that transaction. A nested call joins
// the outer unit instead of opening a new one. Any error returned by fn rolls
// back every write made through ctx.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
