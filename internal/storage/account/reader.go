package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
)

var _ IAccountReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns a NotFoundError when no account has the given id.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.find(ctx, id)
}

func (r *Reader) find(ctx context.Context, id uuid.UUID, queryMods ...bob.Mod[*dialect.SelectQuery]) (*Account, error) {
	queryMods = append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}, queryMods...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("account", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &row, nil
}
