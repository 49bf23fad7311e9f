// Package period persists each account's budget period state.
package period

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-tracker/internal/budget"
)

const tableName = "budget_periods"

type periodRow struct {
	AccountID uuid.UUID    `db:"account_id"`
	Limits    []byte       `db:"limits"`
	StartDate sql.NullTime `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`
}

// IPeriodReader defines the read side of budget period storage.
type IPeriodReader interface {
	// FindByAccount returns the stored state; a missing row is an all-unset state.
	FindByAccount(ctx context.Context, accountID uuid.UUID) (budget.State, error)
}

// IPeriodWriter defines budget period operations available inside a write
// transaction.
type IPeriodWriter interface {
	IPeriodReader
	Create(ctx context.Context, accountID uuid.UUID) error
	Save(ctx context.Context, accountID uuid.UUID, state budget.State) error
}

var (
	_ IPeriodReader = (*Reader)(nil)
	_ IPeriodWriter = (*Writer)(nil)
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByAccount(ctx context.Context, accountID uuid.UUID) (budget.State, error) {
	q := psql.Select(
		sm.Columns("account_id", "limits", "start_date", "end_date"),
		sm.From(tableName),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[periodRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return budget.State{}, nil
	}
	if err != nil {
		return budget.State{}, fmt.Errorf("find budget period: %w", err)
	}
	return rowToState(row)
}

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Create inserts the all-unset row that accompanies a new account.
func (w *Writer) Create(ctx context.Context, accountID uuid.UUID) error {
	q := psql.Insert(
		im.Into(tableName, "account_id"),
		im.Values(psql.Arg(accountID)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("insert budget period: %w", err)
	}
	return nil
}

// Save replaces the stored state wholesale, inserting the row when missing.
func (w *Writer) Save(ctx context.Context, accountID uuid.UUID, state budget.State) error {
	limits, start, end, err := stateToColumns(state)
	if err != nil {
		return err
	}

	q := psql.Update(
		um.Table(tableName),
		um.SetCol("limits").ToArg(limits),
		um.SetCol("start_date").ToArg(start),
		um.SetCol("end_date").ToArg(end),
		um.SetCol("updated_at").ToArg(time.Now()),
		um.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return fmt.Errorf("update budget period: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return nil
	}

	insert := psql.Insert(
		im.Into(tableName, "account_id", "limits", "start_date", "end_date"),
		im.Values(psql.Arg(accountID, limits, start, end)),
	)
	if _, err := bob.Exec(ctx, w.tx, insert); err != nil {
		return fmt.Errorf("insert budget period: %w", err)
	}
	return nil
}

// stateToColumns encodes limits as a JSON string (NULL when unset) so lib/pq
// sends it as text rather than bytea.
func stateToColumns(state budget.State) (any, sql.NullTime, sql.NullTime, error) {
	var limits any
	if state.Limits != nil {
		raw, err := json.Marshal(state.Limits)
		if err != nil {
			return nil, sql.NullTime{}, sql.NullTime{}, fmt.Errorf("encode budget limits: %w", err)
		}
		limits = string(raw)
	}

	var start, end sql.NullTime
	if state.Start != nil {
		start = sql.NullTime{Time: *state.Start, Valid: true}
	}
	if state.End != nil {
		end = sql.NullTime{Time: *state.End, Valid: true}
	}
	return limits, start, end, nil
}

func rowToState(row periodRow) (budget.State, error) {
	var state budget.State
	if row.Limits != nil {
		if err := json.Unmarshal(row.Limits, &state.Limits); err != nil {
			return budget.State{}, fmt.Errorf("decode budget limits: %w", err)
		}
		if state.Limits == nil {
			state.Limits = budget.Limits{}
		}
	}
	if row.StartDate.Valid {
		start := budget.DateOf(row.StartDate.Time)
		state.Start = &start
	}
	if row.EndDate.Valid {
		end := budget.DateOf(row.EndDate.Time)
		state.End = &end
	}
	return state, nil
}
