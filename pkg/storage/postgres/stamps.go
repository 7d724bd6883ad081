package postgres

import (
	"context"
	"fmt"

	"stamps/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	stampsTable = "stamps"
)

func (p *PgSQL) StoreStamp(ctx context.Context, stamp domain.Stamp) (*domain.Stamp, error) {
	var row PgStamp
	row.FromDomain(stamp)

	var stored PgStamp
	found, err := p.Builder.Insert(stampsTable).
		Rows(row).
		Returning(&PgStamp{}).
		Executor().ScanStructContext(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("could not store stamp into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert into %s returned no row", stampsTable)
	}

	res := stored.ToDomain()

	return &res, nil
}

func (p *PgSQL) Stamps(ctx context.Context) ([]domain.Stamp, error) {
	var rows []PgStamp
	if err := p.Builder.From(stampsTable).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch stamps from pg: %w", err)
	}

	return pgStampsToDomain(rows), nil
}

// StampByID fetches a stamp by ID. With forUpdate the row is locked with
// SELECT ... FOR UPDATE, which is what serializes concurrent vote toggles on
// the same stamp; the lock is held until the surrounding transaction ends.
func (p *PgSQL) StampByID(ctx context.Context, id domain.StampID, forUpdate bool) (*domain.Stamp, error) {
	ds := p.Builder.From(stampsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id)))
	if forUpdate {
		ds = ds.ForUpdate(goqu.Wait)
	}

	var row PgStamp
	found, err := ds.Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch stamp by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	res := row.ToDomain()

	return &res, nil
}

// DeleteStamp removes the row. Ledger entries referencing the stamp are left
// in place; deletion is terminal.
func (p *PgSQL) DeleteStamp(ctx context.Context, id domain.StampID) (bool, error) {
	res, err := p.Builder.Delete(stampsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete stamp in pg: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected > 0, nil
}

// ApplyVoteDelta adjusts the counters, clamped at zero on the database side
// so a concurrent drift can never push them negative.
func (p *PgSQL) ApplyVoteDelta(ctx context.Context,
	id domain.StampID,
	likeDelta, dislikeDelta int) (int, int, error) {
	var row struct {
		Likes    int `db:"likes"`
		Dislikes int `db:"dislikes"`
	}
	found, err := p.Builder.Update(stampsTable).
		Set(goqu.Record{
			"likes":    goqu.L("GREATEST(0, likes + ?)", likeDelta),
			"dislikes": goqu.L("GREATEST(0, dislikes + ?)", dislikeDelta),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(goqu.I("likes"), goqu.I("dislikes")).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return 0, 0, fmt.Errorf("could not apply vote delta in pg: %w", err)
	}
	if !found {
		return 0, 0, fmt.Errorf("stamp %s vanished mid-transaction", id)
	}

	return row.Likes, row.Dislikes, nil
}
