package postgres

import (
	"context"
	"fmt"

	"stamps/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	votesTable = "stamp_votes"
)

func (p *PgSQL) VoteByUser(ctx context.Context,
	userID domain.UserID,
	stampID domain.StampID) (domain.VoteKind, error) {
	var row PgVote
	found, err := p.Builder.From(votesTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("stamp_id").Eq(uuid.UUID(stampID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return domain.VoteNone, fmt.Errorf("could not fetch vote from pg: %w", err)
	}
	if !found {
		return domain.VoteNone, nil
	}

	return domain.VoteKind(row.Kind), nil
}

func (p *PgSQL) UserVotes(ctx context.Context,
	userID domain.UserID) (map[domain.StampID]domain.VoteKind, error) {
	var rows []PgVote
	if err := p.Builder.From(votesTable).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch user votes from pg: %w", err)
	}

	votes := make(map[domain.StampID]domain.VoteKind, len(rows))
	for i := range rows {
		votes[domain.StampID(rows[i].StampID)] = domain.VoteKind(rows[i].Kind)
	}

	return votes, nil
}

// SetVote upserts the ledger entry. The (user_id, stamp_id) primary key is
// what guarantees a user never holds two kinds on one stamp.
func (p *PgSQL) SetVote(ctx context.Context,
	userID domain.UserID,
	stampID domain.StampID,
	kind domain.VoteKind) error {
	_, err := p.Builder.Insert(votesTable).
		Rows(PgVote{
			UserID:  uuid.UUID(userID),
			StampID: uuid.UUID(stampID),
			Kind:    string(kind),
		}).
		OnConflict(goqu.DoUpdate("user_id, stamp_id", goqu.Record{
			"kind":       string(kind),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not set vote in pg: %w", err)
	}

	return nil
}

func (p *PgSQL) ClearVote(ctx context.Context,
	userID domain.UserID,
	stampID domain.StampID) error {
	_, err := p.Builder.Delete(votesTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("stamp_id").Eq(uuid.UUID(stampID)),
		).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not clear vote in pg: %w", err)
	}

	return nil
}
