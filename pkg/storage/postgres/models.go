package postgres

import (
	"database/sql"
	"time"

	"stamps/pkg/domain"

	"github.com/google/uuid"
)

type PgStamp struct {
	ID        uuid.UUID     `db:"id"         goqu:"skipinsert"`
	CreatorID uuid.NullUUID `db:"creator_id"`

	Type        string `db:"type"`
	Title       string `db:"title"`
	Description string `db:"description"`

	Lat float64 `db:"lat"`
	Lng float64 `db:"lng"`

	Likes    int `db:"likes"    goqu:"skipinsert"`
	Dislikes int `db:"dislikes" goqu:"skipinsert"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgStamp) ToDomain() domain.Stamp {
	var creator domain.UserID
	if p.CreatorID.Valid {
		creator = domain.UserID(p.CreatorID.UUID)
	}

	return domain.Stamp{
		ID:          domain.StampID(p.ID),
		CreatorID:   creator,
		Type:        p.Type,
		Title:       p.Title,
		Description: p.Description,
		Coordinates: domain.Coordinates{Lat: p.Lat, Lng: p.Lng},
		Likes:       p.Likes,
		Dislikes:    p.Dislikes,
		CreatedAt:   p.CreatedAt,
	}
}

func (p *PgStamp) FromDomain(stamp domain.Stamp) {
	*p = PgStamp{
		ID: uuid.UUID(stamp.ID),
		CreatorID: uuid.NullUUID{
			UUID:  uuid.UUID(stamp.CreatorID),
			Valid: !stamp.CreatorID.IsZero(),
		},
		Type:        stamp.Type,
		Title:       stamp.Title,
		Description: stamp.Description,
		Lat:         stamp.Coordinates.Lat,
		Lng:         stamp.Coordinates.Lng,
		Likes:       stamp.Likes,
		Dislikes:    stamp.Dislikes,
		CreatedAt:   stamp.CreatedAt,
	}
}

func pgStampsToDomain(rows []PgStamp) []domain.Stamp {
	out := make([]domain.Stamp, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out
}

type PgVote struct {
	UserID  uuid.UUID `db:"user_id"`
	StampID uuid.UUID `db:"stamp_id"`
	Kind    string    `db:"kind"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}
