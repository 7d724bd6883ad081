package domain

import (
	"time"

	"github.com/google/uuid"
)

// StampID uniquely identifies a stamp.
// It wraps uuid.UUID to provide type safety at the domain layer.
type StampID uuid.UUID

func (id StampID) String() string { return uuid.UUID(id).String() }

// MarshalText implements encoding.TextMarshaler so the ID renders as a
// canonical UUID string in JSON.
func (id StampID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *StampID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*id = StampID(u)

	return nil
}

// Coordinates is a geographic point in degrees (WGS 84).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stamp is a user-created, location-tagged point of interest with aggregate
// like/dislike counters. All fields except the counters are immutable after
// creation; the counters are mutated only through the vote engine.
type Stamp struct {
	// ID is assigned by the store at creation time.
	ID StampID `json:"id"`
	// CreatorID identifies the creating user. It is zero for legacy records
	// that predate creator tracking.
	CreatorID UserID `json:"creatorId,omitzero"`

	// Type, Title and Description are free text. Missing values default to
	// the empty string.
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Coordinates locate the stamp. Missing values default to 0.
	Coordinates Coordinates `json:"coordinates"`

	// Likes and Dislikes are aggregate counters, never negative.
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`

	// CreatedAt is the creation timestamp, assigned by the store.
	CreatedAt time.Time `json:"createdAt"`
}
