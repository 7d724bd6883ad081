package domain

import "github.com/google/uuid"

// UserID uniquely identifies a user within the system. It is the stable
// identifier supplied by the identity provider (the JWT subject) and is
// assumed not to change mid-session.
type UserID uuid.UUID

func (id UserID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the zero UUID, which marks stamp records
// that predate creator tracking.
func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText implements encoding.TextMarshaler so the ID renders as a
// canonical UUID string in JSON.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*id = UserID(u)

	return nil
}
