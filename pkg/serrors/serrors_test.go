package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"stamps/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestWith_MatchesKind(t *testing.T) {
	err := serrors.With(serrors.ErrNotFound, "stamp %s not found", "abc")

	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.NotErrorIs(t, err, serrors.ErrUnavailable)
	require.Equal(t, "stamp abc not found", err.Error())
}

func TestWrap_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := serrors.Wrap(serrors.ErrUnavailable, cause, "could not commit vote")

	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "could not commit vote: connection reset", err.Error())
	require.Equal(t, cause, err.Cause())
}

func TestKindOnly_ErrorString(t *testing.T) {
	err := serrors.KindOnly(serrors.ErrForbidden)

	require.Equal(t, "FORBIDDEN", err.Error())
	require.Equal(t, serrors.ErrForbidden, err.Kind())
}

func TestIs_ThroughFmtWrapping(t *testing.T) {
	inner := serrors.With(serrors.ErrNotFound, "stamp not found")
	outer := fmt.Errorf("toggle vote: %w", inner)

	require.ErrorIs(t, outer, serrors.ErrNotFound)
}

func TestAs_RecoversSemanticError(t *testing.T) {
	err := fmt.Errorf("outer: %w", serrors.With(serrors.ErrBadRequest, "bad kind"))

	var sErr *serrors.Error
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, serrors.ErrBadRequest, sErr.Kind())
	require.Equal(t, "bad kind", sErr.Message())
}
