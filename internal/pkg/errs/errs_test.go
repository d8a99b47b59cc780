//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"civicdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("marked errors match the sentinel with errors.Is", func(t *testing.T) {
		inner := errs.Wrap(errs.New("no rows"), "failed to find service request")
		err := errs.Mark(inner, errs.ErrRequestNotFound)

		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
		assert.ErrorIs(t, err, inner)
	})

	t.Run("the match survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("boom"), errs.ErrStorageFailure), "outer context")
		assert.ErrorIs(t, err, errs.ErrStorageFailure)
	})

	t.Run("stacked marks keep every sentinel reachable", func(t *testing.T) {
		err := errs.Mark(errs.ErrIllegalTransition, errs.ErrUndoNotPossible)

		assert.ErrorIs(t, err, errs.ErrUndoNotPossible)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("a nil error collapses to the sentinel itself", func(t *testing.T) {
		require.Equal(t, errs.ErrRequestNotFound, errs.Mark(nil, errs.ErrRequestNotFound))
	})

	t.Run("unrelated sentinels do not match", func(t *testing.T) {
		err := errs.Mark(errs.New("boom"), errs.ErrNothingToUndo)
		assert.False(t, errors.Is(err, errs.ErrNothingToRedo))
	})
}
