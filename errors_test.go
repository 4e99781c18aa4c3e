package fkjoin_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/fkjoin"
	"github.com/syssam/fkjoin/jointree"
)

func TestIntegrityError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := &fkjoin.IntegrityError{Message: "trunk relation must be the root of the foreign key join tree (root is relation 1, trunk is relation 0)"}
		assert.Equal(t, "fkjoin: trunk relation must be the root of the foreign key join tree (root is relation 1, trunk is relation 0)", err.Error())
	})

	t.Run("ErrorWithPos", func(t *testing.T) {
		err := &fkjoin.IntegrityError{Message: "foreign key join relations do not form a single rooted tree", At: jointree.Pos{Line: 3, Column: 14}}
		assert.Equal(t, "fkjoin: foreign key join relations do not form a single rooted tree (at 3:14)", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := &fkjoin.IntegrityError{Message: "not a tree"}
		assert.True(t, errors.Is(err, fkjoin.ErrIntegrity))
		assert.False(t, errors.Is(err, fkjoin.ErrUnsupported))
	})

	t.Run("IsIntegrity", func(t *testing.T) {
		err := &fkjoin.IntegrityError{Message: "not a tree"}
		assert.True(t, fkjoin.IsIntegrity(err))

		// Wrapped error
		wrapped := fmt.Errorf("analyzing query: %w", err)
		assert.True(t, fkjoin.IsIntegrity(wrapped))

		// Sentinel error
		assert.True(t, fkjoin.IsIntegrity(fkjoin.ErrIntegrity))

		// Non-matching error
		assert.False(t, fkjoin.IsIntegrity(errors.New("other error")))
		assert.False(t, fkjoin.IsIntegrity(nil))
	})
}

func TestUnsupportedError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := &fkjoin.UnsupportedError{Message: "foreign key join would filter rows", At: jointree.Pos{Line: 7, Column: 2}}
		assert.Equal(t, "fkjoin: foreign key join would filter rows (at 7:2)", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := &fkjoin.UnsupportedError{Message: "unsupported join tree node in foreign key join"}
		assert.True(t, errors.Is(err, fkjoin.ErrUnsupported))
	})

	t.Run("IsUnsupported", func(t *testing.T) {
		err := &fkjoin.UnsupportedError{Message: "would filter rows"}
		assert.True(t, fkjoin.IsUnsupported(err))
		assert.True(t, fkjoin.IsUnsupported(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, fkjoin.IsUnsupported(fkjoin.ErrUnsupported))
		assert.False(t, fkjoin.IsUnsupported(errors.New("other error")))
		assert.False(t, fkjoin.IsUnsupported(nil))
	})
}

func TestSchemaError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := &fkjoin.SchemaError{
			Rel:     2,
			Column:  "team_id",
			Message: "cannot resolve referencing column to a base column",
		}
		assert.Equal(t, `fkjoin: schema error for column "team_id" of relation 2: cannot resolve referencing column to a base column`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("catalog: unknown column")
		err := &fkjoin.SchemaError{Rel: 1, Column: "owner_id", Message: "cannot resolve referencing column to a base column", Cause: cause}
		assert.Equal(t, cause, errors.Unwrap(err))
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "catalog: unknown column")
	})

	t.Run("IsSchema", func(t *testing.T) {
		err := &fkjoin.SchemaError{Rel: 0, Column: "id", Message: "stale metadata"}
		assert.True(t, fkjoin.IsSchema(err))
		assert.True(t, fkjoin.IsSchema(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, fkjoin.IsSchema(fkjoin.ErrSchema))
		assert.False(t, fkjoin.IsSchema(errors.New("other error")))
		assert.False(t, fkjoin.IsSchema(nil))
	})
}
