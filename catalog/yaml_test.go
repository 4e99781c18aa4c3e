package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fkjoin"
	"github.com/syssam/fkjoin/catalog"
	"github.com/syssam/fkjoin/jointree"
)

const fixture = `
tables:
  - name: users
    columns:
      - name: id
      - name: team_id
        nullable: true
  - name: teams
    columns:
      - name: id
views:
  - name: members
    of: users
    columns:
      member_id: id
      member_team: team_id
`

func TestParseYAML(t *testing.T) {
	s, err := catalog.ParseYAML([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Tables())

	users, ok := s.Table("users")
	require.True(t, ok)
	require.Len(t, users.Columns, 2)
	assert.Equal(t, catalog.Column{Name: "id"}, users.Columns[0])
	assert.Equal(t, catalog.Column{Name: "team_id", Nullable: true}, users.Columns[1])

	_, ok = s.View("members")
	assert.True(t, ok)

	r := s.Bind(map[jointree.RelID]string{0: "members"})
	col, err := r.ResolveColumn(0, "member_team")
	require.NoError(t, err)
	assert.Equal(t, fkjoin.BaseColumn{Table: "users", Column: "team_id"}, col)
}

func TestParseYAMLInvalid(t *testing.T) {
	t.Run("malformed document", func(t *testing.T) {
		_, err := catalog.ParseYAML([]byte("tables: {not: [a, list"))
		assert.Error(t, err)
	})

	t.Run("inconsistent schema", func(t *testing.T) {
		_, err := catalog.ParseYAML([]byte("views:\n  - name: members\n    of: users\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid schema fixture")
	})
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	s, err := catalog.LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Tables())

	_, err = catalog.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
