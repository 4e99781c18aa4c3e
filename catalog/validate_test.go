package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fkjoin/catalog"
)

func TestValidateClean(t *testing.T) {
	result := usersSchema().Validate()
	assert.False(t, result.HasErrors())
	assert.Equal(t, "No issues found", result.String())
}

func TestValidateDuplicateColumn(t *testing.T) {
	s := catalog.New()
	s.AddTable(catalog.Table{Name: "users", Columns: []catalog.Column{
		{Name: "id"},
		{Name: "id"},
	}})
	result := s.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.String(), "users.id: duplicate column name")
}

func TestValidateViewOverMissingRelation(t *testing.T) {
	s := catalog.New()
	s.AddView(catalog.View{Name: "members", Of: "users"})
	result := s.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.String(), `non-existent relation "users"`)
}

func TestValidateViewNameCollision(t *testing.T) {
	s := catalog.New()
	s.AddTable(catalog.Table{Name: "users", Columns: []catalog.Column{{Name: "id"}}})
	s.AddView(catalog.View{Name: "users", Of: "users"})
	result := s.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.String(), "collides with a table")
}

func TestValidateViewColumnMapping(t *testing.T) {
	s := catalog.New()
	s.AddTable(catalog.Table{Name: "users", Columns: []catalog.Column{{Name: "id"}}})
	s.AddView(catalog.View{Name: "members", Of: "users", Columns: map[string]string{
		"member_id": "missing_id",
	}})
	result := s.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.String(), `non-existent column "missing_id"`)
}

func TestValidateViewCycle(t *testing.T) {
	s := catalog.New()
	s.AddView(catalog.View{Name: "a", Of: "b"})
	s.AddView(catalog.View{Name: "b", Of: "a"})
	result := s.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.String(), "view definition cycle")
}
