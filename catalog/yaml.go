package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSchema is the on-disk schema fixture format:
//
//	tables:
//	  - name: users
//	    columns:
//	      - name: id
//	      - name: team_id
//	        nullable: true
//	views:
//	  - name: members
//	    of: users
//	    columns:
//	      member_team: team_id
//
// Columns are NOT NULL unless marked nullable. A view without a columns map
// passes names through unchanged.
type yamlSchema struct {
	Tables []struct {
		Name    string `yaml:"name"`
		Columns []struct {
			Name     string `yaml:"name"`
			Nullable bool   `yaml:"nullable"`
		} `yaml:"columns"`
	} `yaml:"tables"`
	Views []struct {
		Name    string            `yaml:"name"`
		Of      string            `yaml:"of"`
		Columns map[string]string `yaml:"columns"`
	} `yaml:"views"`
}

// ParseYAML builds a schema snapshot from YAML fixture data. The snapshot is
// validated; an inconsistent fixture is an error.
func ParseYAML(data []byte) (*Schema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parsing schema fixture: %w", err)
	}
	s := New()
	for _, t := range doc.Tables {
		table := Table{Name: t.Name}
		for _, c := range t.Columns {
			table.Columns = append(table.Columns, Column{Name: c.Name, Nullable: c.Nullable})
		}
		s.AddTable(table)
	}
	for _, v := range doc.Views {
		s.AddView(View{Name: v.Name, Of: v.Of, Columns: v.Columns})
	}
	if result := s.Validate(); result.HasErrors() {
		return nil, fmt.Errorf("catalog: invalid schema fixture:\n%s", result)
	}
	return s, nil
}

// LoadYAML reads and parses a schema fixture file.
func LoadYAML(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading schema fixture: %w", err)
	}
	return ParseYAML(data)
}
