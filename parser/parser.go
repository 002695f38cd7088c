// Package parser converts CREATE TABLE DDL text into an intermediate table
// representation. It never touches a database: both parse paths work on the
// raw SQL string alone.
package parser

import "log/slog"

// ForeignKeyRef points a column at a referenced table/column.
// Actions are upper-cased and restricted to CASCADE, SET NULL and RESTRICT.
// An empty action covers both an absent clause and an explicit NO ACTION;
// the grammar reports the two identically and they behave identically.
type ForeignKeyRef struct {
	Table    string
	Field    string
	OnDelete string
	OnUpdate string
}

// ParsedField is one column of a parsed table. It only lives for the
// duration of a parse call; the schema package turns it into the long-lived
// diagram entity.
type ParsedField struct {
	Name         string
	Type         string // canonical, see NormalizeTypeName
	Nullable     bool
	PrimaryKey   bool
	Unique       bool
	DefaultValue string // rendered expression text, "" when absent
	Check        string // rendered expression text, "" when absent
	ForeignKey   *ForeignKeyRef
}

// ParsedTable is a parsed CREATE TABLE statement: the table name and its
// columns in declaration order.
type ParsedTable struct {
	Name   string
	Fields []ParsedField
}

func (t *ParsedTable) field(name string) *ParsedField {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// Parser is the contract shared by the AST path and the legacy text path.
type Parser interface {
	Parse(sql string) ([]ParsedTable, error)
}

// Parse extracts every CREATE TABLE statement from sql; all other statements
// are ignored. The AST parser runs first, and on any failure in that path
// the legacy text parser takes over. Parse itself never fails: input in
// which nothing is recognized yields zero tables.
func Parse(sql string) []ParsedTable {
	tables, err := NewPostgresParser().Parse(sql)
	if err == nil {
		return tables
	}
	slog.Debug("AST parse failed, using the fallback parser", "error", err)

	tables, _ = NewFallbackParser().Parse(sql)
	return tables
}
