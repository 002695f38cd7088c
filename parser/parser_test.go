package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnsAndConstraints(t *testing.T) {
	tables := Parse(`CREATE TABLE users (id UUID PRIMARY KEY DEFAULT gen_random_uuid(), email VARCHAR(255) NOT NULL UNIQUE, age INT);`)
	require.Len(t, tables, 1)
	assert.Equal(t, ParsedTable{
		Name: "users",
		Fields: []ParsedField{
			{Name: "id", Type: "UUID", Nullable: false, PrimaryKey: true, DefaultValue: "gen_random_uuid()"},
			{Name: "email", Type: "VARCHAR(255)", Nullable: false, Unique: true},
			{Name: "age", Type: "INTEGER", Nullable: true},
		},
	}, tables[0])
}

func TestParseColumnForeignKey(t *testing.T) {
	tables := Parse(`CREATE TABLE posts (id SERIAL PRIMARY KEY, user_id INTEGER REFERENCES users(id) ON DELETE CASCADE);`)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Fields, 2)
	assert.Equal(t, &ForeignKeyRef{Table: "users", Field: "id", OnDelete: "CASCADE"}, tables[0].Fields[1].ForeignKey)
}

func TestParseForeignKeyDefaultsToIDColumn(t *testing.T) {
	tables := Parse(`CREATE TABLE posts (user_id INTEGER REFERENCES users);`)
	require.Len(t, tables, 1)
	assert.Equal(t, &ForeignKeyRef{Table: "users", Field: "id"}, tables[0].Fields[0].ForeignKey)
}

func TestParseTableLevelConstraints(t *testing.T) {
	tables := Parse(`CREATE TABLE memberships (
		user_id INTEGER NOT NULL,
		team_id INTEGER,
		role TEXT,
		PRIMARY KEY (user_id),
		UNIQUE (role),
		FOREIGN KEY (team_id) REFERENCES teams(id) ON UPDATE RESTRICT
	);`)
	require.Len(t, tables, 1)

	userID := tables[0].Fields[0]
	assert.True(t, userID.PrimaryKey)
	assert.False(t, userID.Nullable)

	teamID := tables[0].Fields[1]
	assert.Equal(t, &ForeignKeyRef{Table: "teams", Field: "id", OnUpdate: "RESTRICT"}, teamID.ForeignKey)

	assert.True(t, tables[0].Fields[2].Unique)
}

func TestParseCompositePrimaryKeyNotFolded(t *testing.T) {
	tables := Parse(`CREATE TABLE memberships (
		user_id INTEGER NOT NULL,
		team_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, team_id)
	);`)
	require.Len(t, tables, 1)

	// Marking both members as inline primary keys would turn one composite
	// key into two single-column keys, which PostgreSQL rejects on export.
	for _, field := range tables[0].Fields {
		assert.False(t, field.PrimaryKey, field.Name)
	}
}

func TestParseNullConstraintDeclarationOrder(t *testing.T) {
	tables := Parse(`CREATE TABLE t (a INT NOT NULL NULL, b INT NULL NOT NULL, c INT PRIMARY KEY NULL);`)
	require.Len(t, tables, 1)

	// Last write wins for NULL/NOT NULL.
	assert.True(t, tables[0].Fields[0].Nullable)
	assert.False(t, tables[0].Fields[1].Nullable)

	// A primary key can never end up nullable, whatever came after it.
	c := tables[0].Fields[2]
	assert.True(t, c.PrimaryKey)
	assert.False(t, c.Nullable)
}

func TestParsePrimaryKeyImpliesNotNull(t *testing.T) {
	tables := Parse(`CREATE TABLE t (a INT PRIMARY KEY, b TEXT, c UUID PRIMARY KEY DEFAULT gen_random_uuid());`)
	require.Len(t, tables, 1)
	for _, field := range tables[0].Fields {
		if field.PrimaryKey {
			assert.False(t, field.Nullable, "field %s", field.Name)
		}
	}
}

func TestParseIgnoresOtherStatements(t *testing.T) {
	tables := Parse(`
		CREATE INDEX idx_name ON users (name);
		CREATE TABLE tags (id INT);
		DROP TABLE old_stuff;
	`)
	require.Len(t, tables, 1)
	assert.Equal(t, "tags", tables[0].Name)
}

func TestParseMalformedInputNeverFails(t *testing.T) {
	assert.Empty(t, Parse("CREATE TABLE ((("))
	assert.Empty(t, Parse("this is not sql at all"))
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse(";;;"))
}

func TestParseFallsBackOnVendorSyntax(t *testing.T) {
	// AUTO_INCREMENT as a column attribute is not PostgreSQL; the text
	// parser still recovers names and types.
	tables := Parse(`CREATE TABLE legacy (id INT AUTO_INCREMENT, name TEXT) TYPE=MyISAM;`)
	require.Len(t, tables, 1)
	assert.Equal(t, "legacy", tables[0].Name)
	require.Len(t, tables[0].Fields, 2)
	assert.Equal(t, "INTEGER", tables[0].Fields[0].Type)
	assert.Equal(t, "TEXT", tables[0].Fields[1].Type)
}

func TestParseSchemaQualifiedNames(t *testing.T) {
	tables := Parse(`CREATE TABLE public.users (id INT); CREATE TABLE audit.events (id INT);`)
	require.Len(t, tables, 2)
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "audit.events", tables[1].Name)
}
