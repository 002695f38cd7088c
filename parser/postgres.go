package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	pgquery "github.com/pganalyze/pg_query_go/v2"
)

// Clauses the grammar cannot digest are stripped up front. This is a plain
// regex pass over the raw text: it is not literal-aware, so a string
// constant containing one of these clauses would be mangled.
var (
	tablespaceRe   = regexp.MustCompile(`(?i)\s+TABLESPACE\s+[A-Za-z_][A-Za-z0-9_$]*`)
	tableOptionsRe = regexp.MustCompile(`(?i)\)\s*(ENGINE|AUTO_INCREMENT|DEFAULT\s+CHARSET|CHARSET|COLLATE)\s*=[^;]*;`)
)

// PostgresParser is the primary import path: it parses the whole input with
// the PostgreSQL grammar and extracts every CREATE TABLE statement.
type PostgresParser struct{}

func NewPostgresParser() PostgresParser {
	return PostgresParser{}
}

// Parse runs preprocessing, the grammar parse and column extraction. Errors
// are returned so the caller can decide on the fallback; a panic anywhere in
// the path is converted into an error for the same reason.
func (p PostgresParser) Parse(sql string) (tables []ParsedTable, err error) {
	defer func() {
		if r := recover(); r != nil {
			tables, err = nil, fmt.Errorf("postgres parser panic: %v", r)
		}
	}()

	result, err := pgquery.Parse(p.preprocess(sql))
	if err != nil {
		return nil, err
	}

	for _, raw := range result.Stmts {
		if raw.Stmt == nil {
			continue
		}
		// Statements other than CREATE TABLE are silently ignored.
		if stmt, ok := raw.Stmt.Node.(*pgquery.Node_CreateStmt); ok {
			tables = append(tables, p.parseCreateStmt(stmt.CreateStmt))
		}
	}
	return tables, nil
}

func (p PostgresParser) preprocess(sql string) string {
	sql = tablespaceRe.ReplaceAllString(sql, "")
	sql = tableOptionsRe.ReplaceAllString(sql, ");")
	sql = strings.ReplaceAll(sql, "`", `"`)
	return sql
}

func (p PostgresParser) parseCreateStmt(stmt *pgquery.CreateStmt) ParsedTable {
	table := ParsedTable{Name: tableName(stmt.Relation)}

	for _, elt := range stmt.TableElts {
		if col, ok := elt.Node.(*pgquery.Node_ColumnDef); ok {
			table.Fields = append(table.Fields, p.parseColumnDef(col.ColumnDef))
		}
	}
	// Constraint elements are applied after all columns exist, since they
	// may reference columns declared later in the body.
	for _, elt := range stmt.TableElts {
		if c, ok := elt.Node.(*pgquery.Node_Constraint); ok {
			p.applyTableConstraint(&table, c.Constraint)
		}
	}
	return table
}

// parseColumnDef extracts one column. Its constraint list is walked in
// declaration order with last write winning per attribute.
func (p PostgresParser) parseColumnDef(def *pgquery.ColumnDef) ParsedField {
	field := ParsedField{
		Name:     def.Colname,
		Type:     NormalizeTypeName(typeNameString(def.TypeName)),
		Nullable: true,
	}

	for _, node := range def.Constraints {
		c, ok := node.Node.(*pgquery.Node_Constraint)
		if !ok {
			continue
		}
		switch c.Constraint.Contype {
		case pgquery.ConstrType_CONSTR_NOTNULL:
			field.Nullable = false
		case pgquery.ConstrType_CONSTR_NULL:
			field.Nullable = true
		case pgquery.ConstrType_CONSTR_PRIMARY:
			field.PrimaryKey = true
			field.Nullable = false
		case pgquery.ConstrType_CONSTR_UNIQUE:
			field.Unique = true
		case pgquery.ConstrType_CONSTR_DEFAULT:
			field.DefaultValue = renderExpr(c.Constraint.RawExpr)
		case pgquery.ConstrType_CONSTR_CHECK:
			field.Check = renderExpr(c.Constraint.RawExpr)
		case pgquery.ConstrType_CONSTR_FOREIGN:
			field.ForeignKey = parseReferences(c.Constraint)
		}
	}

	// A later NULL must not leave a primary key nullable.
	if field.PrimaryKey {
		field.Nullable = false
	}
	return field
}

// applyTableConstraint folds a table-scoped constraint back onto the columns
// it names. Only single-column keys have a per-field home; multi-column keys
// and table-level CHECK expressions are dropped.
func (p PostgresParser) applyTableConstraint(table *ParsedTable, c *pgquery.Constraint) {
	switch c.Contype {
	case pgquery.ConstrType_CONSTR_PRIMARY:
		// A composite key has no per-field home; folding it would make every
		// member an inline PRIMARY KEY, which is a different constraint.
		if keys := keyNames(c.Keys); len(keys) == 1 {
			if field := table.field(keys[0]); field != nil {
				field.PrimaryKey = true
				field.Nullable = false
			}
		}
	case pgquery.ConstrType_CONSTR_UNIQUE:
		if keys := keyNames(c.Keys); len(keys) == 1 {
			if field := table.field(keys[0]); field != nil {
				field.Unique = true
			}
		}
	case pgquery.ConstrType_CONSTR_FOREIGN:
		if keys := keyNames(c.FkAttrs); len(keys) == 1 {
			if field := table.field(keys[0]); field != nil {
				field.ForeignKey = parseReferences(c)
			}
		}
	}
}

func parseReferences(c *pgquery.Constraint) *ForeignKeyRef {
	if c.Pktable == nil {
		return nil
	}
	fk := &ForeignKeyRef{
		Table:    tableName(c.Pktable),
		Field:    "id",
		OnDelete: referentialAction(c.FkDelAction),
		OnUpdate: referentialAction(c.FkUpdAction),
	}
	if keys := keyNames(c.PkAttrs); len(keys) > 0 {
		fk.Field = keys[0]
	}
	return fk
}

// referentialAction decodes the single-letter action codes pg_query reports.
// Code "a" covers both an explicit NO ACTION and an absent clause, so it
// maps to unset.
func referentialAction(code string) string {
	switch code {
	case "c":
		return "CASCADE"
	case "n":
		return "SET NULL"
	case "r":
		return "RESTRICT"
	default:
		return ""
	}
}

func keyNames(keys []*pgquery.Node) []string {
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if s, ok := key.Node.(*pgquery.Node_String_); ok {
			names = append(names, s.String_.Str)
		}
	}
	return names
}

func tableName(rel *pgquery.RangeVar) string {
	if rel == nil {
		return ""
	}
	if rel.Schemaname != "" && rel.Schemaname != "public" {
		return rel.Schemaname + "." + rel.Relname
	}
	return rel.Relname
}

func typeNameString(t *pgquery.TypeName) string {
	if t == nil {
		return ""
	}
	var parts []string
	for _, name := range t.Names {
		if s, ok := name.Node.(*pgquery.Node_String_); ok && s.String_.Str != "pg_catalog" {
			parts = append(parts, s.String_.Str)
		}
	}
	name := strings.Join(parts, ".")
	if mods := typeModifiers(t.Typmods); mods != "" {
		name += "(" + mods + ")"
	}
	for range t.ArrayBounds {
		name += "[]"
	}
	return name
}

func typeModifiers(mods []*pgquery.Node) string {
	parts := make([]string, 0, len(mods))
	for _, mod := range mods {
		c, ok := mod.Node.(*pgquery.Node_AConst)
		if !ok || c.AConst.Val == nil {
			return ""
		}
		i, ok := c.AConst.Val.Node.(*pgquery.Node_Integer)
		if !ok {
			return ""
		}
		parts = append(parts, strconv.FormatInt(int64(i.Integer.Ival), 10))
	}
	return strings.Join(parts, ",")
}
