package schema

import (
	"fmt"
	"strings"

	"github.com/beckay96/jetschema-sub001/util"
)

// GenerateDDLs renders every table as a CREATE TABLE statement, blank-line
// separated and each terminated with a semicolon, referenced tables first.
// The entities are trusted to satisfy the model invariants; nothing is
// re-validated here.
func GenerateDDLs(tables []Table) string {
	statements := util.TransformSlice(sortByReference(tables), generateTable)
	return strings.Join(statements, "\n\n")
}

func generateTable(table Table) string {
	clauses := util.TransformSlice(table.Fields, generateColumn)
	for _, field := range table.Fields {
		if field.ForeignKey != nil {
			clauses = append(clauses, generateForeignKey(field))
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", table.Name, strings.Join(clauses, ",\n  "))
}

// generateColumn emits one column clause. PRIMARY KEY implies NOT NULL and
// subsumes UNIQUE, so neither is repeated next to it.
func generateColumn(field Field) string {
	parts := []string{field.Name, field.Type}
	if field.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	} else if !field.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if field.Unique && !field.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}
	if field.DefaultValue != "" {
		parts = append(parts, "DEFAULT "+field.DefaultValue)
	}
	if field.Check != "" {
		parts = append(parts, "CHECK ("+field.Check+")")
	}
	return strings.Join(parts, " ")
}

// Foreign keys are emitted as separate clauses after all columns, never
// inline on the column.
func generateForeignKey(field Field) string {
	fk := field.ForeignKey
	clause := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", field.Name, fk.Table, fk.Field)
	if fk.OnDelete != "" {
		clause += " ON DELETE " + fk.OnDelete
	}
	if fk.OnUpdate != "" {
		clause += " ON UPDATE " + fk.OnUpdate
	}
	return clause
}
