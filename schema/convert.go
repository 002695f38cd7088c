package schema

import (
	"github.com/google/uuid"

	"github.com/beckay96/jetschema-sub001/parser"
	"github.com/beckay96/jetschema-sub001/util"
)

// Imported tables land on a fixed grid so none of them overlap until the
// user drags them around.
const (
	gridColumns = 4
	gridSpanX   = 280
	gridSpanY   = 240
)

// ConvertTables materializes parsed tables into diagram entities, assigning
// fresh ids and grid positions. Output order follows the input; ids are
// unique within the call but not stable across imports.
func ConvertTables(parsed []parser.ParsedTable) []Table {
	tables := make([]Table, len(parsed))
	for i, p := range parsed {
		tables[i] = Table{
			ID:   uuid.NewString(),
			Name: p.Name,
			Position: Position{
				X: (i % gridColumns) * gridSpanX,
				Y: (i / gridColumns) * gridSpanY,
			},
			Fields: util.TransformSlice(p.Fields, convertField),
		}
	}
	return tables
}

func convertField(f parser.ParsedField) Field {
	field := Field{
		ID:           uuid.NewString(),
		Name:         f.Name,
		Type:         f.Type,
		Nullable:     f.Nullable,
		PrimaryKey:   f.PrimaryKey,
		Unique:       f.Unique,
		DefaultValue: f.DefaultValue,
		Check:        f.Check,
	}
	if f.ForeignKey != nil {
		field.ForeignKey = &ForeignKey{
			Table:    f.ForeignKey.Table,
			Field:    f.ForeignKey.Field,
			OnDelete: f.ForeignKey.OnDelete,
			OnUpdate: f.ForeignKey.OnUpdate,
		}
	}
	return field
}

// FilterTables keeps the tables named in targets (all of them, when targets
// is empty) minus the ones named in skips.
func FilterTables(tables []Table, targets, skips []string) []Table {
	var filtered []Table
	for _, table := range tables {
		if len(targets) > 0 && !containsString(targets, table.Name) {
			continue
		}
		if containsString(skips, table.Name) {
			continue
		}
		filtered = append(filtered, table)
	}
	return filtered
}

func containsString(strs []string, str string) bool {
	for _, s := range strs {
		if s == str {
			return true
		}
	}
	return false
}
