// Package schema holds the long-lived table model the diagram editor works
// on, its conversion from parsed DDL, and generation back to SQL text.
// Never touch the database.
package schema

// Position is a table's location on the diagram canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ForeignKey mirrors parser.ForeignKeyRef on the entity side so tables stay
// self-contained once the editor owns them.
type ForeignKey struct {
	Table    string `json:"table"`
	Field    string `json:"field"`
	OnDelete string `json:"on_delete,omitempty"`
	OnUpdate string `json:"on_update,omitempty"`
}

// Field is one column of a diagram table. Check carries the check-constraint
// expression as a first-class attribute; Comment stays free text for the
// editor. The model invariant PrimaryKey => !Nullable is established at
// parse time and assumed everywhere downstream.
type Field struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Nullable     bool        `json:"nullable"`
	PrimaryKey   bool        `json:"primary_key"`
	Unique       bool        `json:"unique"`
	DefaultValue string      `json:"default_value,omitempty"`
	Check        string      `json:"check,omitempty"`
	Comment      string      `json:"comment,omitempty"`
	ForeignKey   *ForeignKey `json:"foreign_key,omitempty"`
}

// Table is the entity the editor displays and mutates. The converter creates
// it; the surrounding application owns it afterwards.
type Table struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Comment  string   `json:"comment,omitempty"`
	Position Position `json:"position"`
	Fields   []Field  `json:"fields"`
}
