package parser

import "strings"

// typeAliases covers the vendor spellings the designer UI offers plus the
// internal names pg_query reports for them.
var typeAliases = map[string]string{
	"INT":                      "INTEGER",
	"INT2":                     "SMALLINT",
	"INT4":                     "INTEGER",
	"INT8":                     "BIGINT",
	"FLOAT":                    "REAL",
	"FLOAT4":                   "REAL",
	"FLOAT8":                   "DOUBLE PRECISION",
	"BOOL":                     "BOOLEAN",
	"TIMESTAMP WITH TIME ZONE": "TIMESTAMPTZ",
}

// NormalizeTypeName maps a raw type spelling to its canonical uppercase name,
// keeping any parameter suffix untouched: varchar(255) becomes VARCHAR(255),
// int8 becomes BIGINT. Array types normalize their element type and keep the
// [] suffix. Unknown names pass through uppercased. The function is total
// and idempotent.
func NormalizeTypeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "[]") {
		return NormalizeTypeName(strings.TrimSuffix(raw, "[]")) + "[]"
	}

	name, params := raw, ""
	if i := strings.Index(raw, "("); i >= 0 {
		name, params = raw[:i], raw[i:]
	}
	name = strings.ToUpper(strings.Join(strings.Fields(name), " "))
	if alias, ok := typeAliases[name]; ok {
		name = alias
	}
	return name + params
}
