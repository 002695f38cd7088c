package parser

import (
	"regexp"
	"strings"
)

// FallbackParser is the reduced-fidelity text path used when the AST parser
// fails. It recognizes non-nested CREATE TABLE bodies, tolerating one level
// of parentheses inside the body (type parameters, inline expressions) via
// depth counting rather than regex. It extracts no foreign keys and no
// check expressions, and DEFAULT values stop at the first whitespace.
type FallbackParser struct{}

func NewFallbackParser() FallbackParser {
	return FallbackParser{}
}

var (
	lineCommentRe = regexp.MustCompile(`(?m)--.*$`)
	createTableRe = regexp.MustCompile(`(?i)\bCREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?("[^"]+"|` + "`[^`]+`" + `|[A-Za-z_][A-Za-z0-9_.$]*)\s*\(`)
	notNullRe     = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	defaultRe     = regexp.MustCompile(`(?i)\bDEFAULT\s+([^\s,]+)`)
)

// Statements starting with these are table-level clauses; the fallback drops
// them entirely.
var tableLevelPrefixes = []string{"CONSTRAINT", "PRIMARY KEY", "FOREIGN KEY", "UNIQUE", "CHECK"}

// Parse scans the text for CREATE TABLE statements. The error return exists
// only to satisfy the Parser contract; it is always nil. Regions that do not
// match yield fewer or zero tables instead of failing.
func (p FallbackParser) Parse(sql string) ([]ParsedTable, error) {
	sql = lineCommentRe.ReplaceAllString(sql, "")
	sql = strings.Join(strings.Fields(sql), " ")

	var tables []ParsedTable
	for _, loc := range createTableRe.FindAllStringSubmatchIndex(sql, -1) {
		name := strings.Trim(sql[loc[2]:loc[3]], "`\"")
		// The match ends on the opening paren; scan to its partner.
		body, ok := parenBody(sql[loc[1]-1:])
		if !ok {
			continue
		}

		table := ParsedTable{Name: name}
		for _, stmt := range splitTopLevel(body) {
			if field, ok := p.parseFieldStatement(stmt); ok {
				table.Fields = append(table.Fields, field)
			}
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (p FallbackParser) parseFieldStatement(stmt string) (ParsedField, bool) {
	stmt = strings.TrimSpace(stmt)
	upper := strings.ToUpper(stmt)
	for _, prefix := range tableLevelPrefixes {
		if isClausePrefix(upper, prefix) {
			return ParsedField{}, false
		}
	}

	name, rest := cutToken(stmt)
	if name == "" {
		return ParsedField{}, false
	}
	typ, rest := scanType(rest)
	if typ == "" {
		return ParsedField{}, false
	}

	upperRest := strings.ToUpper(rest)
	field := ParsedField{
		Name:       strings.Trim(name, "`\""),
		Type:       NormalizeTypeName(typ),
		Nullable:   !notNullRe.MatchString(rest),
		PrimaryKey: strings.Contains(upperRest, "PRIMARY KEY"),
		Unique:     strings.Contains(upperRest, "UNIQUE"),
	}
	if m := defaultRe.FindStringSubmatch(rest); m != nil {
		field.DefaultValue = m[1]
	}
	if field.PrimaryKey {
		field.Nullable = false
	}
	return field, true
}

// isClausePrefix reports whether upper starts with the clause keyword itself,
// not merely with a column name sharing the spelling (unique_code, checked).
func isClausePrefix(upper, prefix string) bool {
	if !strings.HasPrefix(upper, prefix) {
		return false
	}
	rest := upper[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "(")
}

// scanType consumes the type token including an attached parameter list, plus
// the second word of two-word spellings like DOUBLE PRECISION.
func scanType(s string) (string, string) {
	typ, rest := cutToken(s)
	if typ == "" {
		return "", ""
	}
	word, _, _ := strings.Cut(strings.ToUpper(rest), "(")
	word, _, _ = strings.Cut(word, " ")
	if word == "PRECISION" || word == "VARYING" {
		second, tail := cutToken(rest)
		return typ + " " + second, tail
	}
	return typ, rest
}

// cutToken cuts the next space-separated token, treating parenthesized runs
// as part of the token so NUMERIC(10, 2) stays whole.
func cutToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 {
				return s[:i], strings.TrimSpace(s[i+1:])
			}
		}
	}
	return s, ""
}

// parenBody returns the content between the opening paren at s[0] and its
// matching closing paren.
func parenBody(s string) (string, bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], true
			}
		}
	}
	return "", false
}

// splitTopLevel splits a table body on commas at paren depth zero.
func splitTopLevel(body string) []string {
	var stmts []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				stmts = append(stmts, body[start:i])
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(body[start:]); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}
