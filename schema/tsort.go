package schema

// sortByReference orders tables so referenced tables come before the tables
// pointing at them, via depth-first search with three-color marking. Among
// independent tables the incoming order is kept. On a reference cycle the
// input order is returned unchanged: export must never drop a table.
func sortByReference(tables []Table) []Table {
	dependencies := make(map[string][]string)
	tableMap := make(map[string]Table)
	for _, table := range tables {
		tableMap[table.Name] = table
		for _, field := range table.Fields {
			if field.ForeignKey != nil && field.ForeignKey.Table != table.Name {
				dependencies[table.Name] = append(dependencies[table.Name], field.ForeignKey.Table)
			}
		}
	}

	sorted := make([]Table, 0, len(tables))
	visited := make(map[string]bool)
	visiting := make(map[string]bool)

	var visit func(string) bool
	visit = func(name string) bool {
		if visiting[name] {
			return false
		}
		if visited[name] {
			return true
		}
		visiting[name] = true
		for _, dep := range dependencies[name] {
			// References to tables outside this set resolve elsewhere.
			if _, ok := tableMap[dep]; !ok {
				continue
			}
			if !visit(dep) {
				return false
			}
		}
		visiting[name] = false
		visited[name] = true
		sorted = append(sorted, tableMap[name])
		return true
	}

	for _, table := range tables {
		if !visit(table.Name) {
			return tables
		}
	}
	return sorted
}
