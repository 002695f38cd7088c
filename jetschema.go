// Package jetschema wires the DDL core together for commands: options, the
// import config, and the Run driver shared by all entry points.
package jetschema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/beckay96/jetschema-sub001/parser"
	"github.com/beckay96/jetschema-sub001/schema"
)

type Options struct {
	InputFile string // "" or "-" reads stdin
	Export    bool   // regenerate DDL instead of printing the JSON model
	Debug     bool   // pretty-print the imported model to stderr
	Config    ImportConfig
}

// Run reads DDL, imports it into the table model, and writes either the JSON
// model or regenerated DDL to out. Unrecognized SQL is not an error; it just
// produces zero tables.
func Run(options *Options, out io.Writer) error {
	sql, err := readInput(options.InputFile)
	if err != nil {
		return err
	}

	ceiling := options.Config.MaxInputBytes
	if ceiling <= 0 {
		ceiling = defaultMaxInputBytes
	}
	if len(sql) > ceiling {
		return fmt.Errorf("input is %d bytes, above the %d byte ceiling", len(sql), ceiling)
	}

	tables := schema.ConvertTables(parser.Parse(sql))
	tables = schema.FilterTables(tables, options.Config.TargetTables, options.Config.SkipTables)

	if options.Debug {
		pp.Fprintln(os.Stderr, tables)
	}

	if options.Export {
		if len(tables) == 0 {
			fmt.Fprintln(out, "-- No table exists --")
			return nil
		}
		fmt.Fprintln(out, schema.GenerateDDLs(tables))
		return nil
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tables)
}

func readInput(file string) (string, error) {
	if file == "" || file == "-" {
		buf, err := io.ReadAll(os.Stdin)
		return string(buf), err
	}
	buf, err := os.ReadFile(file)
	return string(buf), err
}
