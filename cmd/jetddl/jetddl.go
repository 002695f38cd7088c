package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	jetschema "github.com/beckay96/jetschema-sub001"
	"github.com/beckay96/jetschema-sub001/util"
)

// version is set via -ldflags
var version = "dev"

func main() {
	util.InitSlog()
	options := parseOptions(os.Args[1:])
	if err := jetschema.Run(options, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func parseOptions(args []string) *jetschema.Options {
	var opts struct {
		File    string `short:"f" long:"file" description:"Read DDL from the file, rather than stdin" value-name:"sql_file" default:"-"`
		Export  bool   `long:"export" description:"Print regenerated DDL instead of the JSON table model"`
		Config  string `long:"config" description:"YAML file to specify: target_tables, skip_tables, max_input_bytes" value-name:"config_file"`
		Debug   bool   `long:"debug" description:"Pretty-print the imported model to stderr"`
		Help    bool   `long:"help" description:"Show this help"`
		Version bool   `long:"version" description:"Show this version"`
	}

	flagParser := flags.NewParser(&opts, flags.None)
	flagParser.Usage = "[OPTIONS] [sql_file] < schema.sql"
	rest, err := flagParser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		flagParser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Printf("jetddl %s\n", version)
		os.Exit(0)
	}

	if len(rest) == 1 && opts.File == "-" {
		opts.File = rest[0]
	} else if len(rest) > 0 {
		fmt.Printf("Unexpected arguments: %v\n\n", rest)
		flagParser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	config, err := jetschema.ParseImportConfig(opts.Config)
	if err != nil {
		log.Fatal(err)
	}

	return &jetschema.Options{
		InputFile: opts.File,
		Export:    opts.Export,
		Debug:     opts.Debug,
		Config:    config,
	}
}
