package main

import (
	"fmt"
	"os"

	"github.com/geonorm/osmtab/audit"
	"github.com/geonorm/osmtab/config"
	_ "github.com/geonorm/osmtab/database/csv"
	_ "github.com/geonorm/osmtab/database/postgres"
	_ "github.com/geonorm/osmtab/database/sqlite"
	"github.com/geonorm/osmtab/extract"
	"github.com/geonorm/osmtab/logging"
)

var log = logging.NewLogger("")

func printCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Available commands:")
	fmt.Fprintln(os.Stderr, "\textract")
	fmt.Fprintln(os.Stderr, "\taudit")
	fmt.Fprintln(os.Stderr, "\tversion")
}

func main() {
	if len(os.Args) <= 1 {
		printCmds()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		opts, err := config.ParseExtract(os.Args[2:])
		if err != nil {
			log.Fatal(err)
		}
		logging.SetQuiet(opts.Quiet)
		if err := extract.Run(opts); err != nil {
			log.Fatal(err)
		}
	case "audit":
		opts, err := config.ParseAudit(os.Args[2:])
		if err != nil {
			log.Fatal(err)
		}
		logging.SetQuiet(opts.Quiet)
		reporters, err := audit.ByName(opts.Reports)
		if err != nil {
			log.Fatal(err)
		}
		if err := audit.Run(opts.Input, reporters, os.Stdout); err != nil {
			log.Fatal(err)
		}
	case "version":
		fmt.Println(Version)
	default:
		printCmds()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
}
