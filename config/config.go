package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

// Config mirrors the optional JSON config file. Flags given on the
// command line win over file values.
type Config struct {
	Connection string `json:"connection"`
	RulesFile  string `json:"rules"`
}

const defaultConnection = "csv:."

type Options struct {
	Connection string
	RulesFile  string
	ConfigFile string
	Input      string
	Validate   bool
	SkipBroken bool
	Quiet      bool
	Reports    []string
}

var ExtractFlags = flag.NewFlagSet("extract", flag.ExitOnError)
var AuditFlags = flag.NewFlagSet("audit", flag.ExitOnError)

var extractOpts = Options{}
var auditOpts = Options{}
var auditReports string

func init() {
	ExtractFlags.StringVar(&extractOpts.Connection, "connection", defaultConnection,
		"sink connection (csv:<dir>, postgres://..., sqlite:<file>, null:)")
	ExtractFlags.StringVar(&extractOpts.RulesFile, "rules", "", "YAML normalization rules file")
	ExtractFlags.StringVar(&extractOpts.ConfigFile, "config", "", "JSON config file")
	ExtractFlags.BoolVar(&extractOpts.Validate, "validate", false,
		"validate each shaped row against the table schema (slow)")
	ExtractFlags.BoolVar(&extractOpts.SkipBroken, "skip-broken", false,
		"skip elements that fail shaping or validation instead of aborting")
	ExtractFlags.BoolVar(&extractOpts.Quiet, "quiet", false, "suppress progress output")

	AuditFlags.StringVar(&auditReports, "reports", "",
		"comma separated report names (street,pharmacy,county,phone,postcode); empty runs all")
	AuditFlags.BoolVar(&auditOpts.Quiet, "quiet", false, "suppress progress output")
}

// ParseExtract parses the extract subcommand arguments. The single
// positional argument is the OSM XML input file.
func ParseExtract(args []string) (Options, error) {
	if err := ExtractFlags.Parse(args); err != nil {
		return Options{}, err
	}
	opts := extractOpts
	if err := opts.updateFromConfigFile(); err != nil {
		return Options{}, err
	}
	rest := ExtractFlags.Args()
	if len(rest) != 1 {
		return Options{}, errors.New("extract requires exactly one OSM XML input file")
	}
	opts.Input = rest[0]
	return opts, nil
}

// ParseAudit parses the audit subcommand arguments.
func ParseAudit(args []string) (Options, error) {
	if err := AuditFlags.Parse(args); err != nil {
		return Options{}, err
	}
	opts := auditOpts
	if auditReports != "" {
		opts.Reports = strings.Split(auditReports, ",")
	}
	rest := AuditFlags.Args()
	if len(rest) != 1 {
		return Options{}, errors.New("audit requires exactly one OSM XML input file")
	}
	opts.Input = rest[0]
	return opts, nil
}

func (o *Options) updateFromConfigFile() error {
	if o.ConfigFile == "" {
		return nil
	}
	f, err := os.Open(o.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()
	conf := Config{}
	if err := json.NewDecoder(f).Decode(&conf); err != nil {
		return errors.Wrapf(err, "parsing config file %s", o.ConfigFile)
	}
	if o.Connection == defaultConnection && conf.Connection != "" {
		o.Connection = conf.Connection
	}
	if o.RulesFile == "" {
		o.RulesFile = conf.RulesFile
	}
	return nil
}
