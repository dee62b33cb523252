// Package database defines the destination sink interface and a registry
// of sink implementations, selected by the connection string prefix.
package database

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/geonorm/osmtab/schema"
)

type Config struct {
	// Connection selects and configures the sink, e.g.
	// "csv:out/", "postgres://user@host/db", "sqlite:extract.db".
	Connection string
	Specs      []*schema.TableSpec
}

// DB is a destination sink. Insert calls happen between Begin and End;
// sinks must preserve insertion order per table.
type DB interface {
	// Init creates the destination tables (or files with headers).
	Init() error
	Begin() error
	Insert(table string, row []interface{}) error
	End() error
	Abort() error
	Close() error
}

var sinks = map[string]func(Config) (DB, error){}

func Register(name string, f func(Config) (DB, error)) {
	sinks[name] = f
}

// ConnectionType returns the sink name encoded in a connection string
// ("sqlite:extract.db" -> "sqlite").
func ConnectionType(connection string) string {
	parts := strings.SplitN(connection, ":", 2)
	return parts[0]
}

// Open creates the sink for conf.Connection.
func Open(conf Config) (DB, error) {
	if conf.Specs == nil {
		conf.Specs = schema.Specs()
	}
	newFunc, ok := sinks[ConnectionType(conf.Connection)]
	if !ok {
		return nil, errors.Errorf("unsupported sink type %q", ConnectionType(conf.Connection))
	}
	return newFunc(conf)
}

// NullDb discards all rows. Useful for dry runs and benchmarks.
type NullDb struct{}

func (n *NullDb) Init() error { return nil }
func (n *NullDb) Begin() error { return nil }
func (n *NullDb) Insert(string, []interface{}) error { return nil }
func (n *NullDb) End() error { return nil }
func (n *NullDb) Abort() error { return nil }
func (n *NullDb) Close() error { return nil }

func init() {
	Register("null", func(Config) (DB, error) { return &NullDb{}, nil })
}
