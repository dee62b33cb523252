// Package csv writes shaped rows into one CSV file per destination
// table, suitable for bulk-loading into a relational store.
package csv

import (
	gocsv "encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/geonorm/osmtab/database"
	"github.com/geonorm/osmtab/schema"
)

func init() {
	database.Register("csv", New)
}

type table struct {
	spec   *schema.TableSpec
	file   *os.File
	writer *gocsv.Writer
}

// CsvDir writes one <table>.csv per table spec into a directory.
type CsvDir struct {
	dir    string
	tables map[string]*table
}

// New creates a CSV sink. The connection string is "csv:<directory>";
// an empty directory means the current one.
func New(conf database.Config) (database.DB, error) {
	dir := strings.TrimPrefix(conf.Connection, "csv:")
	if dir == "" {
		dir = "."
	}
	db := &CsvDir{dir: dir, tables: map[string]*table{}}
	for _, spec := range conf.Specs {
		db.tables[spec.Name] = &table{spec: spec}
	}
	return db, nil
}

// Init creates the files and writes each header row.
func (c *CsvDir) Init() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	for name, t := range c.tables {
		fname := filepath.Join(c.dir, name+".csv")
		file, err := os.Create(fname)
		if err != nil {
			c.closeAll()
			return errors.Wrapf(err, "creating %s", fname)
		}
		t.file = file
		t.writer = gocsv.NewWriter(file)
		if err := t.writer.Write(t.spec.ColumnNames()); err != nil {
			c.closeAll()
			return errors.Wrapf(err, "writing header of %s", fname)
		}
	}
	return nil
}

func (c *CsvDir) Begin() error { return nil }

func (c *CsvDir) Insert(tableName string, row []interface{}) error {
	t, ok := c.tables[tableName]
	if !ok {
		return errors.Errorf("unknown table %q", tableName)
	}
	record := make([]string, len(row))
	for i, v := range row {
		record[i] = format(v)
	}
	return t.writer.Write(record)
}

func (c *CsvDir) End() error {
	for name, t := range c.tables {
		if t.writer == nil {
			continue
		}
		t.writer.Flush()
		if err := t.writer.Error(); err != nil {
			return errors.Wrapf(err, "flushing %s", name)
		}
	}
	return nil
}

func (c *CsvDir) Abort() error {
	return nil
}

func (c *CsvDir) Close() error {
	return c.closeAll()
}

func (c *CsvDir) closeAll() error {
	var firstErr error
	for _, t := range c.tables {
		if t.file == nil {
			continue
		}
		if err := t.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.file = nil
	}
	return firstErr
}

func format(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
