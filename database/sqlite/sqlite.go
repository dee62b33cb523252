// Package sqlite loads shaped rows into a single-file SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/geonorm/osmtab/database"
	"github.com/geonorm/osmtab/schema"
)

func init() {
	database.Register("sqlite", New)
}

type table struct {
	spec *schema.TableSpec
	stmt *sql.Stmt
}

type Sqlite struct {
	Db     *sql.DB
	specs  []*schema.TableSpec
	tx     *sql.Tx
	tables map[string]*table
}

// New opens (or creates) the database file from a "sqlite:<path>"
// connection string.
func New(conf database.Config) (database.DB, error) {
	path := strings.TrimPrefix(conf.Connection, "sqlite:")
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(off)")
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite db %s", path)
	}
	s := &Sqlite{Db: db, specs: conf.Specs, tables: map[string]*table{}}
	for _, spec := range conf.Specs {
		s.tables[spec.Name] = &table{spec: spec}
	}
	return s, nil
}

func (s *Sqlite) Init() error {
	for _, spec := range s.specs {
		if _, err := s.Db.Exec(createTableSQL(spec)); err != nil {
			return errors.Wrapf(err, "creating table %s", spec.Name)
		}
		if _, err := s.Db.Exec(fmt.Sprintf(`DELETE FROM "%s"`, spec.Name)); err != nil {
			return errors.Wrapf(err, "clearing table %s", spec.Name)
		}
	}
	return nil
}

// Begin starts one transaction for all tables with a prepared INSERT per
// table. A single transaction keeps the bulk load fast.
func (s *Sqlite) Begin() error {
	tx, err := s.Db.Begin()
	if err != nil {
		return err
	}
	s.tx = tx
	for name, t := range s.tables {
		stmt, err := tx.Prepare(insertSQL(t.spec))
		if err != nil {
			tx.Rollback()
			s.tx = nil
			return errors.Wrapf(err, "preparing insert for %s", name)
		}
		t.stmt = stmt
	}
	return nil
}

func (s *Sqlite) Insert(tableName string, row []interface{}) error {
	t, ok := s.tables[tableName]
	if !ok {
		return errors.Errorf("unknown table %q", tableName)
	}
	_, err := t.stmt.Exec(row...)
	return err
}

func (s *Sqlite) End() error {
	if s.tx == nil {
		return nil
	}
	for _, t := range s.tables {
		if t.stmt != nil {
			t.stmt.Close()
			t.stmt = nil
		}
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

func (s *Sqlite) Abort() error {
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	return nil
}

func (s *Sqlite) Close() error {
	return s.Db.Close()
}

func createTableSQL(spec *schema.TableSpec) string {
	cols := make([]string, 0, len(spec.Columns))
	for _, col := range spec.Columns {
		cols = append(cols, fmt.Sprintf(`"%s" %s`, col.Name, sqliteType(col.Type)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS \"%s\" (\n    %s\n)",
		spec.Name, strings.Join(cols, ",\n    "))
}

func insertSQL(spec *schema.TableSpec) string {
	names := spec.ColumnNames()
	cols := make([]string, len(names))
	vars := make([]string, len(names))
	for i, name := range names {
		cols[i] = `"` + name + `"`
		vars[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`,
		spec.Name, strings.Join(cols, ", "), strings.Join(vars, ", "))
}

func sqliteType(t schema.ColumnType) string {
	switch t {
	case schema.IntColumn:
		return "INTEGER"
	case schema.FloatColumn:
		return "REAL"
	}
	return "TEXT"
}
