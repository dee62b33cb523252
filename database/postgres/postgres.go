// Package postgres bulk-loads shaped rows into PostgreSQL with COPY.
package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/geonorm/osmtab/database"
	"github.com/geonorm/osmtab/logging"
	"github.com/geonorm/osmtab/schema"
)

var log = logging.NewLogger("postgres")

func init() {
	database.Register("postgres", New)
	database.Register("postgis", New)
}

type tableTx struct {
	spec *schema.TableSpec
	tx   *sql.Tx
	stmt *sql.Stmt
}

type Postgres struct {
	Db     *sql.DB
	specs  []*schema.TableSpec
	tables map[string]*tableTx
}

func New(conf database.Config) (database.DB, error) {
	db, err := sql.Open("postgres", conf.Connection)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgres connection")
	}
	pg := &Postgres{
		Db:     db,
		specs:  conf.Specs,
		tables: map[string]*tableTx{},
	}
	for _, spec := range conf.Specs {
		pg.tables[spec.Name] = &tableTx{spec: spec}
	}
	return pg, nil
}

func (pg *Postgres) Init() error {
	for _, spec := range pg.specs {
		ddl := createTableSQL(spec)
		if _, err := pg.Db.Exec(ddl); err != nil {
			return errors.Wrapf(err, "creating table %s", spec.Name)
		}
	}
	return nil
}

// Begin opens one transaction per table with a COPY FROM STDIN statement.
// The tables are truncated first, as each run is a full bulk load.
func (pg *Postgres) Begin() error {
	for name, t := range pg.tables {
		tx, err := pg.Db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(fmt.Sprintf(`TRUNCATE TABLE "%s"`, name)); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "truncating %s", name)
		}
		stmt, err := tx.Prepare(pq.CopyIn(name, t.spec.ColumnNames()...))
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "preparing copy for %s", name)
		}
		t.tx = tx
		t.stmt = stmt
	}
	return nil
}

func (pg *Postgres) Insert(table string, row []interface{}) error {
	t, ok := pg.tables[table]
	if !ok {
		return errors.Errorf("unknown table %q", table)
	}
	_, err := t.stmt.Exec(row...)
	return err
}

func (pg *Postgres) End() error {
	for name, t := range pg.tables {
		if t.stmt == nil {
			continue
		}
		if _, err := t.stmt.Exec(); err != nil {
			return errors.Wrapf(err, "flushing copy of %s", name)
		}
		if err := t.stmt.Close(); err != nil {
			return err
		}
		if err := t.tx.Commit(); err != nil {
			return errors.Wrapf(err, "committing %s", name)
		}
		t.stmt = nil
		t.tx = nil
		log.Printf("committed %s", name)
	}
	return nil
}

func (pg *Postgres) Abort() error {
	for _, t := range pg.tables {
		if t.tx != nil {
			t.tx.Rollback()
			t.tx = nil
			t.stmt = nil
		}
	}
	return nil
}

func (pg *Postgres) Close() error {
	return pg.Db.Close()
}

func createTableSQL(spec *schema.TableSpec) string {
	cols := make([]string, 0, len(spec.Columns))
	for _, col := range spec.Columns {
		cols = append(cols, fmt.Sprintf(`"%s" %s`, col.Name, pgType(col.Type)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS \"%s\" (\n    %s\n)",
		spec.Name, strings.Join(cols, ",\n    "))
}

func pgType(t schema.ColumnType) string {
	switch t {
	case schema.IntColumn:
		return "BIGINT"
	case schema.FloatColumn:
		return "DOUBLE PRECISION"
	}
	return "TEXT"
}
