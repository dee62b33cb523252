// Package schema fixes the field/type contract of the shaped record
// tables and validates rows against it before they reach a sink.
package schema

import (
	"fmt"
	"strings"
)

type ColumnType int

const (
	IntColumn ColumnType = iota
	FloatColumn
	StringColumn
)

func (t ColumnType) String() string {
	switch t {
	case IntColumn:
		return "int"
	case FloatColumn:
		return "float"
	case StringColumn:
		return "string"
	}
	return "unknown"
}

type Column struct {
	Name string
	Type ColumnType
}

// TableSpec fixes the name and column order of one destination table.
type TableSpec struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the header/column names in sink order.
func (s *TableSpec) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

var Nodes = &TableSpec{
	Name: "nodes",
	Columns: []Column{
		{"id", IntColumn},
		{"lat", FloatColumn},
		{"lon", FloatColumn},
		{"user", StringColumn},
		{"uid", IntColumn},
		{"version", IntColumn},
		{"changeset", IntColumn},
		{"timestamp", StringColumn},
	},
}

var NodeTags = &TableSpec{
	Name: "nodes_tags",
	Columns: []Column{
		{"id", IntColumn},
		{"key", StringColumn},
		{"value", StringColumn},
		{"type", StringColumn},
	},
}

var Ways = &TableSpec{
	Name: "ways",
	Columns: []Column{
		{"id", IntColumn},
		{"user", StringColumn},
		{"uid", IntColumn},
		{"version", IntColumn},
		{"changeset", IntColumn},
		{"timestamp", StringColumn},
	},
}

var WayNodes = &TableSpec{
	Name: "ways_nodes",
	Columns: []Column{
		{"id", IntColumn},
		{"node_id", IntColumn},
		{"position", IntColumn},
	},
}

var WayTags = &TableSpec{
	Name: "ways_tags",
	Columns: []Column{
		{"id", IntColumn},
		{"key", StringColumn},
		{"value", StringColumn},
		{"type", StringColumn},
	},
}

// Specs returns all destination table specs in sink order.
func Specs() []*TableSpec {
	return []*TableSpec{Nodes, NodeTags, Ways, WayNodes, WayTags}
}

// ByName returns the spec for a table name, or nil.
func ByName(name string) *TableSpec {
	for _, s := range Specs() {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Violation describes one schema mismatch of a row.
type Violation struct {
	Column      string
	Description string
}

// ValidationError reports all schema violations of one row. The row is
// never repaired; the caller decides whether to abort or skip.
type ValidationError struct {
	Table      string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Column + ": " + v.Description
	}
	return fmt.Sprintf("row for table %s has violations: %s",
		e.Table, strings.Join(parts, "; "))
}

// Validate checks a row against the table spec: field count and the
// declared scalar type of every column.
func Validate(spec *TableSpec, row []interface{}) error {
	var violations []Violation
	if len(row) != len(spec.Columns) {
		violations = append(violations, Violation{
			Column: "-",
			Description: fmt.Sprintf("expected %d fields, got %d",
				len(spec.Columns), len(row)),
		})
		return &ValidationError{Table: spec.Name, Violations: violations}
	}
	for i, col := range spec.Columns {
		if v := checkType(col, row[i]); v != nil {
			violations = append(violations, *v)
		}
	}
	if violations != nil {
		return &ValidationError{Table: spec.Name, Violations: violations}
	}
	return nil
}

func checkType(col Column, value interface{}) *Violation {
	ok := false
	switch col.Type {
	case IntColumn:
		_, ok = value.(int64)
	case FloatColumn:
		_, ok = value.(float64)
	case StringColumn:
		_, ok = value.(string)
	}
	if !ok {
		return &Violation{
			Column:      col.Name,
			Description: fmt.Sprintf("expected %s, got %T", col.Type, value),
		}
	}
	return nil
}
