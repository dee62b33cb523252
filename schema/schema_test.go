package schema

import (
	"strings"
	"testing"
)

func TestValidateOk(t *testing.T) {
	row := []interface{}{int64(1), 38.9, -77.0, "u", int64(2), int64(1), int64(3), "2017-01-01T00:00:00Z"}
	if err := Validate(Nodes, row); err != nil {
		t.Fatal(err)
	}
}

func TestValidateWrongType(t *testing.T) {
	// lat as string, uid as int instead of int64
	row := []interface{}{int64(1), "38.9", -77.0, "u", 2, int64(1), int64(3), "t"}
	err := Validate(Nodes, row)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Table != "nodes" {
		t.Errorf("unexpected table: %s", verr.Table)
	}
	if len(verr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", verr.Violations)
	}
	if verr.Violations[0].Column != "lat" || verr.Violations[1].Column != "uid" {
		t.Errorf("unexpected columns: %v", verr.Violations)
	}
	if !strings.Contains(verr.Error(), "lat") {
		t.Errorf("error message misses column name: %s", verr.Error())
	}
}

func TestValidateArity(t *testing.T) {
	err := Validate(WayNodes, []interface{}{int64(1), int64(2)})
	if err == nil {
		t.Fatal("expected arity violation")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"nodes", "nodes_tags", "ways", "ways_nodes", "ways_tags"} {
		if ByName(name) == nil {
			t.Errorf("missing spec for %s", name)
		}
	}
	if ByName("bogus") != nil {
		t.Error("expected nil for unknown table")
	}
}

func TestColumnOrder(t *testing.T) {
	got := strings.Join(Nodes.ColumnNames(), ",")
	want := "id,lat,lon,user,uid,version,changeset,timestamp"
	if got != want {
		t.Errorf("nodes column order %s, want %s", got, want)
	}
	got = strings.Join(WayNodes.ColumnNames(), ",")
	if got != "id,node_id,position" {
		t.Errorf("ways_nodes column order %s", got)
	}
}
