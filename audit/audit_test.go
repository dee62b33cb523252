package audit

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

const testDoc = `<osm>
  <node id="1" lat="0" lon="0">
    <tag k="amenity" v="pharmacy"/>
    <tag k="name" v="CVS/pharmacy - Main St"/>
    <tag k="phone:pharmacy" v="+1 301-555-0100"/>
    <tag k="addr:postcode" v="2011"/>
    <tag k="addr:street" v="Main St"/>
  </node>
  <node id="2" lat="0" lon="0">
    <tag k="phone" v="649 3555"/>
    <tag k="contact:phone" v="(202) 555-0199"/>
  </node>
  <way id="3" user="u" uid="1" version="1" timestamp="t" changeset="1">
    <nd ref="1"/>
    <tag k="tiger:county" v="Cook, IL"/>
    <tag k="addr:street" v="Wisconsin Avenue"/>
  </way>
</osm>`

func writeTestFile(t *testing.T) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "sample.osm")
	if err := ioutil.WriteFile(fname, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestRunAllReporters(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(writeTestFile(t), All(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// street: "Main St" has the unexpected suffix "St", the expected
	// "Avenue" must not show up
	if !strings.Contains(out, "St:") || !strings.Contains(out, "Main St") {
		t.Errorf("street report incomplete:\n%s", out)
	}
	if strings.Contains(out, "Avenue:") {
		t.Errorf("expected suffix reported:\n%s", out)
	}
	if !strings.Contains(out, "CVS/pharmacy - Main St") {
		t.Errorf("pharmacy report incomplete:\n%s", out)
	}
	if !strings.Contains(out, "Cook, IL") {
		t.Errorf("county report incomplete:\n%s", out)
	}
	for _, phone := range []string{"+1 301-555-0100", "649 3555", "(202) 555-0199"} {
		if !strings.Contains(out, phone) {
			t.Errorf("phone report misses %q:\n%s", phone, out)
		}
	}
	if !strings.Contains(out, "2011") {
		t.Errorf("postcode report incomplete:\n%s", out)
	}
}

func TestByName(t *testing.T) {
	reporters, err := ByName([]string{"phone", "county"})
	if err != nil {
		t.Fatal(err)
	}
	if len(reporters) != 2 || reporters[0].Name() != "phone" || reporters[1].Name() != "county" {
		t.Errorf("unexpected reporters: %v", reporters)
	}
	if _, err := ByName([]string{"bogus"}); err == nil {
		t.Error("expected error for unknown report")
	}
	all, err := ByName(nil)
	if err != nil || len(all) != 5 {
		t.Errorf("expected all reporters, got %v, %v", all, err)
	}
}

func TestStreetTypesDedup(t *testing.T) {
	var buf bytes.Buffer
	doc := `<osm>
  <node id="1" lat="0" lon="0"><tag k="addr:street" v="Main St"/></node>
  <node id="2" lat="0" lon="0"><tag k="addr:street" v="Main St"/></node>
</osm>`
	fname := filepath.Join(t.TempDir(), "dup.osm")
	if err := ioutil.WriteFile(fname, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Run(fname, []Reporter{NewStreetTypes()}, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "Main St"); got != 1 {
		t.Errorf("expected deduplicated street names, got %d occurrences", got)
	}
}
