package osmxml

import (
	"io"
	"strings"
	"testing"
)

const testDoc = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <bounds minlat="38.8" minlon="-77.2" maxlat="39.0" maxlon="-76.9"/>
  <node id="757860928" lat="41.9747374" lon="-87.6920102" user="uboot" uid="26299" version="2" timestamp="2010-07-22T16:16:51Z" changeset="5288876">
    <tag k="amenity" v="fast_food"/>
    <tag k="name" v="Shelly's Tasty Freeze"/>
  </node>
  <node id="2" lat="1.0" lon="2.0" user="a" uid="1" version="1" timestamp="t" changeset="1"/>
  <way id="209809850" user="chicago-buildings" uid="674454" version="1" timestamp="2013-03-13T15:58:04Z" changeset="15353317">
    <nd ref="2199822281"/>
    <nd ref="2199822390"/>
    <nd ref="2199822392"/>
    <tag k="building" v="yes"/>
  </way>
  <relation id="5" version="1">
    <member type="way" ref="209809850" role="outer"/>
    <tag k="type" v="multipolygon"/>
  </relation>
</osm>`

func collect(t *testing.T, p *Parser) []Element {
	t.Helper()
	var elems []Element
	for {
		e, err := p.Next()
		if err == io.EOF {
			return elems
		}
		if err != nil {
			t.Fatal(err)
		}
		elems = append(elems, e)
	}
}

func TestParse(t *testing.T) {
	elems := collect(t, NewParser(strings.NewReader(testDoc)))
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements (relation skipped), got %d", len(elems))
	}

	node := elems[0].Node
	if node == nil {
		t.Fatal("first element not a node")
	}
	if node.Id != 757860928 {
		t.Error("node id not parsed", node.Id)
	}
	if node.Lat != 41.9747374 || node.Long != -87.6920102 {
		t.Error("node coords not parsed", node.Lat, node.Long)
	}
	if node.Attrs["user"] != "uboot" || node.Attrs["changeset"] != "5288876" {
		t.Error("node attrs not parsed", node.Attrs)
	}
	if len(node.Tags) != 2 || node.Tags[0].Key != "amenity" || node.Tags[1].Value != "Shelly's Tasty Freeze" {
		t.Error("node tags not parsed in order", node.Tags)
	}

	if elems[1].Node == nil || len(elems[1].Node.Tags) != 0 {
		t.Error("tagless node not parsed", elems[1])
	}

	way := elems[2].Way
	if way == nil {
		t.Fatal("third element not a way")
	}
	if way.Id != 209809850 {
		t.Error("way id not parsed", way.Id)
	}
	if len(way.Refs) != 3 || way.Refs[0] != 2199822281 || way.Refs[2] != 2199822392 {
		t.Error("way refs not parsed in order", way.Refs)
	}
	if len(way.Tags) != 1 || way.Tags[0].Key != "building" {
		t.Error("way tags not parsed", way.Tags)
	}
}

func TestParseRelationTagsIgnored(t *testing.T) {
	// a relation's child tags must not leak into a following node
	doc := `<osm>
  <relation id="5"><tag k="type" v="multipolygon"/></relation>
  <node id="1" lat="0" lon="0"><tag k="amenity" v="cafe"/></node>
</osm>`
	elems := collect(t, NewParser(strings.NewReader(doc)))
	if len(elems) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elems))
	}
	node := elems[0].Node
	if len(node.Tags) != 1 || node.Tags[0].Key != "amenity" {
		t.Error("relation tags leaked", node.Tags)
	}
}

func TestParseLatin1Charset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<osm><node id=\"1\" lat=\"0\" lon=\"0\">" +
		"<tag k=\"name\" v=\"Caf\xe9\"/></node></osm>"
	elems := collect(t, NewParser(strings.NewReader(doc)))
	if len(elems) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elems))
	}
	if got := elems[0].Node.Tags[0].Value; got != "Café" {
		t.Errorf("latin1 value not decoded: %q", got)
	}
}

func TestParseEOFAfterEnd(t *testing.T) {
	p := NewParser(strings.NewReader(testDoc))
	collect(t, p)
	if _, err := p.Next(); err != io.EOF {
		t.Errorf("expected io.EOF on drained parser, got %v", err)
	}
}
