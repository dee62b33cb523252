package osmxml

import (
	"compress/gzip"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/geonorm/osmtab/element"
	"github.com/geonorm/osmtab/logging"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var log = logging.NewLogger("osmxml")

// Element is one top-level map element. Exactly one of Node and Way is
// set. Relations are skipped by the parser and never surface here.
type Element struct {
	Node *element.Node
	Way  *element.Way
}

// Parser is a stream based parser for OSM XML files.
// Decoding is handled in a background goroutine.
type Parser struct {
	reader  io.Reader
	elems   chan Element
	errc    chan error
	running bool
	onClose func() error
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		reader: r,
		elems:  make(chan Element),
		errc:   make(chan error),
	}
}

// Open returns a parser for fname. Files ending in .gz are decompressed
// on the fly.
func Open(fname string) (*Parser, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	var reader io.Reader = file
	if strings.HasSuffix(fname, ".gz") {
		reader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "opening gzip reader for %s", fname)
		}
	}
	p := NewParser(reader)
	p.onClose = file.Close
	return p, nil
}

// Next returns the next node or way of the file, in document order.
// Returns io.EOF and an empty Element at the end of the file.
func (p *Parser) Next() (Element, error) {
	if !p.running {
		p.running = true
		go parse(p.reader, p.elems, p.errc)
	}
	select {
	case elem, ok := <-p.elems:
		if ok {
			return elem, nil
		}
		p.elems = nil
	case err, ok := <-p.errc:
		if ok {
			p.close()
			return Element{}, err
		}
		p.errc = nil
	}
	return Element{}, p.closeErr()
}

func (p *Parser) close() {
	if p.onClose != nil {
		p.onClose()
		p.onClose = nil
	}
}

func (p *Parser) closeErr() error {
	if p.onClose != nil {
		err := p.onClose()
		p.onClose = nil
		if err != nil {
			return err
		}
	}
	return io.EOF
}

func parse(reader io.Reader, elems chan Element, errc chan error) {
	defer close(elems)
	defer close(errc)

	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charsetReader

	var node *element.Node
	var way *element.Way
	inRel := false

	for {
		token, err := decoder.Token()
		if err != nil {
			errc <- err
			return
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "node":
				node = &element.Node{}
				node.Attrs = attrMap(tok.Attr)
				for _, attr := range tok.Attr {
					switch attr.Name.Local {
					case "id":
						node.Id, _ = strconv.ParseInt(attr.Value, 10, 64)
					case "lat":
						node.Lat, _ = strconv.ParseFloat(attr.Value, 64)
					case "lon":
						node.Long, _ = strconv.ParseFloat(attr.Value, 64)
					}
				}
			case "way":
				way = &element.Way{}
				way.Attrs = attrMap(tok.Attr)
				for _, attr := range tok.Attr {
					if attr.Name.Local == "id" {
						way.Id, _ = strconv.ParseInt(attr.Value, 10, 64)
					}
				}
			case "relation":
				inRel = true
			case "nd":
				if way == nil {
					continue
				}
				for _, attr := range tok.Attr {
					if attr.Name.Local == "ref" {
						ref, _ := strconv.ParseInt(attr.Value, 10, 64)
						way.Refs = append(way.Refs, ref)
					}
				}
			case "tag":
				if inRel {
					continue
				}
				var k, v string
				for _, attr := range tok.Attr {
					if attr.Name.Local == "k" {
						k = attr.Value
					} else if attr.Name.Local == "v" {
						v = attr.Value
					}
				}
				if node != nil {
					node.Tags = append(node.Tags, element.Tag{Key: k, Value: v})
				} else if way != nil {
					way.Tags = append(way.Tags, element.Tag{Key: k, Value: v})
				}
			case "member", "osm", "bounds", "bound":
				// pass
			default:
				log.Debugf("unhandled XML tag %s", tok.Name.Local)
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "node":
				elems <- Element{Node: node}
				node = nil
			case "way":
				elems <- Element{Way: way}
				way = nil
			case "relation":
				inRel = false
			case "osm":
				errc <- io.EOF
				return
			}
		}
	}
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		m[attr.Name.Local] = attr.Value
	}
	return m
}

// charsetReader decodes the legacy single-byte encodings that show up in
// older map extracts. encoding/xml handles UTF-8 itself.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, errors.Errorf("unsupported charset %q", charset)
}
