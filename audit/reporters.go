package audit

import (
	"fmt"
	"io"
	"regexp"

	"github.com/geonorm/osmtab/element"
	"github.com/geonorm/osmtab/parser/osmxml"
)

var streetTypeRe = regexp.MustCompile(`\S+$`)

// expectedStreetTypes are suffixes that need no expansion rule.
var expectedStreetTypes = []string{
	"Street", "Avenue", "Boulevard", "Drive", "Court", "Place",
	"Square", "Lane", "Road", "Trail", "Parkway", "Commons",
}

// StreetTypes groups addr:street values of nodes and ways under their
// trailing word when that word is not an expected suffix.
type StreetTypes struct {
	expected map[string]struct{}
	bad      map[string]map[string]struct{}
}

func NewStreetTypes() *StreetTypes {
	expected := make(map[string]struct{}, len(expectedStreetTypes))
	for _, s := range expectedStreetTypes {
		expected[s] = struct{}{}
	}
	return &StreetTypes{expected: expected, bad: map[string]map[string]struct{}{}}
}

func (s *StreetTypes) Name() string { return "street" }

func (s *StreetTypes) Element(elem osmxml.Element) {
	var tags []element.Tag
	switch {
	case elem.Node != nil:
		tags = elem.Node.Tags
	case elem.Way != nil:
		tags = elem.Way.Tags
	default:
		return
	}
	for _, t := range tags {
		if t.Key != "addr:street" {
			continue
		}
		suffix := streetTypeRe.FindString(t.Value)
		if suffix == "" {
			continue
		}
		if _, ok := s.expected[suffix]; ok {
			continue
		}
		if s.bad[suffix] == nil {
			s.bad[suffix] = map[string]struct{}{}
		}
		s.bad[suffix][t.Value] = struct{}{}
	}
}

func (s *StreetTypes) Report(w io.Writer) {
	for _, suffix := range sortedKeys(setOfKeys(s.bad)) {
		fmt.Fprintf(w, "%s:\n", suffix)
		for _, name := range sortedKeys(s.bad[suffix]) {
			fmt.Fprintf(w, "    %s\n", name)
		}
	}
}

func setOfKeys(m map[string]map[string]struct{}) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}

// PharmacyNames collects the name of every node tagged amenity=pharmacy.
type PharmacyNames struct {
	values []string
}

func NewPharmacyNames() *PharmacyNames { return &PharmacyNames{} }

func (p *PharmacyNames) Name() string { return "pharmacy" }

func (p *PharmacyNames) Element(elem osmxml.Element) {
	if elem.Node == nil {
		return
	}
	tags := elem.Node.TagMap()
	if tags["amenity"] != "pharmacy" {
		return
	}
	if name, ok := tags["name"]; ok {
		p.values = append(p.values, name)
	}
}

func (p *PharmacyNames) Report(w io.Writer) { list(w, p.values) }

// Counties collects raw tiger:county values from ways.
type Counties struct {
	values []string
}

func NewCounties() *Counties { return &Counties{} }

func (c *Counties) Name() string { return "county" }

func (c *Counties) Element(elem osmxml.Element) {
	if elem.Way == nil {
		return
	}
	for _, t := range elem.Way.Tags {
		if t.Key == "tiger:county" {
			c.values = append(c.values, t.Value)
		}
	}
}

func (c *Counties) Report(w io.Writer) { list(w, c.values) }

// phoneKeys are the keys whose values the Phones reporter collects.
var phoneKeys = []string{"phone", "contact:phone", "phone:pharmacy"}

// Phones collects raw phone-like values from nodes.
type Phones struct {
	values []string
}

func NewPhones() *Phones { return &Phones{} }

func (p *Phones) Name() string { return "phone" }

func (p *Phones) Element(elem osmxml.Element) {
	if elem.Node == nil {
		return
	}
	tags := elem.Node.TagMap()
	for _, key := range phoneKeys {
		if v, ok := tags[key]; ok {
			p.values = append(p.values, v)
		}
	}
}

func (p *Phones) Report(w io.Writer) { list(w, p.values) }

// Postcodes collects raw addr:postcode values from nodes.
type Postcodes struct {
	values []string
}

func NewPostcodes() *Postcodes { return &Postcodes{} }

func (p *Postcodes) Name() string { return "postcode" }

func (p *Postcodes) Element(elem osmxml.Element) {
	if elem.Node == nil {
		return
	}
	for _, t := range elem.Node.Tags {
		if t.Key == "addr:postcode" {
			p.values = append(p.values, t.Value)
		}
	}
}

func (p *Postcodes) Report(w io.Writer) { list(w, p.values) }

func list(w io.Writer, values []string) {
	for _, v := range values {
		fmt.Fprintf(w, "    %s\n", v)
	}
}
