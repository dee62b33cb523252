// Package shape transforms raw map elements into their normalized
// tabular record sets.
package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geonorm/osmtab/element"
	"github.com/geonorm/osmtab/normalize"
)

// MissingAttributeError reports required top-level attributes absent from
// an element. The element is not shaped; the caller decides whether to
// abort the run or skip the element.
type MissingAttributeError struct {
	Kind  string
	Id    int64
	Attrs []string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s %d: missing attributes %s",
		e.Kind, e.Id, strings.Join(e.Attrs, ", "))
}

var nodeAttrs = []string{"id", "user", "uid", "version", "lat", "lon", "timestamp", "changeset"}
var wayAttrs = []string{"id", "user", "uid", "version", "timestamp", "changeset"}

// tagRef identifies a normalizer trigger by the post-split (type, key)
// pair of a tag.
type tagRef struct {
	Type string
	Key  string
}

// valueFunc normalizes a single tag value. The tags lookup covers all
// sibling tags of the same element, for triggers that depend on them.
type valueFunc func(rules *normalize.Rules, value string, tags element.Tags) string

// Node triggers: pharmacy names, phone-like keys, postal codes.
var nodeValueFuncs = map[tagRef]valueFunc{
	{RegularType, "name"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		if tags["amenity"] == "pharmacy" {
			return normalize.PharmacyName(v)
		}
		return v
	},
	{RegularType, "phone"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		return r.Phone(v)
	},
	{"contact", "phone"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		return r.Phone(v)
	},
	{"phone", "pharmacy"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		return r.Phone(v)
	},
	{"addr", "postcode"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		return r.Postcode(v)
	},
}

// Way triggers: TIGER county imports, street suffixes.
var wayValueFuncs = map[tagRef]valueFunc{
	{"tiger", "county"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		return normalize.County(v)
	},
	{"addr", "street"}: func(r *normalize.Rules, v string, tags element.Tags) string {
		return r.StreetName(v)
	},
}

// Shaper turns one raw element into its record set. Shaping one element
// never depends on any other element.
type Shaper struct {
	rules *normalize.Rules
}

// NewShaper returns a Shaper applying the given rules. A nil rules
// argument uses the built-in tables.
func NewShaper(rules *normalize.Rules) *Shaper {
	if rules == nil {
		rules = normalize.Default()
	}
	return &Shaper{rules: rules}
}

// Node shapes one node element into its NodeRow and TagRows.
func (s *Shaper) Node(node *element.Node) (*NodeRow, []TagRow, error) {
	if err := checkAttrs("node", node.Id, node.Attrs, nodeAttrs); err != nil {
		return nil, nil, err
	}
	row := &NodeRow{
		Id:        node.Id,
		Lat:       node.Lat,
		Long:      node.Long,
		User:      node.Attrs["user"],
		Uid:       parseInt(node.Attrs["uid"]),
		Version:   parseInt(node.Attrs["version"]),
		Changeset: parseInt(node.Attrs["changeset"]),
		Timestamp: node.Attrs["timestamp"],
	}
	tags := s.shapeTags(node.Id, node.Tags, nodeValueFuncs)
	return row, tags, nil
}

// Way shapes one way element into its WayRow, TagRows, and one
// WayNodeRow per node reference in source order.
func (s *Shaper) Way(way *element.Way) (*WayRow, []TagRow, []WayNodeRow, error) {
	if err := checkAttrs("way", way.Id, way.Attrs, wayAttrs); err != nil {
		return nil, nil, nil, err
	}
	row := &WayRow{
		Id:        way.Id,
		User:      way.Attrs["user"],
		Uid:       parseInt(way.Attrs["uid"]),
		Version:   parseInt(way.Attrs["version"]),
		Changeset: parseInt(way.Attrs["changeset"]),
		Timestamp: way.Attrs["timestamp"],
	}
	tags := s.shapeTags(way.Id, way.Tags, wayValueFuncs)
	refs := make([]WayNodeRow, 0, len(way.Refs))
	for i, ref := range way.Refs {
		refs = append(refs, WayNodeRow{Id: way.Id, NodeId: ref, Position: int64(i)})
	}
	return row, tags, refs, nil
}

// shapeTags builds the TagRows for one element. The full tag set is
// collected into a lookup first, so triggers that inspect sibling tags
// (the pharmacy name check) see all of them regardless of tag order.
func (s *Shaper) shapeTags(id int64, tags []element.Tag, funcs map[tagRef]valueFunc) []TagRow {
	if len(tags) == 0 {
		return nil
	}
	lookup := make(element.Tags, len(tags))
	for _, t := range tags {
		lookup[t.Key] = t.Value
	}
	rows := make([]TagRow, 0, len(tags))
	for _, t := range tags {
		if HasProblemChars(t.Key) {
			continue
		}
		typ, key := SplitKey(t.Key)
		value := t.Value
		if fn, ok := funcs[tagRef{typ, key}]; ok {
			value = fn(s.rules, value, lookup)
		}
		rows = append(rows, TagRow{Id: id, Key: key, Value: value, Type: typ})
	}
	return rows
}

func checkAttrs(kind string, id int64, attrs map[string]string, required []string) error {
	var missing []string
	for _, name := range required {
		if _, ok := attrs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if missing != nil {
		return &MissingAttributeError{Kind: kind, Id: id, Attrs: missing}
	}
	return nil
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
