package element

import (
	"fmt"
)

// Tags is a plain key/value lookup over one element's tags. It is only
// used to evaluate cross-tag conditions (e.g. amenity=pharmacy); the
// authoritative, ordered tag list lives in OSMElem.Tags.
type Tags map[string]string

func (t Tags) String() string {
	return fmt.Sprintf("%v", (map[string]string)(t))
}

// Tag is a single key/value annotation in source document order.
type Tag struct {
	Key   string
	Value string
}

// OSMElem is the part shared by nodes and ways: the element id, the raw
// top-level XML attributes as the document carried them, and the ordered
// child tags.
type OSMElem struct {
	Id    int64
	Attrs map[string]string
	Tags  []Tag
}

// TagMap returns the element's tags as a lookup map. Later duplicates of
// a key win, matching how the source XML is usually interpreted.
func (e *OSMElem) TagMap() Tags {
	m := make(Tags, len(e.Tags))
	for _, t := range e.Tags {
		m[t.Key] = t.Value
	}
	return m
}

type Node struct {
	OSMElem
	Lat  float64
	Long float64
}

type Way struct {
	OSMElem
	Refs []int64
}
