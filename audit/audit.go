// Package audit implements read-only scans over an element stream that
// collect out-of-expectation raw values. The reports are reviewed by a
// human to decide which normalization rules a map extract needs; nothing
// here modifies or emits records.
package audit

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/geonorm/osmtab/parser/osmxml"
)

// Reporter collects one category of raw values from the stream.
type Reporter interface {
	Name() string
	Element(elem osmxml.Element)
	Report(w io.Writer)
}

// All returns every known reporter.
func All() []Reporter {
	return []Reporter{
		NewStreetTypes(),
		NewPharmacyNames(),
		NewCounties(),
		NewPhones(),
		NewPostcodes(),
	}
}

// ByName resolves reporter names; an empty list means all.
func ByName(names []string) ([]Reporter, error) {
	if len(names) == 0 {
		return All(), nil
	}
	known := map[string]Reporter{}
	for _, r := range All() {
		known[r.Name()] = r
	}
	var result []Reporter
	for _, name := range names {
		r, ok := known[name]
		if !ok {
			return nil, errors.Errorf("unknown report %q", name)
		}
		result = append(result, r)
	}
	return result, nil
}

// Run feeds the file's element stream through the reporters and writes
// their reports to w.
func Run(filename string, reporters []Reporter, w io.Writer) error {
	parser, err := osmxml.Open(filename)
	if err != nil {
		return err
	}
	for {
		elem, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "parsing %s", filename)
		}
		for _, r := range reporters {
			r.Element(elem)
		}
	}
	for _, r := range reporters {
		fmt.Fprintf(w, "== %s\n", r.Name())
		r.Report(w)
	}
	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
