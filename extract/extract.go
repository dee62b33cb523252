// Package extract wires the element stream, the shaper, the optional
// schema validation, and the destination sink into a single-pass run.
package extract

import (
	"io"

	"github.com/pkg/errors"

	"github.com/geonorm/osmtab/config"
	"github.com/geonorm/osmtab/database"
	"github.com/geonorm/osmtab/logging"
	"github.com/geonorm/osmtab/normalize"
	"github.com/geonorm/osmtab/parser/osmxml"
	"github.com/geonorm/osmtab/schema"
	"github.com/geonorm/osmtab/shape"
	"github.com/geonorm/osmtab/stats"
)

var log = logging.NewLogger("extract")

const progressInterval = 50000

// sinkError marks insert failures, which abort the run even with
// skip-broken set.
type sinkError struct {
	err error
}

func (e *sinkError) Error() string { return e.err.Error() }

// Run processes opts.Input once: every node and way is shaped, optionally
// validated, and inserted into the configured sink. Shaping or validation
// failures abort the run unless opts.SkipBroken is set, in which case the
// element is logged and skipped whole; a failed element never reaches the
// sink partially.
func Run(opts config.Options) error {
	rules := normalize.Default()
	if opts.RulesFile != "" {
		var err error
		if rules, err = normalize.FromFile(opts.RulesFile); err != nil {
			return err
		}
		log.Printf("using rules from %s", opts.RulesFile)
	}

	parser, err := osmxml.Open(opts.Input)
	if err != nil {
		return err
	}

	db, err := database.Open(database.Config{Connection: opts.Connection})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Init(); err != nil {
		return err
	}
	if err := db.Begin(); err != nil {
		return err
	}

	shaper := shape.NewShaper(rules)
	counter := stats.NewCounter()

	for {
		elem, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			db.Abort()
			return errors.Wrapf(err, "parsing %s", opts.Input)
		}

		err = writeElement(db, shaper, opts.Validate, elem, counter)
		if err != nil {
			// sink failures are never skippable: the element may
			// already be partially written
			if _, sink := err.(*sinkError); sink || !opts.SkipBroken {
				db.Abort()
				return err
			}
			counter.AddSkipped()
			log.Warnf("skipping element: %s", err)
		}

		if counter.Elements()%progressInterval == 0 {
			log.Progress(counter.String())
		}
	}

	if err := db.End(); err != nil {
		db.Abort()
		return err
	}
	log.Printf("finished: %s", counter)
	return nil
}

// writeElement shapes one element and inserts its full record set. Rows
// are validated before any of them is inserted, so a broken element
// leaves no partial trace in the sink.
func writeElement(db database.DB, shaper *shape.Shaper, validate bool, elem osmxml.Element, counter *stats.Counter) error {
	switch {
	case elem.Node != nil:
		node, tags, err := shaper.Node(elem.Node)
		if err != nil {
			return err
		}
		if validate {
			if err := validateRows(shape.NodesTable, shape.NodeTagsTable, node.Row(), tagRows(tags)); err != nil {
				return err
			}
		}
		if err := db.Insert(shape.NodesTable, node.Row()); err != nil {
			return &sinkError{err}
		}
		for i := range tags {
			if err := db.Insert(shape.NodeTagsTable, tags[i].Row()); err != nil {
				return &sinkError{err}
			}
		}
		counter.AddNode()
		counter.AddTags(len(tags))
	case elem.Way != nil:
		way, tags, refs, err := shaper.Way(elem.Way)
		if err != nil {
			return err
		}
		if validate {
			if err := validateRows(shape.WaysTable, shape.WayTagsTable, way.Row(), tagRows(tags)); err != nil {
				return err
			}
			for i := range refs {
				if err := schema.Validate(schema.WayNodes, refs[i].Row()); err != nil {
					return err
				}
			}
		}
		if err := db.Insert(shape.WaysTable, way.Row()); err != nil {
			return &sinkError{err}
		}
		for i := range refs {
			if err := db.Insert(shape.WayNodesTable, refs[i].Row()); err != nil {
				return &sinkError{err}
			}
		}
		for i := range tags {
			if err := db.Insert(shape.WayTagsTable, tags[i].Row()); err != nil {
				return &sinkError{err}
			}
		}
		counter.AddWay()
		counter.AddTags(len(tags))
	}
	return nil
}

func validateRows(table, tagTable string, row []interface{}, tagRows [][]interface{}) error {
	if err := schema.Validate(schema.ByName(table), row); err != nil {
		return err
	}
	tagSpec := schema.ByName(tagTable)
	for _, tr := range tagRows {
		if err := schema.Validate(tagSpec, tr); err != nil {
			return err
		}
	}
	return nil
}

func tagRows(tags []shape.TagRow) [][]interface{} {
	rows := make([][]interface{}, len(tags))
	for i := range tags {
		rows[i] = tags[i].Row()
	}
	return rows
}
