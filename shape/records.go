package shape

// Table names of the destination sinks.
const (
	NodesTable    = "nodes"
	NodeTagsTable = "nodes_tags"
	WaysTable     = "ways"
	WayNodesTable = "ways_nodes"
	WayTagsTable  = "ways_tags"
)

// NodeRow is the flat record for one node element.
type NodeRow struct {
	Id        int64
	Lat       float64
	Long      float64
	User      string
	Uid       int64
	Version   int64
	Changeset int64
	Timestamp string
}

// Row returns the fields in sink column order:
// id, lat, lon, user, uid, version, changeset, timestamp.
func (r *NodeRow) Row() []interface{} {
	return []interface{}{r.Id, r.Lat, r.Long, r.User, r.Uid, r.Version, r.Changeset, r.Timestamp}
}

// TagRow is one key/value annotation of a node or way. Type holds the
// namespace part of the source key, or "regular" if it had none.
type TagRow struct {
	Id    int64
	Key   string
	Value string
	Type  string
}

// Row returns id, key, value, type.
func (r *TagRow) Row() []interface{} {
	return []interface{}{r.Id, r.Key, r.Value, r.Type}
}

// WayRow is the flat record for one way element.
type WayRow struct {
	Id        int64
	User      string
	Uid       int64
	Version   int64
	Changeset int64
	Timestamp string
}

// Row returns id, user, uid, version, changeset, timestamp.
func (r *WayRow) Row() []interface{} {
	return []interface{}{r.Id, r.User, r.Uid, r.Version, r.Changeset, r.Timestamp}
}

// WayNodeRow records one node reference of a way. Position is the
// zero-based order of the reference within the way.
type WayNodeRow struct {
	Id       int64
	NodeId   int64
	Position int64
}

// Row returns id, node_id, position.
func (r *WayNodeRow) Row() []interface{} {
	return []interface{}{r.Id, r.NodeId, r.Position}
}
