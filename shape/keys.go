package shape

import (
	"strings"
)

// RegularType marks tags whose key carries no namespace prefix.
const RegularType = "regular"

// SplitKey splits a raw tag key on its first colon into a (type, key)
// pair. "addr:street:name" becomes ("addr", "street:name"); colons after
// the first stay embedded in the key. Keys without a colon get the
// regular type.
func SplitKey(raw string) (typ, key string) {
	if i := strings.Index(raw, ":"); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return RegularType, raw
}

// problemChars are unsafe for tabular storage and downstream SQL loading.
const problemChars = "=+/&<>;'\"?%#$@,. \t\r\n"

// HasProblemChars reports whether a raw tag key must be dropped. It is
// only ever applied to keys, never to values.
func HasProblemChars(key string) bool {
	return strings.ContainsAny(key, problemChars)
}
