package shape

import (
	"testing"
)

func TestSplitKey(t *testing.T) {
	tests := []struct {
		raw string
		typ string
		key string
	}{
		{"amenity", "regular", "amenity"},
		{"addr:street", "addr", "street"},
		{"addr:street:name", "addr", "street:name"},
		{"tiger:county", "tiger", "county"},
		{"a:b:c:d", "a", "b:c:d"},
		{":key", "", "key"},
		{"", "regular", ""},
	}
	for _, test := range tests {
		typ, key := SplitKey(test.raw)
		if typ != test.typ || key != test.key {
			t.Errorf("SplitKey(%q) = (%q, %q), want (%q, %q)",
				test.raw, typ, key, test.typ, test.key)
		}
	}
}

func TestSplitKeyRejoin(t *testing.T) {
	// a single-colon key must reconstruct from its parts
	for _, raw := range []string{"addr:street", "tiger:cfcc", "gnis:id"} {
		typ, key := SplitKey(raw)
		if typ+":"+key != raw {
			t.Errorf("SplitKey(%q) does not rejoin: %q + %q", raw, typ, key)
		}
	}
}

func TestHasProblemChars(t *testing.T) {
	bad := []string{
		"addr street", "a=b", "a+b", "a/b", "a&b", "a<b", "a>b", "a;b",
		"a'b", `a"b`, "a?b", "a%b", "a#b", "a$b", "a@b", "a,b", "a.b",
		"a\tb", "a\rb", "a\nb",
	}
	for _, key := range bad {
		if !HasProblemChars(key) {
			t.Errorf("expected %q to be rejected", key)
		}
	}
	good := []string{"amenity", "addr:street", "tiger:county", "name_1", "FIXME"}
	for _, key := range good {
		if HasProblemChars(key) {
			t.Errorf("expected %q to be accepted", key)
		}
	}
}
