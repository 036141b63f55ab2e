package ref

import (
	"encoding/json"
	"testing"
)

func TestNewIsUniqueAndNonZero(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if id.IsZero() {
			t.Fatal("New returned the zero sentinel")
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestParseRoundTrip(t *testing.T) {
	id := New()
	parsed, err := Parse(id.Hex())
	if err != nil {
		t.Fatalf("Parse(%q): %v", id.Hex(), err)
	}
	if parsed != id {
		t.Fatalf("round trip mismatch: %s != %s", parsed, id)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short", "abc123"},
		{"long", "66f1a2b3c4d5e6f708192a3b4c"},
		{"non_hex", "zzf1a2b3c4d5e6f708192a3b"},
		{"uppercase_wrong_len", "66F1A2B3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Fatalf("Parse(%q) accepted malformed input", tt.input)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	id := MustParse("66f1a2b3c4d5e6f708192a3b")
	data, err := json.Marshal(id)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"66f1a2b3c4d5e6f708192a3b"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var back ID
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != id {
		t.Fatalf("round trip mismatch: %s != %s", back, id)
	}
}

func TestJSONZeroSentinel(t *testing.T) {
	data, err := json.Marshal(Zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `""` {
		t.Fatalf("zero id encoded as %s, want empty string", data)
	}

	for _, raw := range []string{`""`, `null`} {
		var id ID
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		if !id.IsZero() {
			t.Fatalf("Unmarshal(%s) = %s, want zero", raw, id)
		}
	}
}
