package fs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aretw0/jotter/pkg/core"
)

func sampleCollection() *core.Collection {
	c := core.NewCollection()
	c.Set("Groceries", "milk, eggs")
	c.Set("Empty", "")
	c.Set("Multi-line", "first line\nsecond line\n")
	c.Set(`Quotes "and" \backslashes\`, "tab\there")
	c.Set("Ünïcödé 📝", "日本語")
	c.Set("123", "true")
	c.Set("a.b*c", "<html> & stuff")
	c.Set("  padded  ", "  spaced  ")
	c.Set("Leading break", "\nb")
	c.Set("Only break", "\n")
	c.Set("Only breaks", "\n\n")
	c.Set("Indented block", "  first\nsecond\n")
	c.Set("Blank line of spaces", "a\n   \nb")
	c.Set("Trailing breaks", "a\n\n\n")
	c.Set("Windows", "one\r\ntwo\r\n")
	c.Set("\n", "title is a line break")
	c.Set("two\nlines", "x")
	c.Set(" ", "single space")
	return c
}

func TestCodecs_RoundTrip(t *testing.T) {
	for ext, codec := range DefaultCodecs() {
		t.Run(ext, func(t *testing.T) {
			want := sampleCollection()

			data, err := codec.Encode(want)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v\n%s", err, data)
			}

			if diff := cmp.Diff(want.Notes(), got.Notes()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			// Encoding is deterministic.
			again, err := codec.Encode(got)
			if err != nil {
				t.Fatalf("second Encode failed: %v", err)
			}
			if string(again) != string(data) {
				t.Errorf("encoding is not stable:\n%s\n---\n%s", data, again)
			}
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for ext, codec := range DefaultCodecs() {
		got, err := codec.Decode(nil)
		if err != nil {
			t.Errorf("%s: Decode of zero bytes failed: %v", ext, err)
		} else if got.Len() != 0 {
			t.Errorf("%s: zero bytes should decode as empty, got %v", ext, got.Titles())
		}

		data, err := codec.Encode(core.NewCollection())
		if err != nil {
			t.Fatalf("%s: Encode(empty) failed: %v", ext, err)
		}
		got, err = codec.Decode(data)
		if err != nil || got.Len() != 0 {
			t.Errorf("%s: empty collection did not survive a round trip: %v %v", ext, err, got)
		}
	}
}

func TestYAMLCodec_WhitespaceIsEmptyDocument(t *testing.T) {
	got, err := NewYAMLCodec().Decode([]byte("   \n\n# only a comment\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("expected empty collection, got %v", got.Titles())
	}
}

func TestCodecs_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		input string
	}{
		{"json garbage", NewJSONCodec(), "this is not json"},
		{"json truncated", NewJSONCodec(), `{"a": "b"`},
		{"json array root", NewJSONCodec(), `["a", "b"]`},
		{"json null root", NewJSONCodec(), `null`},
		{"json number content", NewJSONCodec(), `{"a": 1}`},
		{"json nested content", NewJSONCodec(), `{"a": {"b": "c"}}`},
		{"json whitespace only", NewJSONCodec(), "   \n\t"},
		{"json invalid utf8", NewJSONCodec(), "{\"a\": \"\xff\"}"},
		{"yaml broken", NewYAMLCodec(), "a: [unclosed\n"},
		{"yaml scalar root", NewYAMLCodec(), "just a sentence"},
		{"yaml list root", NewYAMLCodec(), "- a\n- b\n"},
		{"yaml nested content", NewYAMLCodec(), "a:\n  b: c\n"},
		{"yaml invalid utf8", NewYAMLCodec(), "a: \xff\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.codec.Decode([]byte(tc.input))
			if !errors.Is(err, core.ErrCorruptDocument) {
				t.Fatalf("expected ErrCorruptDocument, got %v (collection %v)", err, got)
			}
		})
	}
}

func TestJSONCodec_KeepsDocumentOrder(t *testing.T) {
	got, err := NewJSONCodec().Decode([]byte(`{"zeta": "1", "alpha": "2", "mid": "3"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, got.Titles()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONCodec_DuplicateKeysLastWins(t *testing.T) {
	got, err := NewJSONCodec().Decode([]byte(`{"a": "1", "b": "2", "a": "3"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff([]core.Note{{Title: "a", Content: "3"}, {Title: "b", Content: "2"}}, got.Notes()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONCodec_ReadsEscapes(t *testing.T) {
	got, err := NewJSONCodec().Decode([]byte(`{"caf\u00e9": "line\nbreak \"quoted\""}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	content, ok := got.Get("café")
	if !ok {
		t.Fatalf("escaped title not decoded, titles: %v", got.Titles())
	}
	if content != "line\nbreak \"quoted\"" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestYAMLCodec_NullValueIsEmptyContent(t *testing.T) {
	got, err := NewYAMLCodec().Decode([]byte("draft:\nfinal: done\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff([]core.Note{{Title: "draft"}, {Title: "final", Content: "done"}}, got.Notes()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCodecFor(t *testing.T) {
	cases := map[string]string{
		"notes.json":    "json",
		"notes.YAML":    "yaml",
		"dir/notes.yml": "yaml",
		"notes":         "json",
		"notes.txt":     "json",
	}
	for path, want := range cases {
		if got := CodecFor(path).Name(); got != want {
			t.Errorf("CodecFor(%q) = %s, want %s", path, got, want)
		}
	}
}
