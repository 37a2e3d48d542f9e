package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
)

// Codec converts between a note collection and its persisted document.
type Codec interface {
	// Name identifies the format (e.g. "json").
	Name() string
	// Decode parses a whole document. Empty input yields an empty collection.
	Decode(data []byte) (*core.Collection, error)
	// Encode serializes the collection deterministically.
	Encode(c *core.Collection) ([]byte, error)
}

// DefaultCodecs returns the codecs keyed by file extension.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		".json": NewJSONCodec(),
		".yaml": NewYAMLCodec(),
		".yml":  NewYAMLCodec(),
	}
}

// CodecFor picks the codec matching the extension of path, defaulting to JSON.
func CodecFor(path string) Codec {
	if c, ok := DefaultCodecs()[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return NewJSONCodec()
}

// --- JSON Codec ---

// JSONCodec reads and writes a single JSON object of title -> content.
type JSONCodec struct {
	// Indent used for each nesting level of the output.
	Indent string
}

// NewJSONCodec creates a JSON codec indenting with four spaces.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: "    "}
}

func (c *JSONCodec) Name() string { return "json" }

func (c *JSONCodec) Decode(data []byte) (*core.Collection, error) {
	coll := core.NewCollection()
	if len(data) == 0 {
		return coll, nil
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: json is not valid UTF-8", core.ErrCorruptDocument)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", core.ErrCorruptDocument)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: json root is not an object", core.ErrCorruptDocument)
	}

	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("%w: content of %q is not a string", core.ErrCorruptDocument, key.String())
			return false
		}
		coll.Set(key.String(), value.String())
		return true
	})
	if err != nil {
		return nil, err
	}
	return coll, nil
}

func (c *JSONCodec) Encode(coll *core.Collection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range coll.Notes() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, n.Title); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, n.Content); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	out := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   c.Indent,
		SortKeys: false,
	})
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

// writeJSONString writes s as a JSON string literal without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// --- YAML Codec ---

// YAMLCodec reads and writes a single YAML block mapping of title -> content.
type YAMLCodec struct{}

// NewYAMLCodec creates a YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Name() string { return "yaml" }

func (c *YAMLCodec) Decode(data []byte) (*core.Collection, error) {
	coll := core.NewCollection()
	if len(data) == 0 {
		return coll, nil
	}

	// Decoding into a node keeps the key order of the document.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrCorruptDocument, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return coll, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return coll, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: yaml root is not a mapping", core.ErrCorruptDocument)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: title at line %d is not a scalar", core.ErrCorruptDocument, key.Line)
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: content of %q is not a scalar", core.ErrCorruptDocument, key.Value)
		}
		content := value.Value
		if value.Tag == "!!null" {
			content = ""
		}
		coll.Set(key.Value, content)
	}
	return coll, nil
}

func (c *YAMLCodec) Encode(coll *core.Collection) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, n := range coll.Notes() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Title, Style: keyStyle(n.Title)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Content, Style: contentStyle(n.Content)},
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// keyStyle keeps titles with line breaks on a single escaped line, since a
// block mapping key cannot span lines.
func keyStyle(title string) yaml.Style {
	if strings.ContainsAny(title, "\r\n") {
		return yaml.DoubleQuotedStyle
	}
	return 0
}

// contentStyle writes multi-line content as a literal block when the block
// reads back byte for byte, and as an escaped double-quoted string otherwise.
func contentStyle(content string) yaml.Style {
	switch {
	case literalSafe(content):
		return yaml.LiteralStyle
	case strings.ContainsAny(content, "\r\n"):
		return yaml.DoubleQuotedStyle
	}
	return 0
}

// literalSafe reports whether content survives a literal block scalar.
// Leading breaks or indentation need an indentation indicator and
// whitespace-only lines are folded into the block indentation, so both are
// left to the quoted form.
func literalSafe(content string) bool {
	if !strings.Contains(content, "\n") || strings.ContainsRune(content, '\r') {
		return false
	}
	switch content[0] {
	case ' ', '\t', '\n':
		return false
	}
	for _, line := range strings.Split(content, "\n") {
		if line != "" && strings.TrimLeft(line, " \t") == "" {
			return false
		}
	}
	return true
}
