package stamped

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
)

var (
	delimiter      = []byte("---\n")
	closeDelimiter = []byte("\n---\n")
)

type header struct {
	Title string `yaml:"title"`
}

// encodeNote renders a note file: a YAML frontmatter block carrying the
// title, followed by the raw content.
func encodeNote(n core.Note) ([]byte, error) {
	title := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Title}
	// Block scalars drop leading line breaks; the escaped form keeps them.
	if strings.ContainsAny(n.Title, "\r\n") {
		title.Style = yaml.DoubleQuotedStyle
	}
	h := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "title"},
		title,
	}}

	var buf bytes.Buffer
	buf.Write(delimiter)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(h); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.Write(delimiter)
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// decodeNote parses a note file. Files without frontmatter are plain notes
// as written by earlier versions; they take fallbackTitle (the file stem).
func decodeNote(data []byte, fallbackTitle string) (core.Note, error) {
	if !bytes.HasPrefix(data, delimiter) {
		return core.Note{Title: fallbackTitle, Content: string(data)}, nil
	}

	rest := data[len(delimiter):]
	end := bytes.Index(rest, closeDelimiter)
	if end < 0 {
		return core.Note{}, fmt.Errorf("%w: frontmatter started but no closing delimiter found", core.ErrCorruptDocument)
	}

	var h header
	if err := yaml.Unmarshal(rest[:end+1], &h); err != nil {
		return core.Note{}, fmt.Errorf("%w: failed to parse frontmatter: %v", core.ErrCorruptDocument, err)
	}
	if h.Title == "" {
		return core.Note{}, fmt.Errorf("%w: frontmatter has no title", core.ErrCorruptDocument)
	}

	return core.Note{Title: h.Title, Content: string(rest[end+len(closeDelimiter):])}, nil
}
