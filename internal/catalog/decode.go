package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// Format is the encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Document is a fetched, still-encoded catalog.
type Document struct {
	Data   []byte
	Format Format
}

// Decode parses doc into a catalog, keeping the document's key order and
// validating every quiz.
func Decode(doc Document) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	switch doc.Format {
	case FormatYAML:
		c, err = decodeYAML(doc.Data)
	default:
		c, err = decodeJSON(doc.Data)
	}
	if err != nil {
		return nil, err
	}

	for _, id := range c.order {
		if err := c.quizzes[id].Validate(); err != nil {
			return nil, fmt.Errorf("quiz %q: %w", id, err)
		}
	}
	return c, nil
}

func decodeJSON(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("catalog document must be an object keyed by quiz id")
	}

	c := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read quiz id: %w", err)
		}
		id := tok.(string) // object keys are always strings

		var q quiz.Quiz
		if err := dec.Decode(&q); err != nil {
			return nil, fmt.Errorf("decode quiz %q: %w", id, err)
		}
		c.Insert(id, q)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read document end: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after catalog document")
	}
	return c, nil
}

func decodeYAML(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("empty catalog document")
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, errors.New("catalog document must be a mapping keyed by quiz id")
	}

	c := New()
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: quiz id must be a scalar", key.Line)
		}
		id := key.Value
		var q quiz.Quiz
		if err := m.Content[i+1].Decode(&q); err != nil {
			return nil, fmt.Errorf("decode quiz %q: %w", id, err)
		}
		c.Insert(id, q)
	}
	return c, nil
}

// EncodeYAML writes the catalog as a YAML mapping in insertion order.
func EncodeYAML(w io.Writer, c *Catalog) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range c.order {
		var val yaml.Node
		if err := val.Encode(c.quizzes[id]); err != nil {
			return fmt.Errorf("encode quiz %q: %w", id, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id},
			&val,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
