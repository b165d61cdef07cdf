// Package catalog holds the quizzes available in a run, keyed by id and
// kept in the order they were first added.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("quiz not found")

// Catalog is an insertion-ordered map of quizzes. It is owned by the UI
// loop and is not safe for concurrent mutation.
type Catalog struct {
	quizzes map[string]quiz.Quiz
	order   []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{quizzes: make(map[string]quiz.Quiz)}
}

// Insert stores q under id, overwriting any quiz already there. An
// overwritten id keeps its original position.
func (c *Catalog) Insert(id string, q quiz.Quiz) {
	if _, ok := c.quizzes[id]; !ok {
		c.order = append(c.order, id)
	}
	q = q.Clone()
	q.ID = id
	c.quizzes[id] = q
}

// Get returns a copy of the quiz stored under id.
func (c *Catalog) Get(id string) (quiz.Quiz, error) {
	q, ok := c.quizzes[id]
	if !ok {
		return quiz.Quiz{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return q.Clone(), nil
}

// Has reports whether id is in use.
func (c *Catalog) Has(id string) bool {
	_, ok := c.quizzes[id]
	return ok
}

func (c *Catalog) Len() int { return len(c.order) }

// IDs returns quiz ids in insertion order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// List returns copies of all quizzes in insertion order.
func (c *Catalog) List() []quiz.Quiz {
	out := make([]quiz.Quiz, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.quizzes[id].Clone())
	}
	return out
}

// MarshalJSON writes the catalog document (id -> quiz) in insertion order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.quizzes[id])
		if err != nil {
			return nil, fmt.Errorf("encode quiz %q: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
