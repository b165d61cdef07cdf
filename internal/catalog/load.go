package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrLoad marks every failure to produce a catalog at startup.
var ErrLoad = errors.New("catalog load failed")

// LoadError carries the source that failed and why.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) hold for any *LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Source fetches an encoded catalog document.
type Source interface {
	Fetch(ctx context.Context) (Document, error)
	String() string
}

// Load fetches and decodes the catalog. It never returns a partial catalog
// and does not retry.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	doc, err := src.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	c, err := Decode(doc)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	return c, nil
}
