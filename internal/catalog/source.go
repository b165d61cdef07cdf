package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed default.json
var defaultDocument []byte

// EmbeddedSource serves the sample catalog compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Fetch(context.Context) (Document, error) {
	return Document{Data: defaultDocument, Format: FormatJSON}, nil
}

func (EmbeddedSource) String() string { return "embedded catalog" }

// FileSource reads a document from disk. Files ending in .yaml or .yml are
// YAML, everything else JSON.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(context.Context) (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Document{}, err
	}
	return Document{Data: data, Format: formatFromName(s.Path)}, nil
}

func (s FileSource) String() string { return s.Path }

func formatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// HTTPSource GETs a document. Any non-2xx status is a failure.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

const maxDocumentBytes = 8 << 20

func (s HTTPSource) Fetch(ctx context.Context) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Document{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return Document{}, fmt.Errorf("read body: %w", err)
	}

	format := formatFromName(req.URL.Path)
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}
	return Document{Data: data, Format: format}, nil
}

func (s HTTPSource) String() string { return s.URL }

// DefaultRedisKey holds the catalog document when no key is configured.
const DefaultRedisKey = "quizcraft:catalog"

// RedisSource reads a JSON document stored under one key.
type RedisSource struct {
	Client *redis.Client
	Key    string
}

func (s RedisSource) Fetch(ctx context.Context) (Document, error) {
	data, err := s.Client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Document{}, fmt.Errorf("key %q not set", s.key())
	}
	if err != nil {
		return Document{}, err
	}
	return Document{Data: data, Format: FormatJSON}, nil
}

func (s RedisSource) key() string {
	if s.Key == "" {
		return DefaultRedisKey
	}
	return s.Key
}

func (s RedisSource) String() string {
	return fmt.Sprintf("redis %s key %s", s.Client.Options().Addr, s.key())
}

// Close releases the Redis connection pool.
func (s RedisSource) Close() error { return s.Client.Close() }

// Publish stores c under the source's key, for seeding a shared catalog.
func (s RedisSource) Publish(ctx context.Context, c *Catalog) error {
	data, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(), data, 0).Err()
}

// SourceOptions tune ParseSource.
type SourceOptions struct {
	RedisKey   string
	HTTPClient *http.Client
}

// ParseSource picks a Source from a location string: "" or "embedded",
// a redis:// or rediss:// URL, an http(s) URL, or a file path.
func ParseSource(location string, opts SourceOptions) (Source, error) {
	switch {
	case location == "" || location == "embedded":
		return EmbeddedSource{}, nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		ropts, err := redis.ParseURL(location)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return RedisSource{Client: redis.NewClient(ropts), Key: opts.RedisKey}, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{URL: location, Client: opts.HTTPClient}, nil
	default:
		return FileSource{Path: location}, nil
	}
}
