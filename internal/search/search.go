// Package search queries a managed full-text index for documents that can be
// used to augment a prompt.
package search

import (
	"context"
	"fmt"
)

// Document is one search hit as returned by the index. Fields are opaque
// except for "content".
type Document map[string]any

// Content returns the document's content field, or "" when it is absent or null.
func (d Document) Content() string {
	v, ok := d["content"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Searcher runs a free-text query against the configured index.
type Searcher interface {
	Query(ctx context.Context, text string) ([]Document, error)
}
