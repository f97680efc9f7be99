package storage

import (
	"context"
	"io"
)

// Package storage contains the object store abstraction and its backends
// (Azure Blob Storage and S3-compatible stores through MinIO).
// Implementations stream uploads and never touch local disk.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the
// backend will chunk the stream.
type PutObjectOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Storage is the object store the document endpoints operate on.
type Storage interface {
	// Put uploads r under key, replacing any existing object with that key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// List returns every object in the container in the order the backend yields them.
	List(ctx context.Context) ([]ObjectInfo, error)
	// Delete removes an object by key. A missing key is an error.
	Delete(ctx context.Context, key string) error
}
