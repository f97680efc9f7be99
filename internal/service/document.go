package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"ragdocs/internal/logger"
	"ragdocs/internal/model"
	"ragdocs/internal/storage"
)

// DocumentService defines the use cases for stored PDF documents.
type DocumentService interface {
	// Upload validates the client filename, sanitizes it and streams r to the
	// object store under the sanitized name, replacing any existing object.
	// It returns the storage key used.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (string, error)

	// List returns every stored file in the order the store yields them.
	List(ctx context.Context) ([]model.File, error)

	// Delete removes the object stored under filename.
	Delete(ctx context.Context, filename string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage) DocumentService {
	return &documentService{store: store}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (string, error) {
	if r == nil {
		return "", invalid(ErrReaderNil)
	}
	if filename == "" {
		return "", invalid(ErrEmptyFilename)
	}
	if !IsPDF(filename) {
		return "", invalid(ErrNotPDF)
	}
	key := SecureFilename(filename)
	if key == "" {
		return "", invalid(ErrInvalidFilename)
	}

	log := logger.FromContext(ctx).With(zap.String("filename", key))
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
	}); err != nil {
		log.Error("upload to storage failed", zap.Error(err))
		return "", upstream("Failed to upload file", err)
	}

	log.Debug("file uploaded to storage")
	return key, nil
}

func (s *documentService) List(ctx context.Context) ([]model.File, error) {
	objs, err := s.store.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("list files failed", zap.Error(err))
		return nil, upstream("Failed to list files", err)
	}

	files := make([]model.File, 0, len(objs))
	for _, o := range objs {
		files = append(files, model.File{Name: o.Key})
	}
	logger.FromContext(ctx).Debug("retrieved files from storage", zap.Int("count", len(files)))
	return files, nil
}

func (s *documentService) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return invalid(ErrNoFilename)
	}

	log := logger.FromContext(ctx).With(zap.String("filename", filename))
	if err := s.store.Delete(ctx, filename); err != nil {
		log.Error("delete from storage failed", zap.Error(err))
		return upstream("Failed to delete file", err)
	}

	log.Debug("file deleted from storage")
	return nil
}
