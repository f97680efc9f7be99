package mocks

import (
	"context"
	"io"

	"ragdocs/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (string, error) {
	args := m.Called(ctx, r, filename, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context) ([]model.File, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

type MockPromptService struct {
	mock.Mock
}

func (m *MockPromptService) Ask(ctx context.Context, prompt string, useRAG bool) (string, error) {
	args := m.Called(ctx, prompt, useRAG)
	return args.String(0), args.Error(1)
}
