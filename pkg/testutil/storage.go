package testutil

import (
	"context"
	"fmt"

	"github.com/campusboard/backend/pkg/storage"
)

// MockStorage answers uploads with a fake public URL unless UploadFunc is
// set. Uploaded keys are kept in Keys.
type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	Keys       []string
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	m.Keys = append(m.Keys, obj.Key)
	return &storage.UploadResponse{
		Url: fmt.Sprintf("https://storage.test/%s/%s", obj.Bucket, obj.Key),
		Key: obj.Key,
	}, nil
}
