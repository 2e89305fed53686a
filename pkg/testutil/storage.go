package testutil

import (
	"context"

	"github.com/questx-lab/fittrack/pkg/storage"
)

type MockStorage struct {
	UploadFunc func(context.Context, *storage.Object) (*storage.Location, error)
}

// Upload accepts everything when UploadFunc is unset.
func (m *MockStorage) Upload(ctx context.Context, obj *storage.Object) (*storage.Location, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return &storage.Location{Bucket: obj.Bucket, Key: obj.Key}, nil
}
