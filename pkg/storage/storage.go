package storage

import (
	"context"
	"path"
)

// Storage archives immutable objects such as drawing audit records.
type Storage interface {
	Upload(context.Context, *Object) (*Location, error)
}

type Object struct {
	Bucket      string
	Key         string
	ContentType string
	Metadata    map[string]string
	Data        []byte
}

type Location struct {
	Bucket string
	Key    string
	URL    string
}

// ObjectKey joins key segments with a slash and drops empty ones.
func ObjectKey(segments ...string) string {
	return path.Join(segments...)
}
