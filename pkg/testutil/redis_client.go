package testutil

import (
	"context"
	"errors"
	"time"
)

var errNotImplemented = errors.New("not implemented")

type MockRedisClient struct {
	ExistFunc      func(ctx context.Context, key string) (bool, error)
	DelFunc        func(ctx context.Context, key ...string) error
	DelPatternFunc func(ctx context.Context, pattern string) (int, error)
	KeysFunc       func(ctx context.Context, pattern string) ([]string, error)
	SetFunc        func(ctx context.Context, key, value string, ttl time.Duration) error
	SetObjFunc     func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetFunc        func(ctx context.Context, key string) (string, error)
	GetObjFunc     func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, errNotImplemented
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return errNotImplemented
}

func (m *MockRedisClient) DelPattern(ctx context.Context, pattern string) (int, error) {
	if m.DelPatternFunc != nil {
		return m.DelPatternFunc(ctx, pattern)
	}

	return 0, errNotImplemented
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, errNotImplemented
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	return errNotImplemented
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return errNotImplemented
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", errNotImplemented
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return errNotImplemented
}
