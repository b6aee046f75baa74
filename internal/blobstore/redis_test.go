package blobstore

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

type stubRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newStubRedis() *stubRedis {
	return &stubRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubRedis) Get(_ context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.values[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (s *stubRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = value.(string)
	s.ttls[key] = ttl
	return nil
}

func (s *stubRedis) StateKey(scope, name string) string {
	return "sf:state:" + scope + ":" + name
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	stub := newStubRedis()
	backend, err := NewRedis(stub, 24*time.Hour)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, ok, err := backend.Get(ctx, "v1", "theme"); err != nil || ok {
		t.Fatalf("expected missing key to be absent, got ok=%v err=%v", ok, err)
	}
	if err := backend.Set(ctx, "v1", "theme", []byte(`"light"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if stub.ttls["sf:state:v1:theme"] != 24*time.Hour {
		t.Fatalf("ttl not forwarded: %v", stub.ttls)
	}
	got, ok, err := backend.Get(ctx, "v1", "theme")
	if err != nil || !ok || string(got) != `"light"` {
		t.Fatalf("unexpected read: %q ok=%v err=%v", got, ok, err)
	}
}

func TestRedisWrapsFailures(t *testing.T) {
	stub := newStubRedis()
	stub.err = errors.New("connection refused")
	backend, _ := NewRedis(stub, 0)

	_, _, err := backend.Get(context.Background(), "v1", "cart")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	err = backend.Set(context.Background(), "v1", "cart", []byte("{}"))
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewRedisRequiresClient(t *testing.T) {
	if _, err := NewRedis(nil, 0); err == nil {
		t.Fatal("expected error for nil client")
	}
}
