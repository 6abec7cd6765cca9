package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

var errStorageDown = errors.New("storage unavailable")

// flakyKV wraps the in-memory repository and fails on demand
type flakyKV struct {
	*memory.Repository
	failGet bool
	failSet bool
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, error) {
	if f.failGet {
		return "", errStorageDown
	}
	return f.Repository.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errStorageDown
	}
	return f.Repository.Set(ctx, key, value)
}

// recordingNavigator counts navigations
type recordingNavigator struct {
	calls        int
	destinations []string
}

func (n *recordingNavigator) Navigate(_ context.Context, destination string) error {
	n.calls++
	n.destinations = append(n.destinations, destination)
	return nil
}

func newTestService(t *testing.T, kv ports.KeyValueStore) *LinkService {
	t.Helper()
	if kv == nil {
		kv = memory.NewRepository()
	}
	s := NewLinkService(kv, Options{})
	s.Load(context.Background())
	return s
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
