package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

func newTestRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo, err := NewRedisRepository(context.Background(), "redis://"+mr.Addr(), "linkmaker:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, mr
}

func TestNewRedisRepositoryRejectsBadURL(t *testing.T) {
	_, err := NewRedisRepository(context.Background(), "http://localhost:6379", "linkmaker:")
	assert.Error(t, err)
}

func TestNewRedisRepositoryUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisRepository(ctx, "redis://"+addr, "linkmaker:")
	assert.Error(t, err)
}

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	_, err := repo.Get(ctx, ports.KeyURLDatabase)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, ports.KeyURLDatabase, `[["abc123","http://example.com"]]`))
	v, err := repo.Get(ctx, ports.KeyURLDatabase)
	require.NoError(t, err)
	assert.Equal(t, `[["abc123","http://example.com"]]`, v)

	raw, err := mr.Get("linkmaker:" + ports.KeyURLDatabase)
	require.NoError(t, err)
	assert.Equal(t, v, raw, "values live under the prefix")
	assert.Zero(t, mr.TTL("linkmaker:"+ports.KeyURLDatabase), "values never expire")

	require.NoError(t, repo.Set(ctx, ports.KeyURLDatabase, `[]`))
	v, err = repo.Get(ctx, ports.KeyURLDatabase)
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "Set should overwrite")

	require.NoError(t, repo.Delete(ctx, ports.KeyURLDatabase))
	_, err = repo.Get(ctx, ports.KeyURLDatabase)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestProfiles(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	p, err := repo.GetProfile(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)

	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveProfile(ctx, &domain.Profile{
		Identity:  domain.Identity{Name: "Ada", Email: "ada@example.com", Photo: "https://example.com/a.png"},
		LastLogin: first,
	}))
	require.NoError(t, repo.SaveProfile(ctx, &domain.Profile{
		Identity:  domain.Identity{Name: "Ada L.", Email: "ada@example.com"},
		LastLogin: first.Add(time.Hour),
	}))

	p, err = repo.GetProfile(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ada L.", p.Name)
	assert.Equal(t, "", p.Photo)
	assert.True(t, p.LastLogin.Equal(first.Add(time.Hour)), "last login = %v", p.LastLogin)
}

func TestCorruptProfile(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("linkmaker:profile:ada@example.com", "{not json"))

	_, err := repo.GetProfile(ctx, "ada@example.com")
	assert.Error(t, err)
}
