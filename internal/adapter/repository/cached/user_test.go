package cached

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-rest-service/internal/adapter/cache"
	domain "user-rest-service/internal/domain/user"
	"user-rest-service/internal/usecase/user"
)

// countingRepo implements user.Repository and counts GetByID hits.
type countingRepo struct {
	mu       sync.Mutex
	byID     map[int64]*domain.User
	getCalls int
}

func newCountingRepo(users ...*domain.User) *countingRepo {
	r := &countingRepo{byID: make(map[int64]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *countingRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return u, nil
}

func (r *countingRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	// Simulate query latency so concurrent callers overlap
	time.Sleep(10 * time.Millisecond)
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *countingRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (r *countingRepo) List(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (r *countingRepo) ListPage(ctx context.Context, offset, limit int) ([]domain.User, error) {
	return nil, nil
}

func (r *countingRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (r *countingRepo) Update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return 0, nil
	}
	if name, ok := fields["name"].(string); ok {
		u.Name = name
	}
	return 1, nil
}

func (r *countingRepo) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *countingRepo) gets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getCalls
}

func setupCached(t *testing.T, db user.Repository) (user.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	return NewCachedUserRepository(db, c, zaptest.NewLogger(t)), mr
}

func TestCachedRepoGetByID(t *testing.T) {
	db := newCountingRepo(&domain.User{ID: 1, Name: "Jo", Email: "jo@a.com", Password: "secret1"})
	repo, _ := setupCached(t, db)
	ctx := context.Background()

	u, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Jo", u.Name)
	assert.Equal(t, 1, db.gets())

	// Second read is served from the cache
	u, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 1, db.gets())
}

func TestCachedRepoStampede(t *testing.T) {
	db := newCountingRepo(&domain.User{ID: 1, Name: "Jo", Email: "jo@a.com"})
	repo, _ := setupCached(t, db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := repo.GetByID(ctx, 1)
			assert.NoError(t, err)
			assert.NotNil(t, u)
		}()
	}
	wg.Wait()

	// Single-flight collapses concurrent misses to one database read
	assert.Equal(t, 1, db.gets())
}

func TestCachedRepoInvalidation(t *testing.T) {
	db := newCountingRepo(&domain.User{ID: 1, Name: "Jo", Email: "jo@a.com"})
	repo, _ := setupCached(t, db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, db.gets())

	t.Run("update evicts", func(t *testing.T) {
		affected, err := repo.Update(ctx, 1, map[string]any{"name": "Joanna"})
		require.NoError(t, err)
		require.Equal(t, int64(1), affected)

		u, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Joanna", u.Name)
		assert.Equal(t, 2, db.gets())
	})

	t.Run("delete evicts", func(t *testing.T) {
		affected, err := repo.Delete(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, int64(1), affected)

		u, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}
