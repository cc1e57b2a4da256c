package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"watches-backend/internal/order/domain"
	"watches-backend/pkg/kanban"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}))
	return db
}

// seedOrders inserts one order per status, one minute apart, oldest first.
func seedOrders(t *testing.T, repo OrderRepository, statuses ...kanban.Status) []*domain.Order {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var out []*domain.Order
	for i, s := range statuses {
		o := &domain.Order{
			OrderNumber:  "ORD-" + string(rune('A'+i)),
			CustomerName: "Customer " + string(rune('A'+i)),
			Status:       s,
			TotalAmount:  float64(1000 * (i + 1)),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			Items: []domain.OrderItem{
				{ProductID: "p-1", Name: "Chronograph", Quantity: 1, UnitPrice: 1000},
				{ProductID: "p-2", Name: "Strap", Quantity: 2, UnitPrice: 50},
			},
		}
		require.NoError(t, repo.Create(context.Background(), o))
		out = append(out, o)
	}
	return out
}

func TestGormRepositoryBoardFeedExcludesCancelled(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	seeded := seedOrders(t, repo, kanban.StatusPending, kanban.StatusCancelled, kanban.StatusShipped, kanban.StatusPending)

	feed, err := repo.BoardFeed(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, o := range feed {
		ids = append(ids, o.ID)
		assert.Len(t, o.Items, 2)
	}
	assert.Equal(t, []string{seeded[0].ID, seeded[2].ID, seeded[3].ID}, ids)
}

func TestGormRepositoryList(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	seeded := seedOrders(t, repo, kanban.StatusPending, kanban.StatusShipped, kanban.StatusPending, kanban.StatusPending)

	pending := kanban.StatusPending
	orders, total, err := repo.List(context.Background(), &pending, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, seeded[3].ID, orders[0].ID)
	assert.Equal(t, seeded[2].ID, orders[1].ID)

	orders, total, err = repo.List(context.Background(), nil, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, orders, 1)
	assert.Equal(t, seeded[0].ID, orders[0].ID)
}

func TestGormRepositoryRecent(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	seeded := seedOrders(t, repo, kanban.StatusPending, kanban.StatusCancelled, kanban.StatusDelivered)

	orders, err := repo.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, seeded[2].ID, orders[0].ID)
	assert.Equal(t, seeded[1].ID, orders[1].ID)
}

func TestGormRepositoryUpdateStatusAndDelete(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	seeded := seedOrders(t, repo, kanban.StatusPending)
	ctx := context.Background()

	found, err := repo.UpdateStatus(ctx, seeded[0].ID, kanban.StatusShipped)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.FindByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kanban.StatusShipped, got.Status)
	assert.Equal(t, 3, got.ItemCount())

	found, err = repo.UpdateStatus(ctx, "missing", kanban.StatusShipped)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = repo.Delete(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.True(t, found)

	got, err = repo.FindByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	found, err = repo.Delete(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.False(t, found)
}

type countingRepo struct {
	OrderRepository
	mu    sync.Mutex
	feeds int
}

func (c *countingRepo) BoardFeed(ctx context.Context) ([]*domain.Order, error) {
	c.mu.Lock()
	c.feeds++
	c.mu.Unlock()
	return c.OrderRepository.BoardFeed(ctx)
}

func (c *countingRepo) feedCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feeds
}

type recordingObserver struct {
	hits, misses int
}

func (r *recordingObserver) ObserveBoardCache(hit bool) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func newCachedTestRepo(t *testing.T) (OrderRepository, *countingRepo, *miniredis.Miniredis, *recordingObserver) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	base := &countingRepo{OrderRepository: NewGormOrderRepository(newTestDB(t))}
	obs := &recordingObserver{}
	return NewCachedRepository(base, client, time.Minute, obs), base, mr, obs
}

func TestCachedRepositoryServesFeedFromRedis(t *testing.T) {
	repo, base, mr, obs := newCachedTestRepo(t)
	seedOrders(t, repo, kanban.StatusPending, kanban.StatusProcessing)
	ctx := context.Background()

	first, err := repo.BoardFeed(ctx)
	require.NoError(t, err)
	second, err := repo.BoardFeed(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, base.feedCalls())
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Items[0].Name, second[0].Items[0].Name)
	assert.True(t, mr.Exists(boardFeedKey))

	mr.FastForward(2 * time.Minute)
	_, err = repo.BoardFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, base.feedCalls())
}

func TestCachedRepositoryEvictsOnChange(t *testing.T) {
	repo, base, mr, _ := newCachedTestRepo(t)
	seeded := seedOrders(t, repo, kanban.StatusPending, kanban.StatusPending)
	ctx := context.Background()

	_, err := repo.BoardFeed(ctx)
	require.NoError(t, err)

	found, err := repo.UpdateStatus(ctx, seeded[0].ID, kanban.StatusCancelled)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, mr.Exists(boardFeedKey))

	feed, err := repo.BoardFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, seeded[1].ID, feed[0].ID)

	_, err = repo.Delete(ctx, seeded[1].ID)
	require.NoError(t, err)
	feed, err = repo.BoardFeed(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed)
	assert.Equal(t, 3, base.feedCalls())
}

func TestCachedRepositoryFallsBackWhenRedisDown(t *testing.T) {
	repo, base, mr, _ := newCachedTestRepo(t)
	seedOrders(t, repo, kanban.StatusPending)
	mr.Close()

	feed, err := repo.BoardFeed(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, 1, base.feedCalls())
}

func TestCachedRepositoryCorruptEntry(t *testing.T) {
	repo, base, mr, _ := newCachedTestRepo(t)
	seedOrders(t, repo, kanban.StatusPending)
	require.NoError(t, mr.Set(boardFeedKey, "{not json"))

	feed, err := repo.BoardFeed(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, 1, base.feedCalls())
}

func TestNewCachedRepositoryWithoutRedis(t *testing.T) {
	base := NewGormOrderRepository(newTestDB(t))
	assert.Same(t, base, NewCachedRepository(base, nil, time.Minute, nil))
}

// racingRepo runs afterRead once, between the database read of the board
// feed and its return to the cache.
type racingRepo struct {
	OrderRepository
	afterRead func()
}

func (r *racingRepo) BoardFeed(ctx context.Context) ([]*domain.Order, error) {
	orders, err := r.OrderRepository.BoardFeed(ctx)
	if r.afterRead != nil {
		fn := r.afterRead
		r.afterRead = nil
		fn()
	}
	return orders, err
}

func TestCachedRepositoryDropsFeedReadBeforeConcurrentMove(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	base := &racingRepo{OrderRepository: NewGormOrderRepository(newTestDB(t))}
	repo := NewCachedRepository(base, client, time.Minute, nil)
	seeded := seedOrders(t, repo, kanban.StatusPending)
	ctx := context.Background()

	base.afterRead = func() {
		found, err := repo.UpdateStatus(ctx, seeded[0].ID, kanban.StatusShipped)
		require.NoError(t, err)
		require.True(t, found)
	}

	// This read saw the order before the move and must not be cached.
	stale, err := repo.BoardFeed(ctx)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, kanban.StatusPending, stale[0].Status)
	assert.False(t, mr.Exists(boardFeedKey))

	feed, err := repo.BoardFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, kanban.StatusShipped, feed[0].Status)
	assert.True(t, mr.Exists(boardFeedKey))

	cached, err := repo.BoardFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, kanban.StatusShipped, cached[0].Status)
}
