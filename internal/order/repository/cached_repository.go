package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"watches-backend/internal/order/domain"
	"watches-backend/pkg/kanban"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	boardFeedKey = "watches:orders:board"
	// boardGenKey is bumped on every eviction. A feed read from the database
	// is only cached if no eviction happened since the read started.
	boardGenKey = "watches:orders:board:gen"
)

var errStaleFeed = errors.New("board feed changed while loading")

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// CacheObserver is told about every board feed lookup.
type CacheObserver interface {
	ObserveBoardCache(hit bool)
}

// cachedRepository serves the board feed from redis and evicts it whenever an
// order changes. Every other call goes straight to the wrapped repository.
type cachedRepository struct {
	OrderRepository
	redis    *redis.Client
	ttl      time.Duration
	observer CacheObserver
}

// NewCachedRepository wraps base with a redis board feed cache. A nil client
// or a non-positive ttl returns base unchanged.
func NewCachedRepository(base OrderRepository, client *redis.Client, ttl time.Duration, observer CacheObserver) OrderRepository {
	if base == nil {
		panic("repository.NewCachedRepository: base repository is nil")
	}
	if client == nil || ttl <= 0 {
		return base
	}
	return &cachedRepository{
		OrderRepository: base,
		redis:           client,
		ttl:             ttl,
		observer:        observer,
	}
}

func (c *cachedRepository) BoardFeed(ctx context.Context) ([]*domain.Order, error) {
	if orders, ok := c.loadFeed(ctx); ok {
		c.observe(true)
		return orders, nil
	}
	c.observe(false)

	gen, genErr := c.generation(ctx, c.redis)
	orders, err := c.OrderRepository.BoardFeed(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		c.storeFeed(ctx, gen, orders)
	}
	return orders, nil
}

func (c *cachedRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := c.OrderRepository.Create(ctx, order); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *cachedRepository) UpdateStatus(ctx context.Context, id string, status kanban.Status) (bool, error) {
	found, err := c.OrderRepository.UpdateStatus(ctx, id, status)
	if err != nil {
		return false, err
	}
	if found {
		c.evict(ctx)
	}
	return found, nil
}

func (c *cachedRepository) Delete(ctx context.Context, id string) (bool, error) {
	found, err := c.OrderRepository.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if found {
		c.evict(ctx)
	}
	return found, nil
}

func (c *cachedRepository) loadFeed(ctx context.Context) ([]*domain.Order, bool) {
	data, err := c.redis.Get(ctx, boardFeedKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[OrderCache] Redis get failed, falling back to database: %v", err)
		}
		return nil, false
	}
	var orders []*domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		c.evict(ctx)
		return nil, false
	}
	return orders, true
}

func (c *cachedRepository) generation(ctx context.Context, cmd stringGetter) (int64, error) {
	gen, err := cmd.Get(ctx, boardGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		log.Printf("[OrderCache] Redis generation read failed: %v", err)
	}
	return gen, err
}

// storeFeed caches orders unless the feed was evicted after generation gen
// was read. WATCH covers an eviction racing the write itself.
func (c *cachedRepository) storeFeed(ctx context.Context, gen int64, orders []*domain.Order) {
	data, err := json.Marshal(orders)
	if err != nil {
		return
	}

	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleFeed
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, boardFeedKey, data, c.ttl)
			return nil
		})
		return err
	}, boardGenKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFeed), errors.Is(err, redis.TxFailedErr):
		log.Debugf("[OrderCache] Board feed changed while loading, not caching it")
	default:
		log.Printf("[OrderCache] Redis set failed: %v", err)
	}
}

func (c *cachedRepository) evict(ctx context.Context) {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, boardFeedKey)
		pipe.Incr(ctx, boardGenKey)
		return nil
	})
	if err != nil {
		log.Printf("[OrderCache] Redis evict failed: %v", err)
	}
}

func (c *cachedRepository) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveBoardCache(hit)
	}
}
