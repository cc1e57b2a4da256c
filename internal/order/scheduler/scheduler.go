package scheduler

import (
	"context"
	"sync"
	"time"

	"watches-backend/internal/order/repository"

	log "github.com/sirupsen/logrus"
)

// BoardWarmer keeps the cached board feed populated so the first board load
// after an eviction does not hit the database.
type BoardWarmer struct {
	orderRepo repository.OrderRepository
	interval  time.Duration
	timeout   time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func NewBoardWarmer(orderRepo repository.OrderRepository, interval time.Duration) *BoardWarmer {
	return &BoardWarmer{
		orderRepo: orderRepo,
		interval:  interval,
		timeout:   5 * time.Second,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start begins the warm loop. A non-positive interval disables it.
func (s *BoardWarmer) Start() {
	if s.interval <= 0 {
		log.Println("[BoardWarmer] Interval not set, warmer disabled")
		close(s.done)
		return
	}

	log.Printf("[BoardWarmer] Starting board cache warmer (interval: %s)", s.interval)

	go func() {
		defer close(s.done)
		s.warm()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.warm()
			case <-s.stopChan:
				log.Println("[BoardWarmer] Warmer stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for an in-progress warm to finish.
func (s *BoardWarmer) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	<-s.done
}

func (s *BoardWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	orders, err := s.orderRepo.BoardFeed(ctx)
	if err != nil {
		log.Printf("[BoardWarmer] Error loading board feed: %v", err)
		return
	}
	log.Debugf("[BoardWarmer] Board feed warm with %d orders", len(orders))
}
