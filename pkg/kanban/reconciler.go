package kanban

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultMoveTimeout bounds a remote move when no timeout option is given.
const DefaultMoveTimeout = 10 * time.Second

// Feed supplies the authoritative list of cards.
type Feed interface {
	Cards(ctx context.Context) ([]Card, error)
}

// FeedFunc adapts a function to Feed.
type FeedFunc func(ctx context.Context) ([]Card, error)

func (f FeedFunc) Cards(ctx context.Context) ([]Card, error) { return f(ctx) }

// Mover performs the authoritative status update for a card.
type Mover interface {
	MoveCard(ctx context.Context, cardID string, status Status) error
}

// MoverFunc adapts a function to Mover.
type MoverFunc func(ctx context.Context, cardID string, status Status) error

func (f MoverFunc) MoveCard(ctx context.Context, cardID string, status Status) error {
	return f(ctx, cardID, status)
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithTimeout bounds every remote move. A move that times out is rolled back
// like any other failure. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Reconciler) { r.timeout = d }
}

// WithLogger sets the logger used for move outcomes.
func WithLogger(l log.FieldLogger) Option {
	return func(r *Reconciler) { r.logger = l }
}

// OnChange registers a listener called with the new board after every load,
// optimistic move and rollback. It runs without the board lock held and is
// called for the optimistic move before Move returns, so it must not block on
// the goroutine that called Move or call Move itself.
//
// Calls are serialized and never go backwards: a board superseded before its
// turn came is skipped, so the last state delivered is the current one.
func OnChange(fn func(State)) Option {
	return func(r *Reconciler) { r.onChange = fn }
}

// OnError registers a listener called exactly once for every move the remote
// operation did not confirm, after the rollback is visible.
func OnError(fn func(*RemoteMoveError)) Option {
	return func(r *Reconciler) { r.onError = fn }
}

// Reconciler owns one board view. Moves are applied locally first, then
// confirmed through the Mover; a move the Mover rejects is rolled back.
//
// At most one move per card is in flight. Moves of different cards are
// confirmed concurrently.
type Reconciler struct {
	feed     Feed
	mover    Mover
	timeout  time.Duration
	logger   log.FieldLogger
	onChange func(State)
	onError  func(*RemoteMoveError)

	mu      sync.Mutex
	state   State
	version uint64
	pending map[string]*PendingMove

	// notifyMu serializes listener calls; notified is the last version delivered.
	notifyMu sync.Mutex
	notified uint64

	wg sync.WaitGroup
}

// NewReconciler creates a Reconciler with an empty board. Call Load to fill it.
func NewReconciler(feed Feed, mover Mover, opts ...Option) *Reconciler {
	r := &Reconciler{
		feed:    feed,
		mover:   mover,
		timeout: DefaultMoveTimeout,
		logger:  log.StandardLogger(),
		state:   Initialize(nil),
		pending: make(map[string]*PendingMove),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the board as currently shown.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending reports whether cardID has an unconfirmed move.
func (r *Reconciler) Pending(cardID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[cardID]
	return ok
}

// Load rebuilds the board from the feed. On error the current board is kept.
func (r *Reconciler) Load(ctx context.Context) error {
	cards, err := r.feed.Cards(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	state := Initialize(cards)
	r.mu.Lock()
	r.state = state
	r.version++
	version := r.version
	r.mu.Unlock()

	r.logger.Debugf("[Board] Loaded %d cards", state.Len())
	r.notifyChange(state, version)
	return nil
}

// Move applies the move locally, notifies the change listener and starts the
// remote confirmation. It does not wait for the remote operation.
//
// Invalid moves fail with ErrInvalidMove and a card with a pending move fails
// with ErrMoveInFlight; neither touches the board. A move onto the card's
// current position returns an already confirmed PendingMove without calling
// the Mover.
func (r *Reconciler) Move(ctx context.Context, cardID string, src, dst Status, destIndex int) (*PendingMove, error) {
	r.mu.Lock()
	if _, busy := r.pending[cardID]; busy {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrMoveInFlight, cardID)
	}
	next, moved, err := move(r.state, cardID, src, dst, destIndex)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	pm := &PendingMove{CardID: cardID, From: src, To: dst, done: make(chan struct{})}
	if !moved {
		r.mu.Unlock()
		close(pm.done)
		return pm, nil
	}

	snapshot := r.state
	r.state = next
	r.version++
	version := r.version
	r.pending[cardID] = pm
	r.wg.Add(1)
	r.mu.Unlock()

	r.notifyChange(next, version)
	go r.confirm(ctx, pm, snapshot, version)
	return pm, nil
}

// Wait blocks until every started confirmation has resolved.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

func (r *Reconciler) confirm(ctx context.Context, pm *PendingMove, snapshot State, version uint64) {
	defer r.wg.Done()

	err := r.callMover(ctx, pm.CardID, pm.To)
	if err == nil {
		r.mu.Lock()
		delete(r.pending, pm.CardID)
		r.mu.Unlock()
		r.logger.Debugf("[Board] Move of card %s to %s confirmed", pm.CardID, pm.To)
		pm.finish(nil)
		return
	}

	rerr := &RemoteMoveError{CardID: pm.CardID, From: pm.From, To: pm.To, Err: err}

	r.mu.Lock()
	if r.version == version {
		r.state = Restore(snapshot)
	} else {
		r.state = RevertCard(r.state, snapshot, pm.CardID)
	}
	r.version++
	current := r.version
	delete(r.pending, pm.CardID)
	state := r.state
	r.mu.Unlock()

	r.logger.WithError(err).Warnf("[Board] Move of card %s to %s failed, rolled back", pm.CardID, pm.To)
	r.notifyChange(state, current)
	if r.onError != nil {
		r.onError(rerr)
	}
	pm.finish(rerr)
}

// callMover runs the remote move under the timeout. A Mover that ignores its
// context is abandoned once the deadline passes.
func (r *Reconciler) callMover(ctx context.Context, cardID string, status Status) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result := make(chan error, 1)
	go func() {
		result <- r.mover.MoveCard(ctx, cardID, status)
	}()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Reconciler) notifyChange(state State, version uint64) {
	if r.onChange == nil {
		return
	}
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	if version <= r.notified {
		return
	}
	r.notified = version
	r.onChange(state)
}

// PendingMove tracks the remote confirmation of one move.
type PendingMove struct {
	CardID string
	From   Status
	To     Status

	done chan struct{}
	err  error
}

// Done is closed once the move is confirmed or rolled back.
func (p *PendingMove) Done() <-chan struct{} {
	return p.done
}

// Err returns nil for a confirmed move and a *RemoteMoveError for a rolled
// back one. It is only meaningful after Done is closed.
func (p *PendingMove) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the move resolves or ctx ends.
func (p *PendingMove) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PendingMove) finish(err error) {
	p.err = err
	close(p.done)
}
