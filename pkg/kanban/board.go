// Package kanban holds the order board: cards partitioned into status columns,
// optimistic moves between columns and rollback to the pre-move snapshot.
//
// The functions in this file are pure. They never perform I/O and never mutate
// the State they are given, so a State returned as a snapshot stays valid for
// as long as the caller keeps it.
package kanban

import (
	"reflect"
)

// Status identifies a board column.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"

	// StatusCancelled is a valid order status but never a board column.
	StatusCancelled Status = "cancelled"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

// OnBoard reports whether s is one of the board columns.
func (s Status) OnBoard() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// ParseStatus converts a raw status into a board column.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.OnBoard()
}

// Card is the board representation of an order. Payload is carried along
// untouched.
type Card struct {
	ID      string `json:"id"`
	Status  Status `json:"status"`
	Payload any    `json:"payload,omitempty"`
}

// Column is one status with its cards in display order.
type Column struct {
	Status Status `json:"status"`
	Cards  []Card `json:"cards"`
}

// State maps every board status to its ordered cards.
type State struct {
	columns map[Status][]Card
}

// Initialize partitions cards into the board columns. Cards whose status is not
// a board column are dropped, relative order is preserved and a repeated id
// keeps only its first occurrence.
func Initialize(cards []Card) State {
	columns := make(map[Status][]Card, len(Statuses))
	for _, s := range Statuses {
		columns[s] = []Card{}
	}

	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if !c.Status.OnBoard() {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		columns[c.Status] = append(columns[c.Status], c)
	}
	return State{columns: columns}
}

// Column returns a copy of the cards in the given column.
func (s State) Column(status Status) []Card {
	cards := s.columns[status]
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// Columns returns every board column in display order.
func (s State) Columns() []Column {
	out := make([]Column, 0, len(Statuses))
	for _, status := range Statuses {
		out = append(out, Column{Status: status, Cards: s.Column(status)})
	}
	return out
}

// IDs returns the card ids of a column in display order.
func (s State) IDs(status Status) []string {
	cards := s.columns[status]
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// Find locates a card on the board.
func (s State) Find(cardID string) (Status, int, bool) {
	for _, status := range Statuses {
		if i := indexOf(s.columns[status], cardID); i >= 0 {
			return status, i, true
		}
	}
	return "", -1, false
}

// Card returns the card with the given id.
func (s State) Card(cardID string) (Card, bool) {
	status, i, ok := s.Find(cardID)
	if !ok {
		return Card{}, false
	}
	return s.columns[status][i], true
}

// Len is the number of cards on the board.
func (s State) Len() int {
	n := 0
	for _, status := range Statuses {
		n += len(s.columns[status])
	}
	return n
}

// Equal compares two states by value: same columns, same cards in the same
// order, same statuses and payloads.
func (s State) Equal(other State) bool {
	for _, status := range Statuses {
		a, b := s.columns[status], other.columns[status]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].ID != b[i].ID || a[i].Status != b[i].Status {
				return false
			}
			if !reflect.DeepEqual(a[i].Payload, b[i].Payload) {
				return false
			}
		}
	}
	return true
}

// MoveCard removes cardID from src and inserts it into dst at destIndex with
// its status rewritten to dst. It returns the new state to render right away
// and the snapshot to restore if the remote move fails.
//
// destIndex is clamped to the destination column after removal, so within a
// single column it counts positions among the other cards. Moving a card onto
// its own position returns the input state as both values.
func MoveCard(state State, cardID string, src, dst Status, destIndex int) (next, snapshot State, err error) {
	next, moved, err := move(state, cardID, src, dst, destIndex)
	if err != nil {
		return State{}, State{}, err
	}
	if !moved {
		return state, state, nil
	}
	return next, state, nil
}

func move(state State, cardID string, src, dst Status, destIndex int) (State, bool, error) {
	if !src.OnBoard() {
		return State{}, false, invalidMove("unknown source column %q", src)
	}
	if !dst.OnBoard() {
		return State{}, false, invalidMove("unknown destination column %q", dst)
	}

	from := state.columns[src]
	at := indexOf(from, cardID)
	if at < 0 {
		return State{}, false, invalidMove("card %q is not in column %q", cardID, src)
	}

	room := len(state.columns[dst])
	if src == dst {
		room--
	}
	destIndex = clamp(destIndex, 0, room)

	if src == dst && at == destIndex {
		return state, false, nil
	}

	card := from[at]
	card.Status = dst

	next := state.shallowCopy()
	next.columns[src] = without(from, at)
	next.columns[dst] = insert(next.columns[dst], destIndex, card)
	return next, true, nil
}

// Restore returns the state the board must show after a failed move.
func Restore(snapshot State) State {
	return snapshot
}

// RevertCard puts a single card back where it was in snapshot while keeping
// every other change made to current since then. A card that is no longer on
// the current board stays absent.
func RevertCard(current, snapshot State, cardID string) State {
	curStatus, curAt, ok := current.Find(cardID)
	if !ok {
		return current
	}
	origStatus, origAt, ok := snapshot.Find(cardID)
	if !ok {
		return current
	}
	if curStatus == origStatus && curAt == origAt {
		return current
	}

	original := snapshot.columns[origStatus][origAt]
	next := current.shallowCopy()
	next.columns[curStatus] = without(next.columns[curStatus], curAt)
	dest := next.columns[origStatus]
	next.columns[origStatus] = insert(dest, clamp(origAt, 0, len(dest)), original)
	return next
}

func (s State) shallowCopy() State {
	columns := make(map[Status][]Card, len(Statuses))
	for _, status := range Statuses {
		columns[status] = s.columns[status]
	}
	return State{columns: columns}
}

func indexOf(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func without(cards []Card, at int) []Card {
	out := make([]Card, 0, len(cards)-1)
	out = append(out, cards[:at]...)
	return append(out, cards[at+1:]...)
}

func insert(cards []Card, at int, card Card) []Card {
	out := make([]Card, 0, len(cards)+1)
	out = append(out, cards[:at]...)
	out = append(out, card)
	return append(out, cards[at:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
