package vc

import "github.com/araxis-games/hexvc/internal/bitset"

// FullsQueue is an append-only vector of Fulls whose AND-closure has not
// yet been explored, with a head cursor instead of per-pop reallocation.
type FullsQueue struct {
	items []Connection
	head  int
}

// NewFullsQueue returns an empty queue.
func NewFullsQueue() *FullsQueue { return &FullsQueue{} }

// Push enqueues vc.
func (q *FullsQueue) Push(vc Connection) {
	q.items = append(q.items, vc)
}

// Pop dequeues the oldest entry.
func (q *FullsQueue) Pop() (Connection, bool) {
	if q.head >= len(q.items) {
		return Connection{}, false
	}
	vc := q.items[q.head]
	q.head++
	return vc, true
}

// Empty reports whether the queue has no more entries to pop.
func (q *FullsQueue) Empty() bool { return q.head >= len(q.items) }

// Reset clears the queue for reuse on the next build: queues are reused
// across calls rather than reallocated.
func (q *FullsQueue) Reset() {
	q.items = q.items[:0]
	q.head = 0
}

// SemiEndsQueue holds endpoint pairs whose Semi list may now admit an
// OR-combination. It enforces uniqueness: a pair is present at most once
// between the moment it is pushed and the moment it is popped, tracked
// with a dense (min, max) boolean matrix — the bit marked on insert is
// (min(x,y), max(x,y)), not (min(x,y), min(x,y)).
type SemiEndsQueue struct {
	items [][2]int
	head  int
	seen  [bitset.B][bitset.B]bool
}

// NewSemiEndsQueue returns an empty queue.
func NewSemiEndsQueue() *SemiEndsQueue { return &SemiEndsQueue{} }

// Push enqueues the pair (x, y), unless it is already queued.
func (q *SemiEndsQueue) Push(x, y int) {
	a, b := orderedPair(x, y)
	if q.seen[a][b] {
		return
	}
	q.seen[a][b] = true
	q.items = append(q.items, [2]int{a, b})
}

// Pop dequeues the oldest pair.
func (q *SemiEndsQueue) Pop() ([2]int, bool) {
	if q.head >= len(q.items) {
		return [2]int{}, false
	}
	pair := q.items[q.head]
	q.head++
	q.seen[pair[0]][pair[1]] = false
	return pair, true
}

// Empty reports whether the queue has no more entries to pop.
func (q *SemiEndsQueue) Empty() bool { return q.head >= len(q.items) }

// Reset clears the queue and its uniqueness matrix for reuse.
func (q *SemiEndsQueue) Reset() {
	q.items = q.items[:0]
	q.head = 0
	for i := range q.seen {
		for j := range q.seen[i] {
			q.seen[i][j] = false
		}
	}
}
