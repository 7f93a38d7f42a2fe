package matchmaking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Player is one user waiting for an opponent.
type Player struct {
	UserID     int64
	Username   string
	EnqueuedAt time.Time
}

// Queue is a FIFO matchmaking queue. Players who wait longer than the
// timeout are dropped and notified through the timeout callback.
type Queue struct {
	mu        sync.Mutex
	waiting   []Player
	queued    map[int64]bool
	timeout   time.Duration
	onTimeout func(userID int64)
	changed   chan struct{}
}

func NewQueue(timeout time.Duration, onTimeout func(userID int64)) *Queue {
	return &Queue{
		queued:    make(map[int64]bool),
		timeout:   timeout,
		onTimeout: onTimeout,
		changed:   make(chan struct{}, 1),
	}
}

// Enqueue adds a player. Returns false when they are already waiting.
func (q *Queue) Enqueue(userID int64, username string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.queued[userID] {
		return false
	}
	q.waiting = append(q.waiting, Player{UserID: userID, Username: username, EnqueuedAt: time.Now()})
	q.queued[userID] = true

	select {
	case q.changed <- struct{}{}:
	default:
	}
	return true
}

// Remove takes a player out of the queue (cancel, disconnect).
func (q *Queue) Remove(userID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(userID)
}

func (q *Queue) removeLocked(userID int64) {
	if !q.queued[userID] {
		return
	}
	delete(q.queued, userID)
	for i, p := range q.waiting {
		if p.UserID == userID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return
		}
	}
}

// takePair pops the two longest-waiting players.
func (q *Queue) takePair() (Player, Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.waiting) < 2 {
		return Player{}, Player{}, false
	}
	a, b := q.waiting[0], q.waiting[1]
	q.waiting = q.waiting[2:]
	delete(q.queued, a.UserID)
	delete(q.queued, b.UserID)
	return a, b, true
}

// expireStale drops players past the timeout and fires the callback.
func (q *Queue) expireStale() {
	q.mu.Lock()
	var expired []int64
	cutoff := time.Now().Add(-q.timeout)
	for _, p := range q.waiting {
		if p.EnqueuedAt.Before(cutoff) {
			expired = append(expired, p.UserID)
		}
	}
	for _, id := range expired {
		q.removeLocked(id)
	}
	q.mu.Unlock()

	for _, id := range expired {
		log.Info().Int64("user_id", id).Msg("matchmaking timeout")
		if q.onTimeout != nil {
			q.onTimeout(id)
		}
	}
}

// Run pairs waiting players until the context is cancelled. onMatch is
// called outside the queue lock for every formed pair.
func (q *Queue) Run(ctx context.Context, onMatch func(a, b Player)) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.changed:
		case <-ticker.C:
			q.expireStale()
		}

		for {
			a, b, ok := q.takePair()
			if !ok {
				break
			}
			log.Info().Str("player1", a.Username).Str("player2", b.Username).Msg("players matched")
			onMatch(a, b)
		}
	}
}
