package matchmaking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueRejectsDuplicates(t *testing.T) {
	q := NewQueue(time.Minute, nil)

	assert.True(t, q.Enqueue(1, "alice"))
	assert.False(t, q.Enqueue(1, "alice"))
}

func TestTakePairFIFO(t *testing.T) {
	q := NewQueue(time.Minute, nil)

	_, _, ok := q.takePair()
	assert.False(t, ok)

	q.Enqueue(1, "alice")
	_, _, ok = q.takePair()
	assert.False(t, ok, "a single player cannot be paired")

	q.Enqueue(2, "bob")
	q.Enqueue(3, "carol")

	a, b, ok := q.takePair()
	require.True(t, ok)
	assert.Equal(t, int64(1), a.UserID)
	assert.Equal(t, int64(2), b.UserID)

	_, _, ok = q.takePair()
	assert.False(t, ok, "carol waits for a fourth player")

	// paired players can queue again
	assert.True(t, q.Enqueue(1, "alice"))
}

func TestRemoveLeavesOthersWaiting(t *testing.T) {
	q := NewQueue(time.Minute, nil)
	q.Enqueue(1, "alice")
	q.Enqueue(2, "bob")
	q.Enqueue(3, "carol")

	q.Remove(2)

	a, b, ok := q.takePair()
	require.True(t, ok)
	assert.Equal(t, int64(1), a.UserID)
	assert.Equal(t, int64(3), b.UserID)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	q := NewQueue(time.Minute, nil)
	q.Remove(42)

	q.Enqueue(1, "alice")
	q.Remove(42)
	q.Enqueue(2, "bob")

	_, _, ok := q.takePair()
	assert.True(t, ok)
}

func TestExpireStaleFiresCallback(t *testing.T) {
	var expired []int64
	q := NewQueue(10*time.Millisecond, func(userID int64) {
		expired = append(expired, userID)
	})

	q.Enqueue(1, "alice")
	time.Sleep(20 * time.Millisecond)
	q.Enqueue(2, "bob")

	q.expireStale()

	assert.Equal(t, []int64{1}, expired)

	// bob is still waiting and can be paired with a newcomer
	q.Enqueue(3, "carol")
	a, b, ok := q.takePair()
	require.True(t, ok)
	assert.Equal(t, int64(2), a.UserID)
	assert.Equal(t, int64(3), b.UserID)
}
