package syncer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryScheduler_ArmRunsOnceAfterDelay(t *testing.T) {
	s := NewRetryScheduler(20 * time.Millisecond)

	var calls atomic.Int32
	s.Arm(func() { calls.Add(1) })
	assert.True(t, s.Armed())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.Armed(), "slot must clear after firing")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a fired timer must not repeat")
}

func TestRetryScheduler_ReArmReplacesInsteadOfStacking(t *testing.T) {
	s := NewRetryScheduler(30 * time.Millisecond)

	var first, second atomic.Int32
	s.Arm(func() { first.Add(1) })
	s.Arm(func() { second.Add(1) })

	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), first.Load(), "replaced timer must never fire")
	assert.Equal(t, int32(1), second.Load())
}

func TestRetryScheduler_Clear(t *testing.T) {
	s := NewRetryScheduler(20 * time.Millisecond)

	var calls atomic.Int32
	s.Arm(func() { calls.Add(1) })
	s.Clear()
	assert.False(t, s.Armed())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
