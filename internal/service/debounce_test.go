package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(50*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 10*time.Millisecond)

	// no second firing after the burst settled
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_EachTriggerResetsCountdown(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(80*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	d.Trigger()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	d.Trigger()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "second trigger must push the deadline out")

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_TriggerAfterStop(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 5*time.Millisecond)
}
