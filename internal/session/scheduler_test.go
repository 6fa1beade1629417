package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresOnce(t *testing.T) {
	sched := newScheduler()
	var fired atomic.Int32
	sched.After(time.Millisecond, func() { fired.Add(1) })

	waitFor(t, func() bool { return fired.Load() == 1 }, "task to fire")
	assert.Equal(t, 0, sched.Pending())
}

func TestSchedulerStopAllCancelsPending(t *testing.T) {
	sched := newScheduler()
	var fired atomic.Int32
	sched.After(20*time.Millisecond, func() { fired.Add(1) })
	sched.After(20*time.Millisecond, func() { fired.Add(1) })
	sched.StopAll()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.Equal(t, 0, sched.Pending())
}

func TestSchedulerRefusesTasksAfterStop(t *testing.T) {
	sched := newScheduler()
	sched.StopAll()
	var fired atomic.Int32
	sched.After(time.Millisecond, func() { fired.Add(1) })

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
