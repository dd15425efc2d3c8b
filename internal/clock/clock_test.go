package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_AdvanceRunsDueTasksInOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)

	var order []string
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "late") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })
	m.AfterFunc(time.Second, func() { order = append(order, "never") })

	m.Advance(500 * time.Millisecond)

	assert.Equal(t, []string{"early", "late"}, order)
	assert.Equal(t, start.Add(500*time.Millisecond), m.Now())
	assert.Equal(t, 1, m.Pending())
}

func TestManual_StopPreventsRun(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ran := false
	tm := m.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	m.Advance(2 * time.Second)

	assert.False(t, ran)
	assert.Zero(t, m.Pending())
}

func TestManual_StopAfterFire(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	tm := m.AfterFunc(0, func() {})
	m.Advance(0)
	assert.False(t, tm.Stop())
}

func TestSystem_AfterFuncFires(t *testing.T) {
	done := make(chan struct{})
	System().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}
