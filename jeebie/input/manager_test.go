package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestManager_Debouncing(t *testing.T) {
	tests := []struct {
		name           string
		eventType      event.Type
		timeBetween    time.Duration
		expectDebounce bool
	}{
		{
			name:           "rapid press - should debounce",
			eventType:      event.Press,
			timeBetween:    100 * time.Millisecond,
			expectDebounce: true,
		},
		{
			name:           "slow press - should not debounce",
			eventType:      event.Press,
			timeBetween:    400 * time.Millisecond,
			expectDebounce: false,
		},
		{
			name:           "rapid release - should debounce",
			eventType:      event.Release,
			timeBetween:    10 * time.Millisecond,
			expectDebounce: true,
		},
		{
			name:           "hold event type - should not debounce",
			eventType:      event.Hold,
			timeBetween:    10 * time.Millisecond,
			expectDebounce: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(1000, 0)}
			m := NewManager(WithClock(clock.Now))

			calls := 0
			m.On(action.PlayPauseToggle, tt.eventType, func() { calls++ })

			assert.True(t, m.Trigger(action.PlayPauseToggle, tt.eventType), "first event should always pass")

			clock.Advance(tt.timeBetween)
			result := m.Trigger(action.PlayPauseToggle, tt.eventType)

			if tt.expectDebounce {
				assert.False(t, result, "second event should be debounced")
				assert.Equal(t, 1, calls)
			} else {
				assert.True(t, result, "second event should not be debounced")
				assert.Equal(t, 2, calls)
			}
		})
	}
}

func TestManager_MultipleActions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	m := NewManager(WithClock(clock.Now))

	var got []action.Action
	m.On(action.StateSave, event.Press, func() { got = append(got, action.StateSave) })
	m.On(action.StateLoad, event.Press, func() { got = append(got, action.StateLoad) })

	// Different actions shouldn't interfere with each other
	assert.True(t, m.Trigger(action.StateSave, event.Press))
	assert.True(t, m.Trigger(action.StateLoad, event.Press))
	assert.False(t, m.Trigger(action.StateSave, event.Press))

	assert.Equal(t, []action.Action{action.StateSave, action.StateLoad}, got)
}

func TestManager_NoDebounce(t *testing.T) {
	m := NewManager(WithDebounce(0))

	calls := 0
	m.On(action.PlayIncFrameRate, event.Press, func() { calls++ })
	for i := 0; i < 5; i++ {
		m.Trigger(action.PlayIncFrameRate, event.Press)
	}
	assert.Equal(t, 5, calls)
}

func TestManager_Unregistered(t *testing.T) {
	m := NewManager(WithDebounce(0))

	assert.False(t, m.Registered(action.HelpAbout, event.Press))
	assert.False(t, m.Trigger(action.HelpAbout, event.Press))

	m.On(action.HelpAbout, event.Press, func() {})
	assert.True(t, m.Registered(action.HelpAbout, event.Press))
}

func TestDefaultKeyMap(t *testing.T) {
	act, ok := GetDefaultMapping("F5")
	assert.True(t, ok)
	assert.Equal(t, action.StateSave, act)

	act, ok = GetDefaultMapping("7")
	assert.True(t, ok)
	n, isSlot := act.StateSlot()
	assert.True(t, isSlot)
	assert.Equal(t, 7, n)

	act, ok = GetDefaultMapping("Alt+3")
	assert.True(t, ok)
	i, isRecent := act.RecentIndex()
	assert.True(t, isRecent)
	assert.Equal(t, 2, i)

	_, ok = GetDefaultMapping("unmapped")
	assert.False(t, ok)
}
